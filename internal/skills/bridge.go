// Package skills bridges the single comma-separated skills text field and
// the canonical ordered skills list of the CV document.
package skills

import "strings"

// FromText derives the canonical skills list from raw field text: split
// on ",", trim each segment, drop empty segments. Called on every change
// of the text field, so the canonical document always matches what is
// visibly typed. A trailing separator or in-progress whitespace yields no
// empty entry.
func FromText(text string) []string {
	segments := strings.Split(text, ",")
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ToText renders the canonical list for display in the text field.
func ToText(list []string) string {
	return strings.Join(list, ", ")
}

// Diverged reports whether the list derived from the current field text
// no longer matches the canonical list. It is the detection half of the
// reconciliation rule: when the canonical list is changed by a source
// other than the text field (an AI merge, for instance), the displayed
// text must be regenerated from the canonical list. Free typing with
// trailing commas or spaces derives the same list and therefore never
// triggers a resync loop.
func Diverged(text string, canonical []string) bool {
	derived := FromText(text)
	if len(derived) != len(canonical) {
		return true
	}
	for i, s := range derived {
		if s != canonical[i] {
			return true
		}
	}
	return false
}

// Resync returns the display text for the current field contents: the
// text unchanged when it still derives the canonical list, or text
// regenerated from the canonical list when it has diverged.
func Resync(text string, canonical []string) string {
	if Diverged(text, canonical) {
		return ToText(canonical)
	}
	return text
}
