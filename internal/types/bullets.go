// Package types provides type definitions for the CV document shared across
// the editor, persistence, and AI enhancement pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Bullets splits the free-form description into render-ready bullet
// points: one per non-empty line, with an optional leading "- " marker
// stripped. The stored description itself is never rewritten.
func (w WorkExperience) Bullets() []string {
	return splitBullets(w.Description)
}

func splitBullets(description string) []string {
	lines := strings.Split(description, "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}
