// Package types provides type definitions for the CV document shared across
// the editor, persistence, and AI enhancement pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// PersonalDetails holds the header fields of a CV. Empty string is the
// "unset" sentinel for every field; none of them is ever null.
type PersonalDetails struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	// Photo is a data-URI encoded image, or empty when no photo is set.
	Photo string `json:"photo"`
}

// WorkExperience is one entry of the work history list. ID is an opaque
// identity, unique among siblings, assigned once at creation and never
// reassigned. Dates are free-form strings; no date parsing is enforced.
type WorkExperience struct {
	ID        string `json:"id"`
	JobTitle  string `json:"jobTitle"`
	Company   string `json:"company"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	// Description is a single string where line breaks delimit bullet
	// points. A leading "- " on each line is optional decoration stripped
	// only at render time, never canonicalized in storage.
	Description string `json:"description"`
}

// Education is one entry of the education list. Same string conventions
// as WorkExperience.
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// CVData is the complete document. WorkExperience and Education are
// ordered lists (insertion order = display order) and are never nil.
// Skills is an ordered list of non-empty trimmed strings; duplicates are
// permitted and order is meaningful.
type CVData struct {
	PersonalDetails PersonalDetails  `json:"personalDetails"`
	Summary         string           `json:"summary"`
	WorkExperience  []WorkExperience `json:"workExperience"`
	Education       []Education      `json:"education"`
	Skills          []string         `json:"skills"`
}

// DefaultCV returns the cold-start document: empty personal details, one
// blank work-experience entry and one blank education entry (each with the
// fixed placeholder identity "1") so the form has a starting row, empty
// summary, empty skills. Pure; identical output on every call. Also used
// as the fallback when stored data cannot be parsed or fails shape
// validation.
func DefaultCV() CVData {
	return CVData{
		PersonalDetails: PersonalDetails{},
		Summary:         "",
		WorkExperience: []WorkExperience{
			{ID: "1"},
		},
		Education: []Education{
			{ID: "1"},
		},
		Skills: []string{},
	}
}

// Clone returns a deep copy of the document. List mutations on the copy
// never alias the original.
func (cv CVData) Clone() CVData {
	out := cv
	out.WorkExperience = make([]WorkExperience, len(cv.WorkExperience))
	copy(out.WorkExperience, cv.WorkExperience)
	out.Education = make([]Education, len(cv.Education))
	copy(out.Education, cv.Education)
	out.Skills = make([]string, len(cv.Skills))
	copy(out.Skills, cv.Skills)
	return out
}

// Normalize ensures structural validity after decoding from an external
// source: nil lists become empty, skills are trimmed and empty entries
// dropped. Identities are not touched.
func (cv CVData) Normalize() CVData {
	out := cv.Clone()
	if out.WorkExperience == nil {
		out.WorkExperience = []WorkExperience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	skills := make([]string, 0, len(out.Skills))
	for _, s := range out.Skills {
		if t := strings.TrimSpace(s); t != "" {
			skills = append(skills, t)
		}
	}
	out.Skills = skills
	return out
}
