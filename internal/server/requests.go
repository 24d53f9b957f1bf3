package server

import (
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-studio/internal/session"
	"github.com/jonathan/cv-studio/internal/types"
)

// DocumentState is the full client-facing snapshot: the document, the
// raw skills text field, and the busy flags.
type DocumentState struct {
	CVData     types.CVData  `json:"cvData"`
	SkillsText string        `json:"skillsText"`
	Flags      session.Flags `json:"flags"`
}

// PersonalDetailsRequest replaces the personal details section. Empty
// strings are valid values; only a present, malformed email is rejected.
type PersonalDetailsRequest struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	Photo    string `json:"photo"`
}

// SummaryRequest replaces the professional summary.
type SummaryRequest struct {
	Summary string `json:"summary"`
}

// SkillsTextRequest carries the raw contents of the skills text field.
type SkillsTextRequest struct {
	Text string `json:"text"`
}

// ItemPatchRequest edits one field of one list entry.
type ItemPatchRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// ImportRequest carries the pasted legacy CV text.
type ImportRequest struct {
	Text string `json:"text" validate:"required"`
}

// ConsentRequest records the user's consent decision.
type ConsentRequest struct {
	Granted bool `json:"granted"`
}

// Validate validates the PersonalDetailsRequest using the validator.
func (r *PersonalDetailsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ItemPatchRequest using the validator.
func (r *ItemPatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImportRequest using the validator.
func (r *ImportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
