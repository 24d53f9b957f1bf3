// Package document is the single mutation point for the CV document.
// Every operation is pure: it takes the current snapshot and returns a
// new one, leaving the input untouched. The returned document is always
// structurally valid: lists are never nil and every list item carries an
// identity. Persisting the new snapshot is the caller's responsibility.
package document

import (
	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/types"
)

// Field names accepted by the per-item update operations. They match the
// JSON tags of the list item types.
const (
	FieldJobTitle    = "jobTitle"
	FieldCompany     = "company"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldDescription = "description"
	FieldDegree      = "degree"
	FieldInstitution = "institution"
)

// SetPersonalDetails replaces the personal details section wholesale.
func SetPersonalDetails(cv types.CVData, details types.PersonalDetails) types.CVData {
	out := cv.Clone()
	out.PersonalDetails = details
	return out
}

// SetSummary replaces the summary.
func SetSummary(cv types.CVData, summary string) types.CVData {
	out := cv.Clone()
	out.Summary = summary
	return out
}

// SetSkills replaces the skills list wholesale. The caller provides the
// canonical list (already split and trimmed by the skills bridge).
func SetSkills(cv types.CVData, skills []string) types.CVData {
	out := cv.Clone()
	out.Skills = make([]string, len(skills))
	copy(out.Skills, skills)
	return out
}

// UpdateWorkExperience returns a new document where the named field of
// the item with the given identity is replaced. When no item matches the
// identity the document is returned unchanged; the calling UI guarantees
// the identity exists, so a miss is a silent no-op, not an error. An
// unknown field name is likewise a no-op.
func UpdateWorkExperience(cv types.CVData, id, field, value string) types.CVData {
	out := cv.Clone()
	for i, item := range out.WorkExperience {
		if item.ID != id {
			continue
		}
		switch field {
		case FieldJobTitle:
			item.JobTitle = value
		case FieldCompany:
			item.Company = value
		case FieldStartDate:
			item.StartDate = value
		case FieldEndDate:
			item.EndDate = value
		case FieldDescription:
			item.Description = value
		default:
			return out
		}
		out.WorkExperience[i] = item
		return out
	}
	return out
}

// UpdateEducation is the education counterpart of UpdateWorkExperience.
func UpdateEducation(cv types.CVData, id, field, value string) types.CVData {
	out := cv.Clone()
	for i, item := range out.Education {
		if item.ID != id {
			continue
		}
		switch field {
		case FieldDegree:
			item.Degree = value
		case FieldInstitution:
			item.Institution = value
		case FieldStartDate:
			item.StartDate = value
		case FieldEndDate:
			item.EndDate = value
		default:
			return out
		}
		out.Education[i] = item
		return out
	}
	return out
}

// AddWorkExperience appends a blank entry with a freshly allocated
// identity. Insertion point is always the end of the list.
func AddWorkExperience(cv types.CVData, alloc identity.Allocator) types.CVData {
	out := cv.Clone()
	out.WorkExperience = append(out.WorkExperience, types.WorkExperience{ID: alloc.NewID()})
	return out
}

// AddEducation appends a blank education entry with a fresh identity.
func AddEducation(cv types.CVData, alloc identity.Allocator) types.CVData {
	out := cv.Clone()
	out.Education = append(out.Education, types.Education{ID: alloc.NewID()})
	return out
}

// RemoveWorkExperience returns a new document without the matching item.
// Removing the last remaining item is permitted; the list may become
// empty. A missing identity is a silent no-op.
func RemoveWorkExperience(cv types.CVData, id string) types.CVData {
	out := cv.Clone()
	kept := make([]types.WorkExperience, 0, len(out.WorkExperience))
	for _, item := range out.WorkExperience {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	out.WorkExperience = kept
	return out
}

// RemoveEducation is the education counterpart of RemoveWorkExperience.
func RemoveEducation(cv types.CVData, id string) types.CVData {
	out := cv.Clone()
	kept := make([]types.Education, 0, len(out.Education))
	for _, item := range out.Education {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	out.Education = kept
	return out
}
