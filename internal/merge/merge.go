// Package merge reconciles partial documents returned by the AI pipeline
// back into the user's CV without destroying fields the response did not
// supply. Both merges are pure: they take the current document and a
// partial and return a new document. When the external call itself fails,
// neither merge is ever invoked and the document stays unchanged.
package merge

import "github.com/jonathan/cv-studio/internal/types"

// EnhancementPatch is the partial document produced by the enhancement
// call (AI improves existing content). A zero-length field means the
// response did not supply it.
type EnhancementPatch struct {
	Summary        string                 `json:"summary"`
	WorkExperience []types.WorkExperience `json:"workExperience"`
	Skills         []string               `json:"skills"`
}

// PersonalDetailsPatch carries the personal-details portion of an import
// response. Pointer fields distinguish "supplied" from "absent": a nil
// field leaves the current value untouched, a non-nil field overwrites it
// even with an empty string. Photo is listed for completeness but is
// never applied; the current photo always survives an import.
type PersonalDetailsPatch struct {
	FullName *string `json:"fullName,omitempty"`
	JobTitle *string `json:"jobTitle,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Photo    *string `json:"photo,omitempty"`
}

// ImportPatch is the partial document produced by parsing a pasted legacy
// CV.
type ImportPatch struct {
	PersonalDetails *PersonalDetailsPatch  `json:"personalDetails,omitempty"`
	Summary         string                 `json:"summary"`
	WorkExperience  []types.WorkExperience `json:"workExperience"`
	Education       []types.Education      `json:"education"`
	Skills          []string               `json:"skills"`
}

// Enhancement layers an enhancement response onto the current document.
// Summary, workExperience and skills are replaced only when the response
// supplied a non-empty value; everything else, personalDetails and
// education included, is kept from the current document.
func Enhancement(current types.CVData, patch EnhancementPatch) types.CVData {
	out := current.Clone()
	if patch.Summary != "" {
		out.Summary = patch.Summary
	}
	if len(patch.WorkExperience) > 0 {
		out.WorkExperience = cloneWork(patch.WorkExperience)
	}
	if len(patch.Skills) > 0 {
		out.Skills = cloneSkills(patch.Skills)
	}
	return out
}

// Import layers a parsed legacy CV onto the current document.
// PersonalDetails merges field by field, each sub-field overwriting the
// current value only when supplied; photo is always preserved from the
// current document no matter what the patch contains. Summary replaces
// only when non-empty. The three lists are atomic replacements: a
// non-empty patch list replaces the whole current list, an empty or
// omitted one leaves it untouched.
func Import(current types.CVData, patch ImportPatch) types.CVData {
	out := current.Clone()
	if patch.PersonalDetails != nil {
		out.PersonalDetails = mergeDetails(current.PersonalDetails, *patch.PersonalDetails)
	}
	if patch.Summary != "" {
		out.Summary = patch.Summary
	}
	if len(patch.WorkExperience) > 0 {
		out.WorkExperience = cloneWork(patch.WorkExperience)
	}
	if len(patch.Education) > 0 {
		out.Education = cloneEducation(patch.Education)
	}
	if len(patch.Skills) > 0 {
		out.Skills = cloneSkills(patch.Skills)
	}
	return out
}

func mergeDetails(current types.PersonalDetails, patch PersonalDetailsPatch) types.PersonalDetails {
	out := current
	if patch.FullName != nil {
		out.FullName = *patch.FullName
	}
	if patch.JobTitle != nil {
		out.JobTitle = *patch.JobTitle
	}
	if patch.Email != nil {
		out.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Phone = *patch.Phone
	}
	if patch.Address != nil {
		out.Address = *patch.Address
	}
	if patch.LinkedIn != nil {
		out.LinkedIn = *patch.LinkedIn
	}
	// The parser never supplies a photo, but the rule is enforced here
	// regardless: a user-selected photo survives every import.
	out.Photo = current.Photo
	return out
}

func cloneWork(items []types.WorkExperience) []types.WorkExperience {
	out := make([]types.WorkExperience, len(items))
	copy(out, items)
	return out
}

func cloneEducation(items []types.Education) []types.Education {
	out := make([]types.Education, len(items))
	copy(out, items)
	return out
}

func cloneSkills(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
