package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/types"
)

func sampleCV() types.CVData {
	return types.CVData{
		PersonalDetails: types.PersonalDetails{
			FullName: "Maria Souza",
			JobTitle: "Backend Engineer",
			Email:    "maria@example.com",
			Phone:    "+55 11 99999-0000",
			Address:  "São Paulo, SP",
			LinkedIn: "linkedin.com/in/maria",
			Photo:    "data:image/png;base64,USERPHOTO",
		},
		Summary: "Original summary.",
		WorkExperience: []types.WorkExperience{
			{ID: "1", JobTitle: "Engineer", Company: "Acme", StartDate: "2019", EndDate: "2023", Description: "- Did things"},
		},
		Education: []types.Education{
			{ID: "1", Degree: "BSc", Institution: "USP", StartDate: "2012", EndDate: "2016"},
		},
		Skills: []string{"Go", "SQL"},
	}
}

func strptr(s string) *string { return &s }

func TestEnhancement_EmptyPatchIsIdentity(t *testing.T) {
	cv := sampleCV()
	out := Enhancement(cv, EnhancementPatch{})
	assert.Equal(t, cv, out)
}

func TestEnhancement_ReplacesSuppliedFieldsOnly(t *testing.T) {
	cv := sampleCV()
	out := Enhancement(cv, EnhancementPatch{
		Summary: "Polished summary.",
		Skills:  []string{"Go", "SQL", "Kubernetes"},
	})

	assert.Equal(t, "Polished summary.", out.Summary)
	assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, out.Skills)
	// Unsupplied fields keep the current value.
	assert.Equal(t, cv.WorkExperience, out.WorkExperience)
	// Enhancement never touches personal details or education.
	assert.Equal(t, cv.PersonalDetails, out.PersonalDetails)
	assert.Equal(t, cv.Education, out.Education)
}

func TestEnhancement_ReplacesWorkExperienceWholesale(t *testing.T) {
	cv := sampleCV()
	out := Enhancement(cv, EnhancementPatch{
		WorkExperience: []types.WorkExperience{
			{ID: "1", JobTitle: "Engineer", Company: "Acme", Description: "- Shipped the payments API"},
			{ID: "2", JobTitle: "Intern", Company: "Beta", Description: "- Automated reports"},
		},
	})

	require.Len(t, out.WorkExperience, 2)
	assert.Equal(t, "- Shipped the payments API", out.WorkExperience[0].Description)
}

func TestEnhancement_DoesNotMutateInput(t *testing.T) {
	cv := sampleCV()
	out := Enhancement(cv, EnhancementPatch{Skills: []string{"Rust"}})
	out.WorkExperience[0].Company = "Mutated"

	assert.Equal(t, "Acme", cv.WorkExperience[0].Company)
	assert.Equal(t, []string{"Go", "SQL"}, cv.Skills)
}

func TestImport_PhotoAlwaysPreserved(t *testing.T) {
	cv := sampleCV()
	out := Import(cv, ImportPatch{
		PersonalDetails: &PersonalDetailsPatch{
			FullName: strptr("João Lima"),
			Photo:    strptr("data:image/png;base64,INJECTED"),
		},
	})

	assert.Equal(t, "João Lima", out.PersonalDetails.FullName)
	assert.Equal(t, "data:image/png;base64,USERPHOTO", out.PersonalDetails.Photo)
}

func TestImport_ShallowDetailMerge(t *testing.T) {
	cv := sampleCV()
	out := Import(cv, ImportPatch{
		PersonalDetails: &PersonalDetailsPatch{
			Email: strptr("joao@example.com"),
			Phone: strptr(""),
		},
	})

	// Supplied fields overwrite, even with an empty string.
	assert.Equal(t, "joao@example.com", out.PersonalDetails.Email)
	assert.Empty(t, out.PersonalDetails.Phone)
	// Absent fields keep the current value.
	assert.Equal(t, "Maria Souza", out.PersonalDetails.FullName)
	assert.Equal(t, "São Paulo, SP", out.PersonalDetails.Address)
}

func TestImport_EmptyListKeepsCurrent(t *testing.T) {
	cv := sampleCV()
	// A response supplying an empty list is treated the same as omitting
	// the field.
	out := Import(cv, ImportPatch{Education: []types.Education{}})
	assert.Equal(t, cv.Education, out.Education)
	assert.Equal(t, cv, out)
}

func TestImport_NonEmptyListsReplaceAtomically(t *testing.T) {
	cv := sampleCV()
	out := Import(cv, ImportPatch{
		Summary: "Imported summary.",
		WorkExperience: []types.WorkExperience{
			{ID: "10", Company: "Gamma"},
			{ID: "11", Company: "Delta"},
		},
		Education: []types.Education{
			{ID: "12", Degree: "MSc", Institution: "Unicamp"},
		},
		Skills: []string{"Leadership"},
	})

	assert.Equal(t, "Imported summary.", out.Summary)
	require.Len(t, out.WorkExperience, 2)
	assert.Equal(t, "Gamma", out.WorkExperience[0].Company)
	require.Len(t, out.Education, 1)
	assert.Equal(t, "MSc", out.Education[0].Degree)
	assert.Equal(t, []string{"Leadership"}, out.Skills)
}

func TestImport_EmptySummaryKeepsCurrent(t *testing.T) {
	cv := sampleCV()
	out := Import(cv, ImportPatch{Summary: ""})
	assert.Equal(t, "Original summary.", out.Summary)
}

func TestImport_NilDetailsPatchKeepsDetails(t *testing.T) {
	cv := sampleCV()
	out := Import(cv, ImportPatch{})
	assert.Equal(t, cv, out)
}
