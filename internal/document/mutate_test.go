package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/types"
)

func TestUpdateWorkExperience_DefaultDocumentScenario(t *testing.T) {
	cv := types.DefaultCV()
	out := UpdateWorkExperience(cv, "1", FieldCompany, "Acme")

	require.Len(t, out.WorkExperience, 1)
	assert.Equal(t, "Acme", out.WorkExperience[0].Company)
	assert.Equal(t, "1", out.WorkExperience[0].ID)
	// Input snapshot is untouched.
	assert.Empty(t, cv.WorkExperience[0].Company)
}

func TestUpdateWorkExperience_AllFields(t *testing.T) {
	cv := types.DefaultCV()
	cv = UpdateWorkExperience(cv, "1", FieldJobTitle, "Engineer")
	cv = UpdateWorkExperience(cv, "1", FieldStartDate, "2019")
	cv = UpdateWorkExperience(cv, "1", FieldEndDate, "2023")
	cv = UpdateWorkExperience(cv, "1", FieldDescription, "- Built services")

	exp := cv.WorkExperience[0]
	assert.Equal(t, "Engineer", exp.JobTitle)
	assert.Equal(t, "2019", exp.StartDate)
	assert.Equal(t, "2023", exp.EndDate)
	assert.Equal(t, "- Built services", exp.Description)
}

func TestUpdateWorkExperience_UnknownIdentityIsNoOp(t *testing.T) {
	cv := types.DefaultCV()
	out := UpdateWorkExperience(cv, "missing", FieldCompany, "Acme")
	assert.Equal(t, cv, out)
}

func TestUpdateWorkExperience_UnknownFieldIsNoOp(t *testing.T) {
	cv := types.DefaultCV()
	out := UpdateWorkExperience(cv, "1", "salary", "1000000")
	assert.Equal(t, cv, out)
}

func TestUpdateEducation(t *testing.T) {
	cv := types.DefaultCV()
	cv = UpdateEducation(cv, "1", FieldDegree, "BSc Computer Science")
	cv = UpdateEducation(cv, "1", FieldInstitution, "USP")

	assert.Equal(t, "BSc Computer Science", cv.Education[0].Degree)
	assert.Equal(t, "USP", cv.Education[0].Institution)
}

func TestUpdateEducation_UnknownIdentityIsNoOp(t *testing.T) {
	cv := types.DefaultCV()
	out := UpdateEducation(cv, "99", FieldDegree, "PhD")
	assert.Equal(t, cv, out)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	alloc := identity.NewSequence(2)
	cv := types.DefaultCV()

	grown := AddWorkExperience(cv, alloc)
	require.Len(t, grown.WorkExperience, 2)
	addedID := grown.WorkExperience[1].ID
	assert.Equal(t, "2", addedID)

	back := RemoveWorkExperience(grown, addedID)
	assert.Equal(t, cv.WorkExperience, back.WorkExperience)
}

func TestAddWorkExperience_AppendsBlankAtEnd(t *testing.T) {
	alloc := identity.NewSequence(2)
	cv := types.DefaultCV()
	cv = UpdateWorkExperience(cv, "1", FieldCompany, "Acme")

	out := AddWorkExperience(cv, alloc)
	require.Len(t, out.WorkExperience, 2)
	assert.Equal(t, "Acme", out.WorkExperience[0].Company)
	assert.Equal(t, types.WorkExperience{ID: "2"}, out.WorkExperience[1])
}

func TestRemove_LastItemMayEmptyList(t *testing.T) {
	cv := types.DefaultCV()
	out := RemoveWorkExperience(cv, "1")
	assert.NotNil(t, out.WorkExperience)
	assert.Empty(t, out.WorkExperience)

	out = RemoveEducation(out, "1")
	assert.NotNil(t, out.Education)
	assert.Empty(t, out.Education)
}

func TestRemove_UnknownIdentityIsNoOp(t *testing.T) {
	cv := types.DefaultCV()
	assert.Equal(t, cv.WorkExperience, RemoveWorkExperience(cv, "nope").WorkExperience)
	assert.Equal(t, cv.Education, RemoveEducation(cv, "nope").Education)
}

func TestSetSummary(t *testing.T) {
	cv := types.DefaultCV()
	out := SetSummary(cv, "Engineer with 8 years of experience.")
	assert.Equal(t, "Engineer with 8 years of experience.", out.Summary)
	assert.Empty(t, cv.Summary)
}

func TestSetPersonalDetails(t *testing.T) {
	cv := types.DefaultCV()
	details := types.PersonalDetails{FullName: "Maria Souza", Email: "maria@example.com"}
	out := SetPersonalDetails(cv, details)
	assert.Equal(t, details, out.PersonalDetails)
}

func TestSetSkills_CopiesInput(t *testing.T) {
	cv := types.DefaultCV()
	in := []string{"Go", "Rust"}
	out := SetSkills(cv, in)
	in[0] = "mutated"
	assert.Equal(t, []string{"Go", "Rust"}, out.Skills)
}
