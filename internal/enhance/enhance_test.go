package enhance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/types"
)

// fakeClient is a scripted llm.Client for pipeline tests.
type fakeClient struct {
	response    string
	err         error
	imageResult *llm.ImageResult
	imageErr    error

	calls      int
	lastPrompt string
	lastSchema *genai.Schema
	lastMIME   string
	lastData   []byte
}

func (f *fakeClient) GenerateStructured(_ context.Context, prompt string, _ llm.ModelTier, schema *genai.Schema) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastSchema = schema
	return f.response, f.err
}

func (f *fakeClient) EditImage(_ context.Context, prompt, mimeType string, data []byte) (*llm.ImageResult, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastMIME = mimeType
	f.lastData = data
	return f.imageResult, f.imageErr
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

func enhanceCV() types.CVData {
	cv := types.DefaultCV()
	cv.Summary = "i write code"
	cv.WorkExperience = []types.WorkExperience{
		{ID: "1", JobTitle: "dev", Company: "Acme", StartDate: "2019", EndDate: "2023", Description: "built stuff"},
	}
	cv.Skills = []string{"Go"}
	return cv
}

func TestEnhanceCV_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"summary": "Seasoned engineer delivering measurable results.",
		"workExperience": [
			{"jobTitle":"Software Engineer","company":"Acme","startDate":"2019","endDate":"2023","description":"- Shipped the payments API, cutting checkout latency by 40%"},
			{"jobTitle":"Engineer","company":"Beta","startDate":"2017","endDate":"2019","description":"- Automated reporting"}
		],
		"skills": ["Go","SQL"]
	}`}
	alloc := identity.NewSequence(100)

	patch, err := EnhanceCV(context.Background(), client, alloc, enhanceCV())
	require.NoError(t, err)

	assert.Equal(t, "Seasoned engineer delivering measurable results.", patch.Summary)
	require.Len(t, patch.WorkExperience, 2)
	// First entry keeps the identity of the current document's first entry.
	assert.Equal(t, "1", patch.WorkExperience[0].ID)
	// The extra entry gets a freshly allocated identity.
	assert.Equal(t, "100", patch.WorkExperience[1].ID)
	assert.Equal(t, []string{"Go", "SQL"}, patch.Skills)
}

func TestEnhanceCV_RequestOmitsIdentities(t *testing.T) {
	client := &fakeClient{response: `{"summary":"s","workExperience":[],"skills":[]}`}

	_, err := EnhanceCV(context.Background(), client, identity.NewSequence(2), enhanceCV())
	require.NoError(t, err)

	assert.Contains(t, client.lastPrompt, `"company": "Acme"`)
	assert.NotContains(t, client.lastPrompt, `"id"`)
	require.NotNil(t, client.lastSchema)
	assert.Contains(t, client.lastSchema.Required, "summary")
}

func TestEnhanceCV_APIFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("service unavailable")}

	_, err := EnhanceCV(context.Background(), client, identity.NewSequence(2), enhanceCV())
	require.Error(t, err)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestEnhanceCV_MalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sorry, I cannot do that"},
		{"wrong shape", `{"summary": 42}`},
		{"missing required field", `{"summary":"s","skills":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response}
			_, err := EnhanceCV(context.Background(), client, identity.NewSequence(2), enhanceCV())
			require.Error(t, err)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}
