package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/persist"
	"github.com/jonathan/cv-studio/internal/store"
	"github.com/jonathan/cv-studio/internal/types"
)

// blockingClient serves scripted responses and can hold a request open
// until released, to simulate an in-flight AI call.
type blockingClient struct {
	response string
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (c *blockingClient) GenerateStructured(context.Context, string, llm.ModelTier, *genai.Schema) (string, error) {
	if c.started != nil {
		close(c.started)
	}
	if c.release != nil {
		<-c.release
	}
	return c.response, c.err
}

func (c *blockingClient) EditImage(context.Context, string, string, []byte) (*llm.ImageResult, error) {
	return &llm.ImageResult{MIMEType: "image/png", Data: []byte("edited")}, nil
}

func (c *blockingClient) GetModel(llm.ModelTier) string { return "fake" }
func (c *blockingClient) Close() error                  { return nil }

const enhanceResponse = `{
	"summary": "Polished summary.",
	"workExperience": [
		{"jobTitle":"Engineer","company":"Acme","startDate":"2019","endDate":"2023","description":"- Shipped things"}
	],
	"skills": ["Go","SQL"]
}`

func newTestSession(client llm.Client) (*Session, *persist.Adapter) {
	adapter := persist.New(store.NewMemory())
	return New(context.Background(), adapter, client, identity.NewSequence(2)), adapter
}

func TestNew_StartsFromDefaultDocument(t *testing.T) {
	s, _ := newTestSession(&blockingClient{})
	assert.Equal(t, types.DefaultCV(), s.Document())
	assert.Empty(t, s.SkillsText())
}

func TestNew_StartsFromPersistedDocument(t *testing.T) {
	ctx := context.Background()
	adapter := persist.New(store.NewMemory())
	cv := types.DefaultCV()
	cv.Summary = "persisted"
	cv.Skills = []string{"Go", "Rust"}
	adapter.Save(ctx, cv)

	s := New(ctx, adapter, &blockingClient{}, identity.NewSequence(2))
	assert.Equal(t, "persisted", s.Document().Summary)
	// Skills text starts in sync with the canonical list.
	assert.Equal(t, "Go, Rust", s.SkillsText())
}

func TestMutations_PersistEverySnapshot(t *testing.T) {
	ctx := context.Background()
	s, adapter := newTestSession(&blockingClient{})

	s.SetSummary(ctx, "Engineer.")
	s.UpdateWorkExperience(ctx, "1", document.FieldCompany, "Acme")
	id := s.AddEducation(ctx)
	assert.Equal(t, "2", id)

	reloaded := adapter.Load(ctx)
	assert.Equal(t, "Engineer.", reloaded.Summary)
	assert.Equal(t, "Acme", reloaded.WorkExperience[0].Company)
	require.Len(t, reloaded.Education, 2)
}

func TestSetSkillsText_KeepsRawTextWhileTyping(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&blockingClient{})

	s.SetSkillsText(ctx, "Go, Rust,")
	// Canonical list has no empty entry, text keeps the trailing comma.
	assert.Equal(t, []string{"Go", "Rust"}, s.Document().Skills)
	assert.Equal(t, "Go, Rust,", s.SkillsText())
}

func TestSkillsText_ResyncsAfterExternalChange(t *testing.T) {
	ctx := context.Background()
	client := &blockingClient{response: enhanceResponse}
	s, _ := newTestSession(client)

	s.SetSkillsText(ctx, "JavaScript,")
	require.NoError(t, s.Enhance(ctx))

	// The enhancement replaced the canonical list, so the field text is
	// regenerated from it.
	assert.Equal(t, []string{"Go", "SQL"}, s.Document().Skills)
	assert.Equal(t, "Go, SQL", s.SkillsText())
}

func TestEnhance_BusyFlagRefusesSecondRequest(t *testing.T) {
	ctx := context.Background()
	client := &blockingClient{
		response: enhanceResponse,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	s, _ := newTestSession(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Enhance(ctx))
	}()

	<-client.started
	assert.True(t, s.BusyFlags().Generating)
	assert.ErrorIs(t, s.Enhance(ctx), ErrEnhanceInProgress)
	// A different kind is not blocked by the enhancement flag.
	assert.False(t, s.BusyFlags().ParsingCV)

	close(client.release)
	wg.Wait()
	assert.False(t, s.BusyFlags().Generating)
}

func TestEnhance_UserEditDuringFlightIsPreserved(t *testing.T) {
	ctx := context.Background()
	client := &blockingClient{
		response: enhanceResponse,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	s, _ := newTestSession(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Enhance(ctx))
	}()

	<-client.started
	// Edit a field the enhancement does not touch while it is in flight.
	s.UpdateEducation(ctx, "1", document.FieldInstitution, "USP")
	close(client.release)
	wg.Wait()

	cv := s.Document()
	// The AI partial landed...
	assert.Equal(t, "Polished summary.", cv.Summary)
	// ...layered on top of the then-current document, not the snapshot.
	assert.Equal(t, "USP", cv.Education[0].Institution)
}

func TestEnhance_FailureLeavesDocumentUnchanged(t *testing.T) {
	ctx := context.Background()
	client := &blockingClient{err: errors.New("service down")}
	s, _ := newTestSession(client)
	before := s.Document()

	err := s.Enhance(ctx)
	require.Error(t, err)
	assert.Equal(t, before, s.Document())
	assert.False(t, s.BusyFlags().Generating)
}

func TestImportCV_MergesAndAllocatesIdentities(t *testing.T) {
	ctx := context.Background()
	client := &blockingClient{response: `{
		"personalDetails": {"fullName":"João Lima","email":"joao@example.com"},
		"summary": "Imported.",
		"workExperience": [
			{"jobTitle":"Engineer","company":"Gamma","startDate":"2020","endDate":"2024","description":"- Built pipelines"}
		],
		"education": [],
		"skills": ["Python"]
	}`}
	s, _ := newTestSession(client)
	s.SetPersonalDetails(ctx, types.PersonalDetails{Photo: "data:image/png;base64,MINE"})

	require.NoError(t, s.ImportCV(ctx, "pasted legacy cv"))

	cv := s.Document()
	assert.Equal(t, "João Lima", cv.PersonalDetails.FullName)
	// Photo uploaded by the user survives the import.
	assert.Equal(t, "data:image/png;base64,MINE", cv.PersonalDetails.Photo)
	assert.Equal(t, "Imported.", cv.Summary)
	require.Len(t, cv.WorkExperience, 1)
	assert.NotEmpty(t, cv.WorkExperience[0].ID)
	// Empty education list in the response keeps the current list.
	require.Len(t, cv.Education, 1)
	assert.Equal(t, "1", cv.Education[0].ID)
}

func TestTransformPhoto_RequiresPhoto(t *testing.T) {
	s, _ := newTestSession(&blockingClient{})
	assert.ErrorIs(t, s.TransformPhoto(context.Background()), ErrNoPhoto)
}

func TestTransformPhoto_AppliesResult(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&blockingClient{})
	s.SetPersonalDetails(ctx, types.PersonalDetails{Photo: "data:image/png;base64,QUJD"})

	require.NoError(t, s.TransformPhoto(ctx))
	assert.Contains(t, s.Document().PersonalDetails.Photo, "data:image/png;base64,")
	assert.NotEqual(t, "data:image/png;base64,QUJD", s.Document().PersonalDetails.Photo)
	assert.False(t, s.BusyFlags().TransformingPhoto)
}

func TestExportTrigger_FiresExactlyOnce(t *testing.T) {
	s, _ := newTestSession(&blockingClient{})

	assert.False(t, s.ConsumeExport())
	s.ArmExport()
	assert.True(t, s.ConsumeExport())
	// Refresh / re-visit does not re-trigger.
	assert.False(t, s.ConsumeExport())
}

func TestConsentFlag(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(&blockingClient{})

	assert.False(t, s.Consent(ctx))
	s.SetConsent(ctx, true)
	assert.True(t, s.Consent(ctx))
}
