// Package enhance implements the AI pipeline: content enhancement of the
// current document, parsing of a pasted legacy CV, and the profile-photo
// transform. Each operation produces a partial document for the merge
// engine; on any failure no partial is produced and the document stays
// untouched.
package enhance

import (
	"context"
	"encoding/json"

	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/merge"
	"github.com/jonathan/cv-studio/internal/prompts"
	"github.com/jonathan/cv-studio/internal/schemas"
	"github.com/jonathan/cv-studio/internal/types"
)

// workItem is a work-experience entry as it travels over the wire:
// without an identity. Identities are local to the document and are
// reattached after the call.
type workItem struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// enhanceRequest is the read-only snapshot sent to the model.
type enhanceRequest struct {
	Summary        string     `json:"summary"`
	WorkExperience []workItem `json:"workExperience"`
	Skills         []string   `json:"skills"`
}

// enhanceResponse mirrors the enhancement response contract.
type enhanceResponse struct {
	Summary        string     `json:"summary"`
	WorkExperience []workItem `json:"workExperience"`
	Skills         []string   `json:"skills"`
}

// EnhanceCV sends the document's summary, work experience (stripped of
// identities) and skills to the model and returns the resulting partial
// document. Identities are reattached positionally from the current
// document; entries beyond it get freshly allocated ones.
func EnhanceCV(ctx context.Context, client llm.Client, alloc identity.Allocator, cv types.CVData) (merge.EnhancementPatch, error) {
	req := enhanceRequest{
		Summary:        cv.Summary,
		WorkExperience: stripIdentities(cv.WorkExperience),
		Skills:         cv.Skills,
	}
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return merge.EnhancementPatch{}, &ParseError{Message: "failed to serialize request", Cause: err}
	}

	template := prompts.MustGet("enhance.json", "enhance-cv")
	prompt := prompts.Format(template, map[string]string{"Content": string(payload)})

	responseText, err := client.GenerateStructured(ctx, prompt, llm.TierStandard, enhancementSchema())
	if err != nil {
		return merge.EnhancementPatch{}, &APICallError{Message: "failed to generate CV content", Cause: err}
	}

	if err := schemas.Validate(schemas.EnhancementResponse, []byte(responseText)); err != nil {
		return merge.EnhancementPatch{}, &ParseError{Message: "response does not match the enhancement contract", Cause: err}
	}

	var resp enhanceResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		return merge.EnhancementPatch{}, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	return merge.EnhancementPatch{
		Summary:        resp.Summary,
		WorkExperience: reattachIdentities(resp.WorkExperience, cv.WorkExperience, alloc),
		Skills:         resp.Skills,
	}, nil
}

func stripIdentities(items []types.WorkExperience) []workItem {
	out := make([]workItem, len(items))
	for i, item := range items {
		out[i] = workItem{
			JobTitle:    item.JobTitle,
			Company:     item.Company,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Description: item.Description,
		}
	}
	return out
}

// reattachIdentities pairs response entries with the current document's
// entries by position so edit/remove targeting keeps working after the
// merge. Extra entries get new identities from the allocator.
func reattachIdentities(items []workItem, current []types.WorkExperience, alloc identity.Allocator) []types.WorkExperience {
	out := make([]types.WorkExperience, len(items))
	for i, item := range items {
		id := ""
		if i < len(current) {
			id = current[i].ID
		}
		if id == "" {
			id = alloc.NewID()
		}
		out[i] = types.WorkExperience{
			ID:          id,
			JobTitle:    item.JobTitle,
			Company:     item.Company,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Description: item.Description,
		}
	}
	return out
}
