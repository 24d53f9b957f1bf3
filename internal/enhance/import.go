package enhance

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/merge"
	"github.com/jonathan/cv-studio/internal/prompts"
	"github.com/jonathan/cv-studio/internal/schemas"
	"github.com/jonathan/cv-studio/internal/types"
)

// importResponse mirrors the import response contract. Pointer fields on
// personal details preserve the supplied/absent distinction for the
// merge engine.
type importResponse struct {
	PersonalDetails *merge.PersonalDetailsPatch `json:"personalDetails"`
	Summary         string                      `json:"summary"`
	WorkExperience  []workItem                  `json:"workExperience"`
	Education       []educationItem             `json:"education"`
	Skills          []string                    `json:"skills"`
}

type educationItem struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ParseCV extracts a structured partial document from pasted legacy CV
// text. Empty input is rejected before any external call. Pasted HTML is
// reduced to text first so the model sees content, not markup. Every
// synthesized list entry gets a fresh identity.
func ParseCV(ctx context.Context, client llm.Client, alloc identity.Allocator, rawText string) (merge.ImportPatch, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return merge.ImportPatch{}, &ValidationError{Message: "pasted CV text is empty"}
	}
	if looksLikeHTML(text) {
		text = stripHTML(text)
	}

	template := prompts.MustGet("enhance.json", "parse-cv")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	responseText, err := client.GenerateStructured(ctx, prompt, llm.TierStandard, importSchema())
	if err != nil {
		return merge.ImportPatch{}, &APICallError{Message: "failed to parse the CV", Cause: err}
	}

	if err := schemas.Validate(schemas.ImportResponse, []byte(responseText)); err != nil {
		return merge.ImportPatch{}, &ParseError{Message: "response does not match the import contract", Cause: err}
	}

	var resp importResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		return merge.ImportPatch{}, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	patch := merge.ImportPatch{
		PersonalDetails: resp.PersonalDetails,
		Summary:         resp.Summary,
		Skills:          resp.Skills,
	}
	for _, item := range resp.WorkExperience {
		patch.WorkExperience = append(patch.WorkExperience, types.WorkExperience{
			ID:          alloc.NewID(),
			JobTitle:    item.JobTitle,
			Company:     item.Company,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Description: item.Description,
		})
	}
	for _, item := range resp.Education {
		patch.Education = append(patch.Education, types.Education{
			ID:          alloc.NewID(),
			Degree:      item.Degree,
			Institution: item.Institution,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
		})
	}
	return patch, nil
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<p>")
}

// stripHTML reduces pasted markup to readable text blocks. On any parse
// failure the original text is returned; the model copes with markup
// better than with nothing.
func stripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, nav, iframe, noscript").Remove()

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6, td").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}

	if body := strings.TrimSpace(doc.Find("body").Text()); body != "" {
		return body
	}
	return html
}
