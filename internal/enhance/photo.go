package enhance

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/prompts"
)

// maxExplanationLen bounds the model's text explanation when it is shown
// to the user instead of an image.
const maxExplanationLen = 120

// TransformPhoto sends the user's photo to the image model and returns
// the professional headshot as a data URI. When the model answers with
// text instead of an image, that explanation is surfaced in the error,
// truncated for display.
func TransformPhoto(ctx context.Context, client llm.Client, dataURI string) (string, error) {
	mimeType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	prompt := prompts.MustGet("enhance.json", "transform-photo")

	result, err := client.EditImage(ctx, prompt, mimeType, data)
	if err != nil {
		return "", &APICallError{Message: "failed to transform the photo", Cause: err}
	}

	if result.Data != nil {
		return encodeDataURI(result.MIMEType, result.Data), nil
	}

	if result.Text != "" {
		return "", &ValidationError{
			Message: fmt.Sprintf("the model returned no image. Reason: %s", truncate(result.Text, maxExplanationLen)),
		}
	}

	return "", &ValidationError{Message: "the model returned no image; try a different photo"}
}

// decodeDataURI splits a data:image/...;base64,... string into its MIME
// type and raw bytes. This is the precondition check run before any
// external call is issued.
func decodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return "", nil, &ValidationError{Message: "invalid image format: expected a data URI with an image MIME type"}
	}

	colon := strings.Index(dataURI, ":")
	semi := strings.Index(dataURI, ";")
	comma := strings.Index(dataURI, ",")
	if semi < 0 || comma < 0 || semi < colon || comma < semi {
		return "", nil, &ValidationError{Message: "invalid image format: malformed data URI"}
	}

	mimeType := dataURI[colon+1 : semi]
	payload := dataURI[comma+1:]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, &ValidationError{Message: "invalid image format: payload is not base64"}
	}
	return mimeType, data, nil
}

func encodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
