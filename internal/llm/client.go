package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ImageResult is the outcome of an image edit. Either MIMEType/Data carry
// the produced image, or Text carries the model's explanation for not
// producing one.
type ImageResult struct {
	MIMEType string
	Data     []byte
	Text     string
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateStructured generates JSON content conforming to schema using
	// the specified model tier
	GenerateStructured(ctx context.Context, prompt string, tier ModelTier, schema *genai.Schema) (string, error)
	// EditImage sends an image plus an instruction and returns the edited
	// image, or the model's text explanation when no image comes back
	EditImage(ctx context.Context, prompt, mimeType string, data []byte) (*ImageResult, error)
	// GetModel returns the underlying provider model for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateStructured generates JSON content conforming to schema
func (c *GeminiClient) GenerateStructured(ctx context.Context, prompt string, tier ModelTier, schema *genai.Schema) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	// Clean any markdown code block wrappers
	return CleanJSONBlock(text), nil
}

// EditImage sends the image and instruction to the image-capable model
// and collects whichever parts come back.
func (c *GeminiClient) EditImage(ctx context.Context, prompt, mimeType string, data []byte) (*ImageResult, error) {
	modelName := c.config.GetModel(TierImage)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", TierImage)
	}

	// genai expects the bare image format, not the full MIME type.
	format := strings.TrimPrefix(mimeType, "image/")

	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, data),
		genai.Text(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	result := &ImageResult{}
	var texts []string
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Blob:
			if result.Data == nil {
				result.MIMEType = p.MIMEType
				result.Data = p.Data
			}
		case genai.Text:
			texts = append(texts, string(p))
		}
	}
	result.Text = strings.Join(texts, "")
	return result, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
