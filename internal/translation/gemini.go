package translation

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements WordClient on top of the Gemini API
type GeminiClient struct {
	model  string
	client *genai.Client
}

// NewGeminiClient creates a new Gemini word client. baseURL may be empty.
func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &GeminiClient{
		model:  model,
		client: client,
	}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Translate asks the model for the translation of a single word
func (c *GeminiClient) Translate(ctx context.Context, req Request) (string, error) {
	temperature := float32(0)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(wordPrompt(req)), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", classifyGeminiError(ctx, req.Token, err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", newError(MalformedResponse, req.Token, "empty translation returned", nil)
	}
	return translation, nil
}

func classifyGeminiError(ctx context.Context, token string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return statusError(token, apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr.Code != 0 {
		return statusError(token, apiErrPtr.Code, apiErrPtr.Message)
	}
	return transportError(ctx, token, err)
}
