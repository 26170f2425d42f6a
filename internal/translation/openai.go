package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements WordClient on top of the chat completion API
type OpenAIClient struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI word client. baseURL may be empty.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Translate asks the model for the translation of a single word
func (c *OpenAIClient) Translate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", newError(ProviderClientError, req.Token, "OpenAI API key not found", nil)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: wordPrompt(req),
			},
		},
		MaxTokens:   50,
		Temperature: 0,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", classifyOpenAIError(ctx, req.Token, err)
	}

	if len(resp.Choices) == 0 {
		return "", newError(MalformedResponse, req.Token, "no translation returned", nil)
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", newError(MalformedResponse, req.Token, "empty translation returned", nil)
	}
	return translation, nil
}

func classifyOpenAIError(ctx context.Context, token string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return statusError(token, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return statusError(token, reqErr.HTTPStatusCode, reqErr.Error())
	}
	return transportError(ctx, token, err)
}

// wordPrompt builds the single word prompt shared by the LLM providers
func wordPrompt(req Request) string {
	return fmt.Sprintf("Translate the word '%s' from language code '%s' to language code '%s'. "+
		"Respond with only the translation, nothing else.", req.Token, req.Pair.Source, req.Pair.Target)
}
