package translation

import (
	"context"
	"fmt"
	"time"
)

// Config holds provider configuration
type Config struct {
	Provider string // Provider name: "mymemory", "openai" or "gemini"

	// MyMemory settings
	MyMemoryURL       string
	MyMemoryEmail     string
	Timeout           time.Duration
	RequestsPerMinute int

	// OpenAI settings
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Gemini settings
	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string

	// Circuit breaker, disabled when Breaker is false
	Breaker       bool
	BreakerConfig BreakerConfig
}

// DefaultProviderConfig returns the default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:      "mymemory",
		MyMemoryURL:   DefaultMyMemoryURL,
		Timeout:       myMemoryTimeout,
		Breaker:       true,
		BreakerConfig: DefaultBreakerConfig(),
	}
}

// NewClient creates the WordClient selected by config
func NewClient(ctx context.Context, config *Config) (WordClient, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	var client WordClient
	switch config.Provider {
	case "", "mymemory":
		client = NewMyMemoryClient(MyMemoryConfig{
			BaseURL:           config.MyMemoryURL,
			Email:             config.MyMemoryEmail,
			Timeout:           config.Timeout,
			RequestsPerMinute: config.RequestsPerMinute,
		})

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		client = NewOpenAIClient(config.OpenAIKey, config.OpenAIModel, config.OpenAIBaseURL)

	case "gemini":
		gemini, err := NewGeminiClient(ctx, config.GeminiKey, config.GeminiModel, config.GeminiBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		client = gemini

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}

	if config.Breaker {
		client = NewBreakerClient(client, config.BreakerConfig)
	}
	return client, nil
}
