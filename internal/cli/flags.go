package cli

import (
	"time"

	"codeberg.org/snonux/wordwise/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	From       string
	To         string
	Provider   string
	ListModels bool

	// Scheduling flags
	BatchSize int
	Pipelined bool
	NoBreaker bool

	// MyMemory flags
	MyMemoryURL string
	Email       string
	Timeout     time.Duration
	RateLimit   int

	// LLM provider flags
	OpenAIModel string
	GeminiModel string

	// Logging flags
	LogLevel  string
	LogPretty bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		From:        "en",
		To:          "it",
		Provider:    "mymemory",
		BatchSize:   translation.MaxBatchSize,
		MyMemoryURL: translation.DefaultMyMemoryURL,
		Timeout:     30 * time.Second,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
		LogLevel:    "warn",
	}
}
