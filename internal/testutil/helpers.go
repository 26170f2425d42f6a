package testutil

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Tokens returns n distinct tokens: w00, w01, ...
func Tokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("w%02d", i)
	}
	return tokens
}

// FakeTranslations maps tokens through FakeTranslation
func FakeTranslations(tokens []string, target string) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = FakeTranslation(token, target)
	}
	return out
}

// QuietLogs silences the global logger for the duration of the test
func QuietLogs(t *testing.T) {
	t.Helper()

	previous := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() {
		log.Logger = previous
	})
}
