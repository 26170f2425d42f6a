package translation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Translator translates text word by word for a fixed language pair
type Translator struct {
	pair      LanguagePair
	scheduler *Scheduler
}

// New creates a translator for pair. The pair is not validated locally;
// the provider reports unusable codes on the first call.
func New(client WordClient, pair LanguagePair, opts ...SchedulerOption) *Translator {
	return &Translator{
		pair:      pair,
		scheduler: NewScheduler(client, opts...),
	}
}

// Pair returns the language pair of the translator
func (t *Translator) Pair() LanguagePair {
	return t.pair
}

// Tokenize splits text on runs of whitespace
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// TranslateText translates every token of text and joins the results with
// single spaces. Any failure aborts the whole call with no partial output.
func (t *Translator) TranslateText(ctx context.Context, text string) (string, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return "", newError(EmptyInput, "", "no tokens in input", nil)
	}

	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("langpair", t.pair.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	start := time.Now()
	outcomes, err := t.scheduler.Run(ctx, tokens, t.pair)
	if err != nil {
		logger.Warn().
			Str("kind", KindOf(err).String()).
			Err(err).
			Msg("Translation failed")
		return "", err
	}

	logger.Info().
		Int("tokens", len(tokens)).
		Dur("elapsed", time.Since(start)).
		Msg("Translation complete")

	return Join(outcomes), nil
}
