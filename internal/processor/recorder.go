package processor

import (
	"context"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/wordwise/internal/translation"
)

// Record describes one completed translation
type Record struct {
	Pair       translation.LanguagePair
	Original   string
	Translated string
}

// Recorder receives every completed translation
type Recorder interface {
	Record(ctx context.Context, rec Record)
}

// LogRecorder writes records to the logger found in the context. Nothing
// is persisted.
type LogRecorder struct{}

// Record logs rec at debug level
func (LogRecorder) Record(ctx context.Context, rec Record) {
	zerolog.Ctx(ctx).Debug().
		Str("langpair", rec.Pair.String()).
		Str("original", rec.Original).
		Str("translated", rec.Translated).
		Msg("Translation recorded")
}
