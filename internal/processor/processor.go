package processor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/wordwise/internal/translation"
)

// Processor feeds caller input to a translator and prints the results
type Processor struct {
	translator *translation.Translator
	out        io.Writer
	recorder   Recorder
}

// NewProcessor creates a processor printing translations to out. A nil
// recorder defaults to LogRecorder.
func NewProcessor(translator *translation.Translator, out io.Writer, recorder Recorder) *Processor {
	if recorder == nil {
		recorder = LogRecorder{}
	}
	return &Processor{
		translator: translator,
		out:        out,
		recorder:   recorder,
	}
}

// ProcessText translates text and prints the result. Nothing is printed
// when the translation fails.
func (p *Processor) ProcessText(ctx context.Context, text string) error {
	translated, err := p.translator.TranslateText(ctx, text)
	if err != nil {
		return err
	}

	p.recorder.Record(ctx, Record{
		Pair:       p.translator.Pair(),
		Original:   strings.TrimSpace(text),
		Translated: translated,
	})

	_, err = fmt.Fprintln(p.out, translated)
	return err
}

// ProcessReader translates everything read from r as a single text
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return p.ProcessText(ctx, string(content))
}
