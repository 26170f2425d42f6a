package translation

import "fmt"

// LanguagePair is the fixed source/target pair of a Translator
type LanguagePair struct {
	Source string
	Target string
}

// String returns the pair in provider notation, e.g. "en|it"
func (p LanguagePair) String() string {
	return fmt.Sprintf("%s|%s", p.Source, p.Target)
}

// Request is a single token to translate
type Request struct {
	Token string
	Pair  LanguagePair
}

// Outcome is the result of translating one Request
type Outcome struct {
	Text string
	Err  error
}

// Failed reports whether the translation of the token failed
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Batch is a contiguous run of requests. Offset is the position of the
// first request in the full token sequence.
type Batch struct {
	Offset   int
	Requests []Request
}
