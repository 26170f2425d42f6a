package translation

import "context"

// WordClient translates a single token. Implementations classify failures
// as *Error and do not retry.
type WordClient interface {
	Translate(ctx context.Context, req Request) (string, error)

	// Name returns the provider name
	Name() string
}

// idleCloser is implemented by clients that pool connections
type idleCloser interface {
	CloseIdleConnections()
}
