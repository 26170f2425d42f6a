package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a translation failed
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// EmptyInput means the text contained no tokens
	EmptyInput
	// InvalidLanguagePair means the provider rejected the language codes
	InvalidLanguagePair
	// ProviderClientError is a 4xx answer from the provider
	ProviderClientError
	// ProviderServerError is a 5xx answer from the provider
	ProviderServerError
	// MalformedResponse covers empty bodies, bad JSON and missing candidates
	MalformedResponse
	// NetworkFailure is a transport level failure
	NetworkFailure
	// Interrupted means the call was cancelled while waiting
	Interrupted
	// ProviderUnavailable means the circuit breaker is rejecting calls
	ProviderUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case InvalidLanguagePair:
		return "InvalidLanguagePair"
	case ProviderClientError:
		return "ProviderClientError"
	case ProviderServerError:
		return "ProviderServerError"
	case MalformedResponse:
		return "MalformedResponse"
	case NetworkFailure:
		return "NetworkFailure"
	case Interrupted:
		return "Interrupted"
	case ProviderUnavailable:
		return "ProviderUnavailable"
	default:
		return "Unknown"
	}
}

// Error is a classified translation failure
type Error struct {
	Kind    ErrorKind
	Token   string
	Status  int // HTTP or provider status, 0 when not applicable
	Message string
	Err     error
}

// Sentinels for errors.Is comparisons. Any *Error matches the sentinel of
// its kind.
var (
	ErrEmptyInput          = &Error{Kind: EmptyInput}
	ErrInvalidLanguagePair = &Error{Kind: InvalidLanguagePair}
	ErrProviderClient      = &Error{Kind: ProviderClientError}
	ErrProviderServer      = &Error{Kind: ProviderServerError}
	ErrMalformedResponse   = &Error{Kind: MalformedResponse}
	ErrNetworkFailure      = &Error{Kind: NetworkFailure}
	ErrInterrupted         = &Error{Kind: Interrupted}
	ErrProviderUnavailable = &Error{Kind: ProviderUnavailable}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Token != "" {
		msg += fmt.Sprintf(" (token %q)", e.Token)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or KindUnknown
func KindOf(err error) ErrorKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

func newError(kind ErrorKind, token, message string, err error) *Error {
	return &Error{Kind: kind, Token: token, Message: message, Err: err}
}

// statusError classifies a non-success status code
func statusError(token string, status int, message string) *Error {
	kind := ProviderClientError
	if status >= http.StatusInternalServerError {
		kind = ProviderServerError
	}
	return &Error{Kind: kind, Token: token, Status: status, Message: message}
}

// transportError classifies an error returned while talking to a provider.
// It is Interrupted when the caller's context is done, otherwise a network
// failure. Client side timeouts count as network failures.
func transportError(ctx context.Context, token string, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	if ctx.Err() != nil {
		return newError(Interrupted, token, "", err)
	}
	return newError(NetworkFailure, token, "", err)
}
