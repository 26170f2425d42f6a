package translation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// BreakerConfig holds circuit breaker settings for a provider
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit
	FailureThreshold uint32
	// HalfOpenRequests is the number of trial calls allowed while half-open
	HalfOpenRequests uint32
	// Timeout is how long the circuit stays open before trying again
	Timeout time.Duration
}

// DefaultBreakerConfig returns the default breaker settings
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		HalfOpenRequests: 1,
		Timeout:          30 * time.Second,
	}
}

// BreakerClient guards a WordClient with a circuit breaker. Only server and
// network failures count towards opening the circuit.
type BreakerClient struct {
	next WordClient
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerClient wraps next in a circuit breaker
func NewBreakerClient(next WordClient, cfg BreakerConfig) *BreakerClient {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	return &BreakerClient{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the wrapped provider name
func (b *BreakerClient) Name() string {
	return b.next.Name()
}

// State returns the current breaker state
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// CloseIdleConnections forwards to the wrapped client when it pools connections
func (b *BreakerClient) CloseIdleConnections() {
	if c, ok := b.next.(idleCloser); ok {
		c.CloseIdleConnections()
	}
}

// Translate calls the wrapped client unless the circuit is open
func (b *BreakerClient) Translate(ctx context.Context, req Request) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", newError(ProviderUnavailable, req.Token, "", err)
		}
		return "", err
	}
	return result.(string), nil
}

// countsAsSuccess reports whether err leaves the breaker untouched. Answers
// that prove the provider is reachable do not trip it.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	switch KindOf(err) {
	case ProviderServerError, NetworkFailure, KindUnknown:
		return false
	default:
		return true
	}
}
