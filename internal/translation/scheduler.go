package translation

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MaxBatchSize is the upper bound on concurrent calls per batch
const MaxBatchSize = 10

// Scheduler dispatches requests to a WordClient in batches. Each batch runs
// fully concurrently and the next batch starts only after every call of the
// current one has returned.
type Scheduler struct {
	client    WordClient
	batchSize int
	pipelined bool
}

// SchedulerOption customises a Scheduler
type SchedulerOption func(*Scheduler)

// WithBatchSize sets the batch size, clamped to 1..MaxBatchSize
func WithBatchSize(n int) SchedulerOption {
	return func(s *Scheduler) {
		s.batchSize = clampBatchSize(n)
	}
}

// WithPipelining drops the barrier between batches. At most batchSize calls
// are still in flight at any moment and the result order is unchanged.
func WithPipelining(enabled bool) SchedulerOption {
	return func(s *Scheduler) {
		s.pipelined = enabled
	}
}

// NewScheduler creates a scheduler for client
func NewScheduler(client WordClient, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		client:    client,
		batchSize: MaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchSize returns the effective batch size
func (s *Scheduler) BatchSize() int {
	return s.batchSize
}

// Partition splits requests into consecutive batches of at most size
// requests, keeping the input order.
func Partition(requests []Request, size int) []Batch {
	if len(requests) == 0 {
		return nil
	}
	size = clampBatchSize(size)

	batches := make([]Batch, 0, (len(requests)+size-1)/size)
	for offset := 0; offset < len(requests); offset += size {
		end := offset + size
		if end > len(requests) {
			end = len(requests)
		}
		batches = append(batches, Batch{Offset: offset, Requests: requests[offset:end]})
	}
	return batches
}

// Run translates tokens and returns one successful outcome per token in
// token order. On failure it returns the first failing outcome's error by
// position and no outcomes. All calls have returned and pooled connections
// are released before Run returns.
func (s *Scheduler) Run(ctx context.Context, tokens []string, pair LanguagePair) ([]Outcome, error) {
	if c, ok := s.client.(idleCloser); ok {
		defer c.CloseIdleConnections()
	}

	requests := make([]Request, len(tokens))
	for i, token := range tokens {
		requests[i] = Request{Token: token, Pair: pair}
	}
	outcomes := make([]Outcome, len(requests))
	logger := zerolog.Ctx(ctx)

	if s.pipelined {
		s.runPipelined(ctx, requests, outcomes)
		if err := firstFailure(ctx, outcomes); err != nil {
			return nil, err
		}
		return outcomes, nil
	}

	batches := Partition(requests, s.batchSize)
	for n, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, newError(Interrupted, "", "cancelled before batch start", err)
		}

		logger.Debug().
			Int("batch", n+1).
			Int("batches", len(batches)).
			Int("size", len(batch.Requests)).
			Msg("Dispatching batch")

		s.runBatch(ctx, batch, outcomes)

		end := batch.Offset + len(batch.Requests)
		if err := firstFailure(ctx, outcomes[batch.Offset:end]); err != nil {
			logger.Debug().Int("batch", n+1).Err(err).Msg("Batch failed")
			return nil, err
		}
	}

	return outcomes, nil
}

// runBatch runs every request of the batch concurrently and waits for all
// of them. Failures do not cancel siblings.
func (s *Scheduler) runBatch(ctx context.Context, batch Batch, outcomes []Outcome) {
	var g errgroup.Group
	g.SetLimit(len(batch.Requests))

	for i, req := range batch.Requests {
		idx := batch.Offset + i
		g.Go(func() error {
			outcomes[idx] = s.call(ctx, req)
			return outcomes[idx].Err
		})
	}

	_ = g.Wait()
}

// runPipelined keeps up to batchSize calls in flight over the whole
// sequence. No new call starts once a failure has been seen.
func (s *Scheduler) runPipelined(ctx context.Context, requests []Request, outcomes []Outcome) {
	var g errgroup.Group
	g.SetLimit(s.batchSize)
	var failed atomic.Bool

	for i, req := range requests {
		if failed.Load() || ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			outcomes[i] = s.call(ctx, req)
			if outcomes[i].Failed() {
				failed.Store(true)
			}
			return outcomes[i].Err
		})
	}

	_ = g.Wait()
}

func (s *Scheduler) call(ctx context.Context, req Request) Outcome {
	text, err := s.client.Translate(ctx, req)
	if err != nil {
		return Outcome{Err: classify(ctx, req.Token, err)}
	}
	return Outcome{Text: text}
}

// firstFailure returns the error of the first failed outcome. A cancelled
// context takes precedence so that the caller sees Interrupted.
func firstFailure(ctx context.Context, outcomes []Outcome) error {
	if err := ctx.Err(); err != nil {
		return newError(Interrupted, "", "", err)
	}
	for _, o := range outcomes {
		if o.Failed() {
			return o.Err
		}
	}
	return nil
}

// classify makes sure every failure carries an ErrorKind
func classify(ctx context.Context, token string, err error) error {
	if KindOf(err) != KindUnknown {
		return err
	}
	return transportError(ctx, token, err)
}

func clampBatchSize(n int) int {
	if n <= 0 || n > MaxBatchSize {
		return MaxBatchSize
	}
	return n
}
