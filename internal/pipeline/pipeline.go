// Package pipeline runs the Kafka intake loop: TAF documents are read from
// the source topic, validated, and the resulting reports published to the
// sink topic.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/taf-validation-service/internal/observability"
)

// RawDocument is an unprocessed TAF message from the source topic.
type RawDocument struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputReport is a serialized validation result destined for the sink
// topic.
type OutputReport struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Extractor reads the next raw TAF document from the source, blocking until
// one arrives or the context is cancelled.
type Extractor interface {
	Extract(ctx context.Context) (RawDocument, error)
}

// Transformer validates a raw TAF document and produces its report.
type Transformer interface {
	Transform(ctx context.Context, raw RawDocument) (OutputReport, error)
}

// Loader writes a report to the destination.
type Loader interface {
	Load(ctx context.Context, report OutputReport) error
}

// Pipeline orchestrates the extract-validate-publish loop.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// Ready reports whether the pipeline has published at least one report.
// Messages skipped after a validation error do not count.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// CheckReadiness returns nil once the pipeline has published a report, or
// an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Run executes the intake loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processNext(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processNext handles one message end to end. Returns false if the pipeline
// should stop.
func (p *Pipeline) processNext(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}
	p.metrics.MessagesConsumed.Inc()
	*backoff = 200 * time.Millisecond

	report, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		p.logger.Warn("validation failed, skipping message",
			"error", err,
			"topic", raw.Topic,
			"partition", raw.Partition,
			"offset", raw.Offset,
		)
		p.metrics.TransformErrors.Inc()
		p.commitOffset(ctx, raw)
		return true
	}

	if err := p.loader.Load(ctx, report); err != nil {
		if ctx.Err() != nil {
			return false
		}
		// Not committed and not retried: after the backoff the loop moves on
		// to the next extracted message.
		p.logger.Error("publish failed", "error", err, "topic", raw.Topic, "offset", raw.Offset)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	p.metrics.MessagesProduced.Inc()
	p.commitOffset(ctx, raw)
	p.ready.Store(true)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances it. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw RawDocument) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
