// Package publisher fans registry audit events out to a store and optional
// sinks (e.g. a Kafka topic).
//
// The store is the source of truth for operator queries; sinks are
// best-effort and a sink failure never fails Emit. Each sink sits behind a
// circuit breaker so an unreachable broker is skipped instead of retried on
// every event. In async mode events are
// queued on a bounded buffer and persisted by a single background goroutine;
// Close drains the buffer before returning.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	audit "github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/platform/circuit"
)

// ErrBufferFull is returned by Emit in async mode when the queue is saturated.
var ErrBufferFull = errors.New("audit buffer full")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("audit publisher closed")

// Sink receives a copy of every persisted event.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Publisher emits audit events.
type Publisher struct {
	store   audit.Store
	sinks   []guardedSink
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time

	bufferSize int
	queue      chan audit.Event
	done       chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a queue of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

type guardedSink struct {
	Sink
	breaker *circuit.Breaker
}

// WithSink adds a best-effort downstream sink. breakerOpts tune the breaker
// guarding it.
func WithSink(s Sink, breakerOpts ...circuit.Option) Option {
	return func(p *Publisher) {
		if s != nil {
			p.sinks = append(p.sinks, guardedSink{
				Sink:    s,
				breaker: circuit.New("audit_sink", breakerOpts...),
			})
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithClock overrides the wall clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.queue = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

// Emit records an event. ID, Category and Timestamp are filled in when zero.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	event.Normalize(p.now())

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	if p.queue == nil {
		return p.persist(ctx, event)
	}

	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		if p.metrics != nil {
			p.metrics.Dropped.Inc()
		}
		p.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"event_id", event.ID,
		)
		return ErrBufferFull
	}
}

// List returns every event recorded for actor.
func (p *Publisher) List(ctx context.Context, actor domain.Principal) ([]audit.Event, error) {
	return p.store.ListByActor(ctx, actor)
}

// Recent returns up to limit events, most recent first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close stops accepting events and, in async mode, waits for the queue to drain.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	if p.queue != nil {
		close(p.queue)
		<-p.done
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.persist(context.Background(), event); err != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"event_id", event.ID,
				"error", err,
			)
		}
	}
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.PersistFailures.Inc()
		}
		return err
	}
	if p.metrics != nil {
		p.metrics.Emitted.WithLabelValues(string(event.Category)).Inc()
	}
	for _, sink := range p.sinks {
		p.publishToSink(ctx, sink, event)
	}
	return nil
}

func (p *Publisher) publishToSink(ctx context.Context, sink guardedSink, event audit.Event) {
	if !sink.breaker.Allow() {
		if p.metrics != nil {
			p.metrics.SinkSkipped.Inc()
		}
		return
	}
	if err := sink.Publish(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.SinkFailures.Inc()
		}
		p.logger.Warn("audit sink publish failed",
			"action", event.Action,
			"event_id", event.ID,
			"error", err,
		)
		if sink.breaker.RecordFailure() {
			p.logger.Error("audit sink circuit opened", "breaker", sink.breaker.Name())
		}
		return
	}
	sink.breaker.RecordSuccess()
}
