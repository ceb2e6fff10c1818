// Package service implements the contribution registry's operations.
//
// Every mutating operation runs inside one store transaction: the config row,
// the contribution records and the hash index are read and written under the
// store's writer serialization, and nothing is committed unless the whole
// operation succeeds. Caller identity and block height come from the request
// context (see pkg/requestcontext).
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chiboi241-boop/EduScience/internal/contribution/metrics"
	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/contribution/ports"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/platform/sentinel"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

const tracerName = "github.com/chiboi241-boop/EduScience/internal/contribution/service"

// Service orchestrates the registry.
type Service struct {
	store          ports.Store
	settlement     ports.Settlement
	cache          ports.ExistenceCache
	funding        ports.Funding
	auditPublisher ports.AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	requireAuthorityForParams bool
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithExistenceCache mirrors registered hashes into cache.
func WithExistenceCache(cache ports.ExistenceCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithFunding enables balance crediting and queries. Without it both report
// a failed precondition.
func WithFunding(funding ports.Funding) Option {
	return func(s *Service) {
		s.funding = funding
	}
}

// WithAuthorityCallerForParams makes parameter setters require the caller to
// be the configured authority. By default any caller may change parameters
// once an authority exists.
func WithAuthorityCallerForParams(required bool) Option {
	return func(s *Service) {
		s.requireAuthorityForParams = required
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(store ports.Store, settlement ports.Settlement, opts ...Option) *Service {
	s := &Service{
		store:      store,
		settlement: settlement,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin opens a span and returns a finish func that records duration,
// rejection metrics and span status for the operation.
func (s *Service) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registry."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		defer span.End()
		if s.metrics != nil {
			s.metrics.ObserveOperation(op, start)
		}
		if errp == nil || *errp == nil {
			return
		}
		err := *errp
		reason := string(dErrors.CodeOf(err))
		if r, ok := models.ReasonOf(err); ok {
			reason = r.String()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		if s.metrics != nil {
			s.metrics.IncrementRejected(op, reason)
		}
	}
}

// requireCaller returns the authenticated principal from ctx.
func requireCaller(ctx context.Context) (domain.Principal, error) {
	caller := requestcontext.Caller(ctx)
	if caller == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "caller principal is required")
	}
	return caller, nil
}

// translate passes registry reasons and coded errors through untouched and
// wraps everything else as internal.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := models.ReasonOf(err); ok {
		return err
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg+": request cancelled")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) logAudit(ctx context.Context, event audit.Event, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
		event.RequestID = requestID
	}
	args := append(attributes,
		"event", string(event.Action),
		"actor", event.Actor,
		"height", event.Height,
		"log_type", "audit",
	)
	s.logger.InfoContext(ctx, string(event.Action), args...)

	if s.auditPublisher == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event.Action),
			"error", err,
		)
	}
}
