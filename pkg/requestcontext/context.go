// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them. Keeping this package free of
// net/http lets the registry service import it without pulling in transport code.
//
// Usage in services:
//
//	caller := requestcontext.Caller(ctx)
//	height := requestcontext.Height(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithCaller(ctx, "ST1TEST")
//	ctx = requestcontext.WithHeight(ctx, 10)
package requestcontext

import (
	"context"
	"time"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

type (
	callerKey      struct{}
	heightKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyCaller      = callerKey{}
	ContextKeyHeight      = heightKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Caller returns the authenticated principal, or "" when unauthenticated.
func Caller(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(ContextKeyCaller).(domain.Principal); ok {
		return p
	}
	return ""
}

// WithCaller injects the calling principal.
func WithCaller(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, p)
}

// Height returns the caller-supplied block height. Zero when unset.
func Height(ctx context.Context) domain.Height {
	if h, ok := ctx.Value(ContextKeyHeight).(domain.Height); ok {
		return h
	}
	return 0
}

// WithHeight injects the current block height.
func WithHeight(ctx context.Context, h domain.Height) context.Context {
	return context.WithValue(ctx, ContextKeyHeight, h)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped wall time. It stamps audit events only;
// ledger fields use Height. Falls back to time.Now() outside HTTP requests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
