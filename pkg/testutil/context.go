package testutil

import (
	"context"
	"net/http"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// CallerContext returns a context carrying the caller and block height, the
// state RequireAuth and BlockHeight establish for a request.
func CallerContext(caller domain.Principal, height domain.Height) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithHeight(ctx, height)
}

// WithCaller adds a caller principal to the request context.
// Empty principals are ignored.
func WithCaller(req *http.Request, caller domain.Principal) *http.Request {
	if caller == "" {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithHeight adds a block height to the request context.
func WithHeight(req *http.Request, height domain.Height) *http.Request {
	return req.WithContext(requestcontext.WithHeight(req.Context(), height))
}
