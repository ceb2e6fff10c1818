package middleware

import (
	"log/slog"
	"net/http"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

// HeaderBlockHeight carries the caller-supplied logical clock.
const HeaderBlockHeight = "X-Block-Height"

// BlockHeight requires a decimal X-Block-Height header and stores it in the
// request context. The registry never derives height from wall time.
func BlockHeight(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h, err := domain.ParseHeight(r.Header.Get(HeaderBlockHeight))
			if err != nil {
				logger.DebugContext(r.Context(), "rejecting request without block height",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusBadRequest, "bad_request", "X-Block-Height header must be a non-negative integer")
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithHeight(r.Context(), h)))
		})
	}
}

