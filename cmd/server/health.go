package main

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/chiboi241-boop/EduScience/pkg/platform/httputil"
)

const healthCheckTimeout = 2 * time.Second

// healthCheck pings one configured backend.
type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler runs every check and answers 503 when any of them fails.
// With no backends configured it always answers 200.
func healthHandler(checks []healthCheck, log *slog.Logger) http.HandlerFunc {
	sorted := append([]healthCheck(nil), checks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(sorted) > 0 {
			resp.Checks = make(map[string]string, len(sorted))
		}
		for _, hc := range sorted {
			if err := hc.check(ctx); err != nil {
				log.WarnContext(ctx, "health check failed", "backend", hc.name, "error", err)
				resp.Checks[hc.name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[hc.name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
