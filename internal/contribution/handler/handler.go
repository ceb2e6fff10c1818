package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/internal/platform/metrics"
	"github.com/chiboi241-boop/EduScience/internal/platform/middleware"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/platform/httputil"
	"github.com/chiboi241-boop/EduScience/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,AuditReader

// Service defines the registry operations exposed over HTTP.
type Service interface {
	SetAuthority(ctx context.Context, principal domain.Principal) error
	SetSubmissionFee(ctx context.Context, fee int64) error
	SetRewardRate(ctx context.Context, rate int64) error
	SetValidationThreshold(ctx context.Context, n int64) error
	GetConfig(ctx context.Context) (models.RegistryConfig, error)
	FundPrincipal(ctx context.Context, principal domain.Principal, amount int64) error
	GetBalance(ctx context.Context, principal domain.Principal) (int64, error)

	SubmitContribution(ctx context.Context, req *models.SubmitRequest) (domain.ContributionID, error)
	UpdateContribution(ctx context.Context, id domain.ContributionID, metadata, description string) error
	ApproveContribution(ctx context.Context, id domain.ContributionID) error

	GetContribution(ctx context.Context, id domain.ContributionID) (*models.Contribution, bool, error)
	GetContributionUpdate(ctx context.Context, id domain.ContributionID) (*models.ContributionUpdate, bool, error)
	GetContributionCount(ctx context.Context) (uint64, error)
	CheckExistence(ctx context.Context, hash domain.DataHash) (bool, error)
}

// AuditReader serves the audit trail to operators.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

const defaultAuditLimit = 100

// Handler handles contribution registry endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	audit        AuditReader
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new registry Handler. auditReader and m may be nil.
func New(
	registry Service,
	auditReader AuditReader,
	logger *slog.Logger,
	m *metrics.Metrics,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		registry:     registry,
		audit:        auditReader,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger, h.metrics))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Use(middleware.BlockHeight(h.logger))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/authority", h.handleSetAuthority)
			r.Put("/params/submission-fee", h.handleSetSubmissionFee)
			r.Put("/params/reward-rate", h.handleSetRewardRate)
			r.Put("/params/validation-threshold", h.handleSetValidationThreshold)
			r.Get("/config", h.handleGetConfig)
			r.Get("/audit", h.handleListAudit)
			r.Post("/credits", h.handleFundPrincipal)
			r.Get("/balances/{principal}", h.handleGetBalance)
		})

		r.Route("/contributions", func(r chi.Router) {
			r.Post("/", h.handleSubmit)
			r.Get("/count", h.handleCount)
			r.Get("/exists/{hash}", h.handleExists)
			r.Get("/{id}", h.handleGet)
			r.Get("/{id}/update", h.handleGetUpdate)
			r.Patch("/{id}", h.handleUpdate)
			r.Post("/{id}/approve", h.handleApprove)
		})
	})
}

// fail logs err at a level matching its class and renders it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"caller", requestcontext.Caller(ctx),
		"error", err.Error(),
	}
	if r, ok := models.ReasonOf(err); ok {
		attrs = append(attrs, "reason", r.String())
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func contributionIDParam(r *http.Request) (domain.ContributionID, error) {
	id, err := domain.ParseContributionID(chi.URLParam(r, "id"))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeBadRequest, "contribution id must be a non-negative integer")
	}
	return id, nil
}

func auditLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultAuditLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer")
	}
	return n, nil
}
