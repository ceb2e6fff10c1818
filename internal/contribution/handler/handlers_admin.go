package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiboi241-boop/EduScience/pkg/domain"
	dErrors "github.com/chiboi241-boop/EduScience/pkg/domain-errors"
	"github.com/chiboi241-boop/EduScience/pkg/platform/httputil"
)

func (h *Handler) handleSetAuthority(w http.ResponseWriter, r *http.Request) {
	var req SetAuthorityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid set authority request", err)
		return
	}
	// The service owns the null/empty check so it reports InvalidAuthority.
	if err := h.registry.SetAuthority(r.Context(), domain.Principal(req.Principal)); err != nil {
		h.fail(w, r, "failed to set authority", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) handleSetSubmissionFee(w http.ResponseWriter, r *http.Request) {
	h.setParameter(w, r, "submission fee", h.registry.SetSubmissionFee)
}

func (h *Handler) handleSetRewardRate(w http.ResponseWriter, r *http.Request) {
	h.setParameter(w, r, "reward rate", h.registry.SetRewardRate)
}

func (h *Handler) handleSetValidationThreshold(w http.ResponseWriter, r *http.Request) {
	h.setParameter(w, r, "validation threshold", h.registry.SetValidationThreshold)
}

func (h *Handler) setParameter(w http.ResponseWriter, r *http.Request, name string, set func(context.Context, int64) error) {
	var req ParameterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid "+name+" request", err)
		return
	}
	if req.Value == nil {
		h.fail(w, r, "invalid "+name+" request", dErrors.New(dErrors.CodeBadRequest, "value is required"))
		return
	}
	if err := set(r.Context(), *req.Value); err != nil {
		h.fail(w, r, "failed to set "+name, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.registry.GetConfig(r.Context())
	if err != nil {
		h.fail(w, r, "failed to load registry config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cfg)
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		httputil.WriteJSON(w, http.StatusOK, AuditResponse{Events: nil})
		return
	}
	limit, err := auditLimit(r)
	if err != nil {
		h.fail(w, r, "invalid audit query", err)
		return
	}
	events, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		h.fail(w, r, "failed to list audit events", dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AuditResponse{Events: events})
}

func (h *Handler) handleFundPrincipal(w http.ResponseWriter, r *http.Request) {
	var req CreditRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid credit request", err)
		return
	}
	if req.Amount == nil {
		h.fail(w, r, "invalid credit request", dErrors.New(dErrors.CodeBadRequest, "amount is required"))
		return
	}
	principal := domain.Principal(req.Principal)
	if err := h.registry.FundPrincipal(r.Context(), principal, *req.Amount); err != nil {
		h.fail(w, r, "failed to fund principal", err)
		return
	}
	balance, err := h.registry.GetBalance(r.Context(), principal)
	if err != nil {
		h.fail(w, r, "failed to read balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Principal: principal, Balance: balance})
}

func (h *Handler) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	principal, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		h.fail(w, r, "invalid balance query", err)
		return
	}
	balance, err := h.registry.GetBalance(r.Context(), principal)
	if err != nil {
		h.fail(w, r, "failed to read balance", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BalanceResponse{Principal: principal, Balance: balance})
}
