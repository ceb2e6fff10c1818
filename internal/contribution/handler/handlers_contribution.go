package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiboi241-boop/EduScience/internal/contribution/models"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/httputil"
)

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitContributionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid submit request", err)
		return
	}
	// A malformed hex string is reported like a wrong-length hash; the service
	// sees nil bytes and applies its own precedence.
	raw, err := domain.DecodeHex(req.DataHash)
	if err != nil {
		raw = nil
	}

	id, err := h.registry.SubmitContribution(r.Context(), &models.SubmitRequest{
		DataHash:      raw,
		Metadata:      req.Metadata,
		Category:      models.Category(req.Category),
		DataType:      models.DataType(req.DataType),
		Description:   req.Description,
		Location:      req.Location,
		Expiry:        domain.Height(req.Expiry),
		InitialPoints: req.InitialPoints,
	})
	if err != nil {
		h.fail(w, r, "failed to submit contribution", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SubmitContributionResponse{ID: id})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDParam(r)
	if err != nil {
		h.fail(w, r, "invalid contribution id", err)
		return
	}
	var req UpdateContributionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, "invalid update request", err)
		return
	}
	if err := h.registry.UpdateContribution(r.Context(), id, req.Metadata, req.Description); err != nil {
		h.fail(w, r, "failed to update contribution", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDParam(r)
	if err != nil {
		h.fail(w, r, "invalid contribution id", err)
		return
	}
	if err := h.registry.ApproveContribution(r.Context(), id); err != nil {
		h.fail(w, r, "failed to approve contribution", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDParam(r)
	if err != nil {
		h.fail(w, r, "invalid contribution id", err)
		return
	}
	c, found, err := h.registry.GetContribution(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to load contribution", err)
		return
	}
	if !found {
		httputil.WriteError(w, models.Fail(models.ReasonNotFound, "contribution not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContributionResponse(c))
}

func (h *Handler) handleGetUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := contributionIDParam(r)
	if err != nil {
		h.fail(w, r, "invalid contribution id", err)
		return
	}
	u, found, err := h.registry.GetContributionUpdate(r.Context(), id)
	if err != nil {
		h.fail(w, r, "failed to load contribution update", err)
		return
	}
	if !found {
		httputil.WriteError(w, models.Fail(models.ReasonNotFound, "no update recorded for contribution"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.registry.GetContributionCount(r.Context())
	if err != nil {
		h.fail(w, r, "failed to count contributions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (h *Handler) handleExists(w http.ResponseWriter, r *http.Request) {
	raw, err := domain.DecodeHex(chi.URLParam(r, "hash"))
	if err != nil {
		h.fail(w, r, "invalid data hash", err)
		return
	}
	hash, ok := domain.DataHashFromBytes(raw)
	if !ok {
		h.fail(w, r, "invalid data hash", models.Fail(models.ReasonInvalidHash, "data hash must be exactly 32 bytes"))
		return
	}
	exists, err := h.registry.CheckExistence(r.Context(), hash)
	if err != nil {
		h.fail(w, r, "failed to check data hash", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExistsResponse{Exists: exists})
}

