package api

import (
	"net/http"

	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/service"
)

// ApplicationHandler handles the creator application endpoints.
type ApplicationHandler struct {
	applications   service.ApplicationService
	maxUploadBytes int64
}

// NewApplicationHandler creates an ApplicationHandler. maxUploadBytes bounds
// the whole multipart body of a submission.
func NewApplicationHandler(applications service.ApplicationService, maxUploadBytes int64) *ApplicationHandler {
	return &ApplicationHandler{
		applications:   applications,
		maxUploadBytes: maxUploadBytes,
	}
}

// Submit handles POST /api/creator-application.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, docs, err := parseApplicationRequest(w, r, h.maxUploadBytes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := h.applications.Submit(r.Context(), req.payload(), docs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitApplicationResponse{
		Message:       "Creator application submitted successfully",
		ApplicationID: id,
	})
}

// List handles GET /api/creator-applications with an optional ?status= filter.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.List(r.Context(), statusQuery(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, apps)
}

// Stats handles GET /api/creator-applications/stats.
func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.applications.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Get handles GET /api/creator-application/{wallet}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	wallet, err := walletParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	app, err := h.applications.GetByWallet(r.Context(), wallet)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, app)
}

// UpdateStatus handles PATCH /api/creator-application/{wallet}/status.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	wallet, err := walletParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := h.applications.UpdateStatus(r.Context(), wallet, req.Status)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateStatusResponse{
		Message:     "Application status updated successfully",
		Application: app,
	})
}

// Delete handles DELETE /api/creator-application/{wallet}.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	wallet, err := walletParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.applications.Delete(r.Context(), wallet); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
