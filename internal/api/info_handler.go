package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/service"
)

// Endpoints lists the public routes shown by the info endpoint.
var Endpoints = map[string]string{
	"GET /":                                          "API status and information",
	"GET /health":                                    "Liveness check",
	"POST /auth/signup":                              "Create an account",
	"POST /auth/login":                               "Exchange credentials for an access token",
	"GET /auth/me":                                   "Account behind the bearer token",
	"POST /api/creator-application":                  "Submit creator application",
	"GET /api/creator-applications":                  "List all creator applications",
	"GET /api/creator-applications/stats":            "Creator application counts by status",
	"GET /api/creator-application/{wallet}":          "Get creator application by wallet address",
	"PATCH /api/creator-application/{wallet}/status": "Update creator application status",
	"DELETE /api/creator-application/{wallet}":       "Delete creator application",
}

// InfoHandler serves the service description and the liveness check.
type InfoHandler struct {
	applications service.ApplicationService
	now          func() time.Time
}

// NewInfoHandler creates an InfoHandler.
func NewInfoHandler(applications service.ApplicationService) *InfoHandler {
	return &InfoHandler{applications: applications, now: time.Now}
}

// Info handles GET /. Stats are omitted when the store cannot be read; the
// endpoint itself never fails.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	resp := InfoResponse{
		Message:   "CrowdChain Backend API",
		Status:    "running",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Database:  "PostgreSQL connected",
		Endpoints: Endpoints,
	}

	stats, err := h.applications.Stats(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("application stats unavailable for info endpoint",
			slog.String("error", err.Error()))
		resp.Database = "PostgreSQL connection error"
	} else {
		resp.ApplicationStats = &stats
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Health handles GET /health.
func (h *InfoHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
