package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/crowdchain/crowdchain-api/internal/api"
	apimw "github.com/crowdchain/crowdchain-api/internal/api/middleware"
	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/platform/metrics"
	"github.com/crowdchain/crowdchain-api/internal/platform/ratelimit"
	"github.com/crowdchain/crowdchain-api/internal/service"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

const corsMaxAge = 300

// routerDeps carries everything newRouter needs. A nil limiter disables rate
// limiting on /auth.
type routerDeps struct {
	logger         *slog.Logger
	credentials    service.CredentialService
	applications   service.ApplicationService
	jwtService     auth.JWTService
	adminEmails    []string
	corsOrigins    []string
	limiter        ratelimit.Limiter
	metrics        *metrics.Metrics
	maxUploadBytes int64
}

// newRouter creates the HTTP handler with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Trace(deps.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.corsOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", apimw.TraceHeader},
		ExposedHeaders: []string{apimw.TraceHeader, "Retry-After"},
		MaxAge:         corsMaxAge,
	}))
	r.Use(deps.metrics.Instrument)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authHandler := api.NewAuthHandler(deps.credentials)
	applicationHandler := api.NewApplicationHandler(deps.applications, deps.maxUploadBytes)
	infoHandler := api.NewInfoHandler(deps.applications)
	authMiddleware := apimw.NewAuthMiddleware(deps.jwtService, deps.adminEmails)

	r.Get("/", infoHandler.Info)
	r.Get("/health", infoHandler.Health)
	r.Method(http.MethodGet, "/metrics", deps.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		if deps.limiter != nil {
			r.Use(apimw.RateLimit(deps.limiter))
		}
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.With(authMiddleware.Authenticate).Get("/me", authHandler.Me)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/creator-application", applicationHandler.Submit)
		r.Get("/creator-application/{wallet}", applicationHandler.Get)

		// Review endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAdmin)
			r.Get("/creator-applications", applicationHandler.List)
			r.Get("/creator-applications/stats", applicationHandler.Stats)
			r.Patch("/creator-application/{wallet}/status", applicationHandler.UpdateStatus)
			r.Delete("/creator-application/{wallet}", applicationHandler.Delete)
		})
	})

	return r
}
