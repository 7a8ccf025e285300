package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication and admin gating for routes.
type AuthMiddleware struct {
	jwtService  auth.JWTService
	adminEmails map[string]struct{}
}

// NewAuthMiddleware creates an AuthMiddleware. adminEmails lists the
// accounts allowed through RequireAdmin; an empty list leaves admin
// routes open.
func NewAuthMiddleware(jwtService auth.JWTService, adminEmails []string) *AuthMiddleware {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = domain.NormalizeEmail(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &AuthMiddleware{
		jwtService:  jwtService,
		adminEmails: admins,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// stores its claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shared.ClaimsKey, claims)))
	})
}

// RequireAdmin authenticates the request and checks the token email against
// the configured admin list. With no admins configured it passes every
// request through unchanged.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(m.adminEmails) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		if _, admin := m.adminEmails[domain.NormalizeEmail(claims.Email)]; !admin {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Forbidden", domain.ErrUnauthorized,
				shared.WithElevatedLogLevel())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shared.ClaimsKey, claims)))
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Authorization header required", auth.ErrMissingToken)
		return nil, false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err)
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
		}
		return nil, false
	}
	return claims, true
}

// GetClaims returns the token claims stored by Authenticate or RequireAdmin.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.ClaimsKey).(*auth.Claims)
	return claims, ok
}
