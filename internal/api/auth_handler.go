package api

import (
	"net/http"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/api/middleware"
	"github.com/crowdchain/crowdchain-api/internal/api/shared"
	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/service"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

// AuthHandler handles the signup and login endpoints.
type AuthHandler struct {
	credentials service.CredentialService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(credentials service.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.credentials.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newAccountResponse(account))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.credentials.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message:     "success",
		AccessToken: result.Token,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Me handles GET /auth/me. It must run behind AuthMiddleware.Authenticate.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "Authorization header required")
		return
	}

	account, err := h.credentials.Account(r.Context(), claims.AccountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newAccountResponse(account))
}

// decodeAndValidate decodes a JSON body into v and runs its validate tags,
// writing a 400 and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("", msgInvalidRequest, nil), "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("", shared.FormatValidationError(err), nil), "")
		return false
	}
	return true
}
