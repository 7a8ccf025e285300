package api

import (
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/google/uuid"
)

// SignupRequest defines the payload for the signup endpoint. The password
// policy itself is enforced by the credential service.
type SignupRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	// ExpiresAt is the RFC 3339 expiry of the access token
	ExpiresAt string `json:"expires_at"`
}

// ApplicationRequest is the JSON form of a creator application. Multipart
// submissions carry the same field names as form values.
type ApplicationRequest struct {
	WalletAddress     string `json:"walletAddress"`
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	ProfessionalTitle string `json:"professionalTitle"`
	LinkedIn          string `json:"linkedIn"`
	Website           string `json:"website"`
	Bio               string `json:"bio"`

	// Sent by older clients in place of professionalTitle and website.
	Experience string `json:"experience"`
	Portfolio  string `json:"portfolio"`
}

// SubmitApplicationResponse is returned when an application is accepted.
type SubmitApplicationResponse struct {
	Message       string    `json:"message"`
	ApplicationID uuid.UUID `json:"applicationId"`
}

// UpdateStatusRequest defines the payload for the status update endpoint.
// The value is checked by the service so every invalid status gets the
// same message.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse is returned after a status change.
type UpdateStatusResponse struct {
	Message     string                     `json:"message"`
	Application *domain.CreatorApplication `json:"application"`
}

// InfoResponse describes the running service.
type InfoResponse struct {
	Message          string                   `json:"message"`
	Status           string                   `json:"status"`
	Timestamp        string                   `json:"timestamp"`
	Database         string                   `json:"database"`
	Endpoints        map[string]string        `json:"endpoints"`
	ApplicationStats *domain.ApplicationStats `json:"applicationStats,omitempty"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}

// payload picks the submission shape. A request carrying experience or
// portfolio is legacy; its newer fields travel along and win per field.
func (req ApplicationRequest) payload() domain.SubmissionPayload {
	if req.Experience != "" || req.Portfolio != "" {
		return domain.LegacyPayload{
			WalletAddress:     req.WalletAddress,
			FullName:          req.FullName,
			Email:             req.Email,
			ProfessionalTitle: req.ProfessionalTitle,
			Experience:        req.Experience,
			WebsiteURL:        req.Website,
			Portfolio:         req.Portfolio,
			LinkedInURL:       req.LinkedIn,
			Bio:               req.Bio,
		}
	}
	return domain.CurrentPayload{
		WalletAddress:     req.WalletAddress,
		FullName:          req.FullName,
		Email:             req.Email,
		ProfessionalTitle: req.ProfessionalTitle,
		LinkedInURL:       req.LinkedIn,
		WebsiteURL:        req.Website,
		Bio:               req.Bio,
	}
}
