package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates signed access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the account.
	GenerateToken(ctx context.Context, accountID uuid.UUID, email string) (*Token, error)

	// ValidateToken verifies signature and validity window and returns the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a signed access token and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Claims is the decoded payload of a valid access token.
type Claims struct {
	AccountID uuid.UUID `json:"sub"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
