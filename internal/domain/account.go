package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account validation errors
var (
	ErrEmptyAccountID      = errors.New("account ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Account represents a registered user of the CrowdChain backend.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewAccount creates a new Account for an already hashed password.
// The email is normalized before validation.
func NewAccount(email, hashedPassword string) (*Account, error) {
	account := &Account{
		ID:             uuid.New(),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if err := ValidateEmail(a.Email); err != nil {
		return err
	}

	if a.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is present and a bare RFC 5322 address.
// Display-name forms such as "Jane <jane@x.com>" are rejected.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	// mail.ParseAddress accepts dotless domains like "a@b"
	at := strings.LastIndex(email, "@")
	domainPart := email[at+1:]
	dot := strings.Index(domainPart, ".")
	if dot <= 0 || dot == len(domainPart)-1 {
		return ErrInvalidEmail
	}

	return nil
}
