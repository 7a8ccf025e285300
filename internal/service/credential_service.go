package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/service/auth"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/google/uuid"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// CredentialService registers accounts and exchanges credentials for tokens.
type CredentialService interface {
	// Signup validates the email and password policy, rejects a registered
	// email with ErrAccountExists and stores a bcrypt hash of the password.
	Signup(ctx context.Context, email, password string) (*domain.Account, error)

	// Login returns ErrAccountNotFound for an unknown email,
	// ErrInvalidCredentials for a wrong password and a signed token otherwise.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Account returns the account a validated token was issued to. A token
	// whose account no longer exists is reported as auth.ErrInvalidToken.
	Account(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

type credentialServiceImpl struct {
	accounts store.AccountStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	observer Observer
	logger   *slog.Logger
}

// NewCredentialService creates a CredentialService. A nil observer discards events.
func NewCredentialService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	observer Observer,
	logger *slog.Logger,
) CredentialService {
	if accounts == nil || hasher == nil || verifier == nil || tokens == nil {
		panic("credential service dependencies cannot be nil")
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &credentialServiceImpl{
		accounts: accounts,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		observer: observer,
		logger:   logger.With(slog.String("component", "credential_service")),
	}
}

// Signup implements CredentialService.
func (s *credentialServiceImpl) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	const op = "signup"
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		s.observer.AuthAttempt(op, OutcomeInvalid)
		return nil, domain.NewValidationError("email", "must be a valid email address", err)
	}
	if err := domain.ValidatePassword(password); err != nil {
		s.observer.AuthAttempt(op, OutcomeInvalid)
		return nil, err
	}

	_, err := s.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Debug("signup with registered email")
		s.observer.AuthAttempt(op, OutcomeConflict)
		return nil, ErrAccountExists
	case !errors.Is(err, store.ErrAccountNotFound):
		log.Error("failed to look up account during signup", slog.String("error", err.Error()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	account, err := domain.NewAccount(email, hashed)
	if err != nil {
		log.Error("failed to build account", slog.String("error", err.Error()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup lost a race on the email constraint")
			s.observer.AuthAttempt(op, OutcomeConflict)
			return nil, ErrAccountExists
		}
		log.Error("failed to create account", slog.String("error", err.Error()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	log.Info("account created", slog.String("account_id", account.ID.String()))
	s.observer.AuthAttempt(op, OutcomeSuccess)
	return account, nil
}

// Login implements CredentialService.
func (s *credentialServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "login"
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("login for unknown email")
			s.observer.AuthAttempt(op, OutcomeNotFound)
			return nil, ErrAccountNotFound
		}
		log.Error("failed to look up account during login", slog.String("error", err.Error()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	if err := s.verifier.Compare(account.HashedPassword, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			log.Debug("login with wrong password", slog.String("account_id", account.ID.String()))
			s.observer.AuthAttempt(op, OutcomeDenied)
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to verify password",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	token, err := s.tokens.GenerateToken(ctx, account.ID, account.Email)
	if err != nil {
		log.Error("failed to issue token",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		s.observer.AuthAttempt(op, OutcomeError)
		return nil, ErrInternal
	}

	log.Info("login succeeded", slog.String("account_id", account.ID.String()))
	s.observer.AuthAttempt(op, OutcomeSuccess)
	return &LoginResult{Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

// Account implements CredentialService.
func (s *credentialServiceImpl) Account(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Debug("token for missing account", slog.String("account_id", id.String()))
			return nil, auth.ErrInvalidToken
		}
		log.Error("failed to load account",
			slog.String("error", err.Error()),
			slog.String("account_id", id.String()))
		return nil, ErrInternal
	}
	return account, nil
}
