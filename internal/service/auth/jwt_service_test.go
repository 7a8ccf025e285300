package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	accountID := uuid.New()
	svc := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))

	token, err := svc.GenerateToken(context.Background(), accountID, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Value)
	assert.Equal(t, fixedTime.Add(lifetime), token.ExpiresAt)

	claims, err := svc.ValidateToken(context.Background(), token.Value)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

// The payload must decode to the account id and email without the secret.
func TestGenerateTokenPayload(t *testing.T) {
	t.Parallel()

	accountID := uuid.New()
	svc := newHMACJWTService(testSecret, time.Hour, time.Now)

	token, err := svc.GenerateToken(context.Background(), accountID, "jane@example.com")
	require.NoError(t, err)

	parts := strings.Split(token.Value, ".")
	require.Len(t, parts, 3)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, accountID.String(), payload["sub"])
	assert.Equal(t, "jane@example.com", payload["email"])
	assert.Contains(t, payload, "exp")
	assert.Contains(t, payload, "iat")
	assert.NotContains(t, payload, "password")
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	accountID := uuid.New()

	issue := func(secret string, at time.Time) string {
		svc := newHMACJWTService(secret, lifetime, fixedClock(at))
		token, err := svc.GenerateToken(context.Background(), accountID, "jane@example.com")
		require.NoError(t, err)
		return token.Value
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   accountID.String(),
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(fixedTime),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(fixedTime),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  accountID.String(),
		IssuedAt: jwt.NewNumericDate(fixedTime),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"valid", issue(testSecret, fixedTime), fixedTime.Add(time.Minute), nil},
		{"within clock skew after expiry", issue(testSecret, fixedTime), fixedTime.Add(lifetime + 10*time.Second), nil},
		{"expired", issue(testSecret, fixedTime), fixedTime.Add(2 * lifetime), ErrExpiredToken},
		{"issued in the future", issue(testSecret, fixedTime.Add(time.Hour)), fixedTime, ErrTokenNotYetValid},
		{"wrong secret", issue(wrongSecret, fixedTime), fixedTime, ErrInvalidToken},
		{"malformed", "not.a.token", fixedTime, ErrInvalidToken},
		{"empty", "", fixedTime, ErrInvalidToken},
		{"alg none", noneToken, fixedTime, ErrInvalidToken},
		{"subject not a uuid", badSubject, fixedTime, ErrInvalidToken},
		{"missing expiry", noExpiry, fixedTime, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newHMACJWTService(testSecret, lifetime, fixedClock(tt.now))

			claims, err := svc.ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, accountID, claims.AccountID)
		})
	}
}
