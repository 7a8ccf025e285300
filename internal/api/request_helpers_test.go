package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdchain/crowdchain-api/internal/domain"
)

func withWallet(r *http.Request, wallet string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("wallet", wallet)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWalletParam(t *testing.T) {
	req := withWallet(httptest.NewRequest(http.MethodGet, "/", nil), "  0xABC  ")
	wallet, err := walletParam(req)
	require.NoError(t, err)
	assert.Equal(t, "0xABC", wallet)

	req = withWallet(httptest.NewRequest(http.MethodGet, "/", nil), " ")
	_, err = walletParam(req)
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestStatusQuery(t *testing.T) {
	assert.Nil(t, statusQuery(httptest.NewRequest(http.MethodGet, "/", nil)))

	status := statusQuery(httptest.NewRequest(http.MethodGet, "/?status=APPROVED", nil))
	require.NotNil(t, status)
	assert.Equal(t, domain.ApplicationStatusApproved, *status)

	// Unknown values pass through for the service to reject.
	status = statusQuery(httptest.NewRequest(http.MethodGet, "/?status=approved", nil))
	require.NotNil(t, status)
	assert.False(t, status.IsValid())
}

func TestApplicationRequestPayload(t *testing.T) {
	tests := []struct {
		name       string
		req        ApplicationRequest
		wantLegacy bool
	}{
		{
			name:       "current fields",
			req:        ApplicationRequest{ProfessionalTitle: "Designer", Website: "https://a.example"},
			wantLegacy: false,
		},
		{
			name:       "legacy fields only",
			req:        ApplicationRequest{Experience: "Designer", Portfolio: "https://a.example"},
			wantLegacy: true,
		},
		{
			name:       "experience alone",
			req:        ApplicationRequest{Experience: "Designer"},
			wantLegacy: true,
		},
		{
			name:       "mixed carries legacy fallback",
			req:        ApplicationRequest{ProfessionalTitle: "Designer", Portfolio: "https://a.example"},
			wantLegacy: true,
		},
		{
			name:       "empty",
			req:        ApplicationRequest{},
			wantLegacy: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, legacy := tt.req.payload().(domain.LegacyPayload)
			assert.Equal(t, tt.wantLegacy, legacy)
		})
	}
}

func TestIsBodyTooLarge(t *testing.T) {
	assert.True(t, isBodyTooLarge(&http.MaxBytesError{Limit: 10}))
	assert.True(t, isBodyTooLarge(multipart.ErrMessageTooLarge))
	assert.False(t, isBodyTooLarge(errors.New("unexpected EOF")))
}
