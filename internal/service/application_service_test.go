package service_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/mocks"
	"github.com/crowdchain/crowdchain-api/internal/platform/logger"
	"github.com/crowdchain/crowdchain-api/internal/service"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances by one second per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type applicationFixture struct {
	svc      service.ApplicationService
	apps     *mocks.MockApplicationStore
	observer *mocks.RecordingObserver
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	f := &applicationFixture{
		apps:     mocks.NewMockApplicationStore(),
		observer: &mocks.RecordingObserver{},
	}
	f.svc = service.NewApplicationService(f.apps, nil, log,
		service.WithClock(stepClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))),
		service.WithObserver(f.observer),
	)
	return f
}

func payload(wallet string) domain.CurrentPayload {
	return domain.CurrentPayload{
		WalletAddress:     wallet,
		FullName:          "Jane",
		Email:             "jane@x.com",
		ProfessionalTitle: "Engineer",
	}
}

func TestApplicationService_SubmitThenApprove(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	id, err := f.svc.Submit(ctx, payload("0xabc"), nil)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	submitted, err := f.svc.GetByWallet(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, id, submitted.ID)
	assert.Equal(t, domain.ApplicationStatusPending, submitted.Status)
	assert.Equal(t, "Professional with expertise in Engineer", submitted.Bio)
	assert.Equal(t, []string{}, submitted.VerificationDocs)
	assert.True(t, submitted.SubmittedAt.Equal(submitted.UpdatedAt))

	updated, err := f.svc.UpdateStatus(ctx, "0xabc", "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, updated.Status)
	assert.True(t, updated.UpdatedAt.After(submitted.SubmittedAt))
	assert.True(t, updated.SubmittedAt.Equal(submitted.SubmittedAt))

	assert.Equal(t, 1, f.observer.Submissions)
	assert.Equal(t, []domain.ApplicationStatus{domain.ApplicationStatusApproved}, f.observer.StatusChanges)
}

func TestApplicationService_SubmitEncodesDocuments(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)

	docs := []domain.Document{
		{Filename: "id.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		{Filename: "photo.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}},
	}
	_, err := f.svc.Submit(context.Background(), payload("0xdocs"), docs)
	require.NoError(t, err)

	app, err := f.svc.GetByWallet(context.Background(), "0xdocs")
	require.NoError(t, err)
	require.Len(t, app.VerificationDocs, 2)
	assert.Equal(t, "data:application/pdf;base64,JVBERg==", app.VerificationDocs[0])
	assert.True(t, strings.HasPrefix(app.VerificationDocs[1], "data:image/png;base64,"))
}

func TestApplicationService_SubmitLegacyPayload(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)

	_, err := f.svc.Submit(context.Background(), domain.LegacyPayload{
		WalletAddress: "0xLEGACY",
		FullName:      "Sam",
		Email:         "sam@example.com",
		Experience:    "Designer",
		Portfolio:     "https://sam.example.com",
	}, nil)
	require.NoError(t, err)

	app, err := f.svc.GetByWallet(context.Background(), "0xlegacy")
	require.NoError(t, err)
	assert.Equal(t, "Designer", app.ProfessionalTitle)
	assert.Equal(t, "https://sam.example.com", app.WebsiteURL)
	assert.Equal(t, "0xlegacy", app.WalletAddress)
}

func TestApplicationService_DuplicateWalletConflicts(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, payload("0xAbC"), nil)
	require.NoError(t, err)
	before, err := f.svc.GetByWallet(ctx, "0xabc")
	require.NoError(t, err)

	second := payload("0XABC")
	second.FullName = "Impostor"
	_, err = f.svc.Submit(ctx, second, nil)
	assert.ErrorIs(t, err, service.ErrApplicationExists)

	after, err := f.svc.GetByWallet(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, f.apps.Count())
	assert.Equal(t, 1, f.observer.Submissions)
}

func TestApplicationService_SubmitRaceLoserConflicts(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	f.apps.CreateFn = func(context.Context, *domain.CreatorApplication) error {
		return store.ErrWalletExists
	}

	_, err := f.svc.Submit(context.Background(), payload("0xrace"), nil)
	assert.ErrorIs(t, err, service.ErrApplicationExists)
}

func TestApplicationService_SubmitValidation(t *testing.T) {
	t.Parallel()

	tooMany := make([]domain.Document, domain.MaxVerificationDocs+1)
	tests := []struct {
		name    string
		payload domain.SubmissionPayload
		docs    []domain.Document
		want    error
	}{
		{name: "missing wallet", payload: payload(""), want: domain.ErrValidation},
		{name: "missing title", payload: domain.CurrentPayload{
			WalletAddress: "0x1", FullName: "Jane", Email: "jane@x.com",
		}, want: domain.ErrValidation},
		{name: "bad email", payload: domain.CurrentPayload{
			WalletAddress: "0x1", FullName: "Jane", Email: "jane", ProfessionalTitle: "Engineer",
		}, want: domain.ErrInvalidEmail},
		{name: "too many documents", payload: payload("0x1"), docs: tooMany, want: domain.ErrTooManyDocuments},
		{name: "document too large", payload: payload("0x1"), docs: []domain.Document{
			{Filename: "big.bin", Data: make([]byte, domain.MaxDocumentSize+1)},
		}, want: domain.ErrDocumentTooLarge},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newApplicationFixture(t)

			id, err := f.svc.Submit(context.Background(), tc.payload, tc.docs)
			assert.Equal(t, uuid.Nil, id)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, 0, f.apps.Count())
		})
	}
}

func TestApplicationService_GetByWalletNotFound(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)

	_, err := f.svc.GetByWallet(context.Background(), "0xnothing")
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
}

func TestApplicationService_UpdateStatusInvalid(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, payload("0xabc"), nil)
	require.NoError(t, err)
	before, err := f.svc.GetByWallet(ctx, "0xabc")
	require.NoError(t, err)

	for _, status := range []string{"", "approved", "ARCHIVED", "PENDING "} {
		_, err := f.svc.UpdateStatus(ctx, "0xabc", status)
		assert.ErrorIs(t, err, domain.ErrInvalidApplicationStatus, "status %q", status)
		assert.True(t, domain.IsValidationError(err))
	}

	after, err := f.svc.GetByWallet(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, f.observer.StatusChanges)
}

func TestApplicationService_UpdateStatusUnknownWallet(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), "0xnothing", "APPROVED")
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
}

func TestApplicationService_UpdateStatusSameState(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, payload("0xabc"), nil)
	require.NoError(t, err)

	app, err := f.svc.UpdateStatus(ctx, "0XABC", "PENDING")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.True(t, app.UpdatedAt.After(app.SubmittedAt))
}

func TestApplicationService_StatsAndOrdering(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	for _, wallet := range []string{"0xa", "0xb", "0xc"} {
		_, err := f.svc.Submit(ctx, payload(wallet), nil)
		require.NoError(t, err)
	}
	_, err := f.svc.UpdateStatus(ctx, "0xa", "APPROVED")
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, "0xb", "REJECTED")
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)

	all, err := f.svc.List(ctx, nil)
	require.NoError(t, err)
	wallets := make([]string, 0, len(all))
	for _, app := range all {
		wallets = append(wallets, app.WalletAddress)
	}
	assert.Equal(t, []string{"0xc", "0xb", "0xa"}, wallets)

	approved := domain.ApplicationStatusApproved
	filtered, err := f.svc.List(ctx, &approved)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "0xa", filtered[0].WalletAddress)

	bogus := domain.ApplicationStatus("DONE")
	_, err = f.svc.List(ctx, &bogus)
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationStatus)
}

func TestApplicationService_Delete(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, payload("0xabc"), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "0xABC"))
	_, err = f.svc.GetByWallet(ctx, "0xabc")
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, "0xabc"), store.ErrApplicationNotFound)
}

func TestApplicationService_StoreFailuresAreInternal(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection refused")
	f := newApplicationFixture(t)
	f.apps.GetByWalletFn = func(context.Context, string) (*domain.CreatorApplication, error) { return nil, boom }
	f.apps.ListFn = func(context.Context, store.ApplicationFilter) ([]*domain.CreatorApplication, error) {
		return nil, boom
	}
	f.apps.UpdateStatusFn = func(
		context.Context, string, domain.ApplicationStatus, time.Time,
	) (*domain.CreatorApplication, error) {
		return nil, boom
	}
	f.apps.StatsFn = func(context.Context) (*domain.ApplicationStats, error) { return nil, boom }
	f.apps.DeleteFn = func(context.Context, string) error { return boom }
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, payload("0xabc"), nil)
	assert.Equal(t, service.ErrInternal, err)
	_, err = f.svc.GetByWallet(ctx, "0xabc")
	assert.Equal(t, service.ErrInternal, err)
	_, err = f.svc.List(ctx, nil)
	assert.Equal(t, service.ErrInternal, err)
	_, err = f.svc.UpdateStatus(ctx, "0xabc", "APPROVED")
	assert.Equal(t, service.ErrInternal, err)
	_, err = f.svc.Stats(ctx)
	assert.Equal(t, service.ErrInternal, err)
	assert.Equal(t, service.ErrInternal, f.svc.Delete(ctx, "0xabc"))
}

func TestApplicationService_ConcurrentSubmitsOneWins(t *testing.T) {
	t.Parallel()
	f := newApplicationFixture(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(context.Background(), payload("0xsame"), nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrApplicationExists):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
}

func TestApplicationService_SubmitRunsInTransaction(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	apps := mocks.NewMockApplicationStore()
	log, _ := logger.NewTestLogger(t)
	svc := service.NewApplicationService(apps, db, log)

	t.Run("commits on success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		_, err := svc.Submit(context.Background(), payload("0xtx"), nil)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Submit(context.Background(), payload("0xtx"), nil)
		assert.ErrorIs(t, err, service.ErrApplicationExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is internal", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

		_, err := svc.Submit(context.Background(), payload("0xother"), nil)
		assert.Equal(t, service.ErrInternal, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
