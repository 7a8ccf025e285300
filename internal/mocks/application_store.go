package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/store"
)

// MockApplicationStore is an in-memory store.ApplicationStore keyed by
// wallet address. Function fields override the default behavior.
type MockApplicationStore struct {
	CreateFn       func(ctx context.Context, app *domain.CreatorApplication) error
	GetByWalletFn  func(ctx context.Context, wallet string) (*domain.CreatorApplication, error)
	ListFn         func(ctx context.Context, filter store.ApplicationFilter) ([]*domain.CreatorApplication, error)
	UpdateStatusFn func(
		ctx context.Context,
		wallet string,
		status domain.ApplicationStatus,
		updatedAt time.Time,
	) (*domain.CreatorApplication, error)
	StatsFn  func(ctx context.Context) (*domain.ApplicationStats, error)
	DeleteFn func(ctx context.Context, wallet string) error

	mu   sync.Mutex
	apps map[string]*domain.CreatorApplication
}

// NewMockApplicationStore creates an empty in-memory application store.
func NewMockApplicationStore() *MockApplicationStore {
	return &MockApplicationStore{apps: make(map[string]*domain.CreatorApplication)}
}

var _ store.ApplicationStore = (*MockApplicationStore)(nil)

func clone(app *domain.CreatorApplication) *domain.CreatorApplication {
	c := *app
	c.VerificationDocs = append([]string{}, app.VerificationDocs...)
	return &c
}

// Create implements store.ApplicationStore.
func (m *MockApplicationStore) Create(ctx context.Context, app *domain.CreatorApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, app)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.apps[app.WalletAddress]; exists {
		return store.ErrWalletExists
	}
	m.apps[app.WalletAddress] = clone(app)
	return nil
}

// GetByWallet implements store.ApplicationStore.
func (m *MockApplicationStore) GetByWallet(ctx context.Context, wallet string) (*domain.CreatorApplication, error) {
	if m.GetByWalletFn != nil {
		return m.GetByWalletFn(ctx, wallet)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[wallet]
	if !ok {
		return nil, store.ErrApplicationNotFound
	}
	return clone(app), nil
}

// List implements store.ApplicationStore with the same ordering as the
// PostgreSQL store: submitted_at DESC, then id DESC.
func (m *MockApplicationStore) List(
	ctx context.Context,
	filter store.ApplicationFilter,
) ([]*domain.CreatorApplication, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.CreatorApplication, 0, len(m.apps))
	for _, app := range m.apps {
		if filter.Status != nil && app.Status != *filter.Status {
			continue
		}
		out = append(out, clone(app))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

// UpdateStatus implements store.ApplicationStore.
func (m *MockApplicationStore) UpdateStatus(
	ctx context.Context,
	wallet string,
	status domain.ApplicationStatus,
	updatedAt time.Time,
) (*domain.CreatorApplication, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, wallet, status, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[wallet]
	if !ok {
		return nil, store.ErrApplicationNotFound
	}
	if err := app.UpdateStatus(status, updatedAt); err != nil {
		return nil, err
	}
	return clone(app), nil
}

// Stats implements store.ApplicationStore.
func (m *MockApplicationStore) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &domain.ApplicationStats{Total: int64(len(m.apps))}
	for _, app := range m.apps {
		switch app.Status {
		case domain.ApplicationStatusPending:
			stats.Pending++
		case domain.ApplicationStatusApproved:
			stats.Approved++
		case domain.ApplicationStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// Delete implements store.ApplicationStore.
func (m *MockApplicationStore) Delete(ctx context.Context, wallet string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, wallet)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[wallet]; !ok {
		return store.ErrApplicationNotFound
	}
	delete(m.apps, wallet)
	return nil
}

// WithTx returns the same store; the in-memory store has no transactions.
func (m *MockApplicationStore) WithTx(*sql.Tx) store.ApplicationStore {
	return m
}

// Count returns the number of stored applications.
func (m *MockApplicationStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.apps)
}
