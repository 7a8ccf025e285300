package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/crowdchain/crowdchain-api/internal/domain"
	"github.com/crowdchain/crowdchain-api/internal/store"
	"github.com/google/uuid"
)

// MockAccountStore is an in-memory store.AccountStore. Function fields
// override the map-backed default behavior.
type MockAccountStore struct {
	CreateFn     func(ctx context.Context, account *domain.Account) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.Account, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	CreateError     error
	GetByEmailError error

	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// NewMockAccountStore creates an empty in-memory account store.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{accounts: make(map[string]*domain.Account)}
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// Create implements store.AccountStore.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Email]; exists {
		return store.ErrEmailExists
	}
	stored := *account
	m.accounts[account.Email] = &stored
	return nil
}

// GetByEmail implements store.AccountStore.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[email]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	found := *account
	return &found, nil
}

// GetByID implements store.AccountStore.
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.accounts {
		if account.ID == id {
			found := *account
			return &found, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// WithTx returns the same store; the in-memory store has no transactions.
func (m *MockAccountStore) WithTx(*sql.Tx) store.AccountStore {
	return m
}

// Count returns the number of stored accounts.
func (m *MockAccountStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}
