package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-signup-verify/internal/domain"
)

// AccountStore keeps signed-up accounts in process memory, indexed by ID and
// by normalized email.
type AccountStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]string // email -> id
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
	}
}

// Create stores a copy of a. The email must not already be registered.
func (r *AccountStore) Create(_ context.Context, a *domain.Account) error {
	email := domain.NormalizeIdentity(a.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[email]; ok {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	cp := *a
	cp.Email = email
	r.byID[cp.ID] = &cp
	r.byEmail[email] = cp.ID
	return nil
}

func (r *AccountStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[domain.NormalizeIdentity(email)]
	if !ok {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *AccountStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[domain.NormalizeIdentity(email)]
	return ok, nil
}
