package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

type memoryRepository struct {
	mu        sync.RWMutex
	byEmail   map[string]*Account
	byAddress map[ledger.Address]*Account
}

// NewMemoryRepository creates an in-memory account repository. Accounts
// are boundary identities, not part of the durable ledger snapshot, so
// they live for the process lifetime only.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byEmail:   make(map[string]*Account),
		byAddress: make(map[ledger.Address]*Account),
	}
}

func (r *memoryRepository) CreateAccount(_ context.Context, a *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return fmt.Errorf("account with email %s already exists", a.Email)
	}
	cp := *a
	r.byEmail[a.Email] = &cp
	r.byAddress[a.Address] = &cp
	return nil
}

func (r *memoryRepository) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("account with email %s not found", email)
	}
	cp := *a
	return &cp, nil
}

func (r *memoryRepository) GetAccountByAddress(_ context.Context, addr ledger.Address) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byAddress[addr]
	if !ok {
		return nil, fmt.Errorf("account with address %s not found", addr)
	}
	cp := *a
	return &cp, nil
}
