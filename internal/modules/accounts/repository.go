package accounts

import (
	"context"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Repository defines the interface for account storage.
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByAddress(ctx context.Context, addr ledger.Address) (*Account, error)
}
