package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Account is a registered marketplace identity. The ledger only ever
// sees the Address; email and password exist to authenticate callers at
// the HTTP boundary.
type Account struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Address      ledger.Address `json:"address"`
	CreatedAt    time.Time      `json:"created_at"`
}
