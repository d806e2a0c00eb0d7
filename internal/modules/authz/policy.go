package authz

import (
	"fmt"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Op identifies a role-gated mutating operation.
type Op string

const (
	OpGrantStoreOwner  Op = "grant_store_owner"
	OpCreateStorefront Op = "create_storefront"
	OpAddProduct       Op = "add_product"
	OpWithdraw         Op = "withdraw_store_balance"
)

// Rule decides whether the caller may perform an operation against the
// current state. storefrontID is the targeted storefront, 0 when the
// operation targets none.
type Rule func(s *ledger.State, caller ledger.Address, storefrontID uint64) error

// policy is the authorization table: one predicate per gated operation,
// evaluated before any mutation.
var policy = map[Op]Rule{
	OpGrantStoreOwner: func(s *ledger.State, caller ledger.Address, _ uint64) error {
		if !s.HasRole(caller, ledger.RoleAdmin) {
			return fmt.Errorf("%w: %s is not an admin", ledger.ErrUnauthorized, caller)
		}
		return nil
	},
	OpCreateStorefront: func(s *ledger.State, caller ledger.Address, _ uint64) error {
		if !s.HasRole(caller, ledger.RoleStoreOwner) {
			return fmt.Errorf("%w: %s is not a store owner", ledger.ErrUnauthorized, caller)
		}
		return nil
	},
	OpAddProduct: requireStorefrontOwner,
	OpWithdraw:   requireStorefrontOwner,
}

// requireStorefrontOwner gates operations that mutate one storefront:
// the storefront must exist and the caller must be its owner. Holding
// StoreOwner for other storefronts is not enough.
func requireStorefrontOwner(s *ledger.State, caller ledger.Address, storefrontID uint64) error {
	sf, ok := s.Storefront(storefrontID)
	if !ok {
		return fmt.Errorf("%w: storefront %d", ledger.ErrNotFound, storefrontID)
	}
	if sf.Owner != caller {
		return fmt.Errorf("%w: %s does not own storefront %d", ledger.ErrUnauthorized, caller, storefrontID)
	}
	return nil
}

// Authorize evaluates the policy rule for op. Unknown ops are refused.
func Authorize(s *ledger.State, op Op, caller ledger.Address, storefrontID uint64) error {
	rule, ok := policy[op]
	if !ok {
		return fmt.Errorf("%w: no policy for operation %q", ledger.ErrUnauthorized, op)
	}
	return rule(s, caller, storefrontID)
}
