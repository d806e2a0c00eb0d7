package authz

import (
	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Service defines the authorization registry: role queries plus the
// admin-gated StoreOwner grant.
type Service interface {
	IsAdmin(addr ledger.Address) bool
	IsStoreOwner(addr ledger.Address) bool
	GrantStoreOwner(caller, target ledger.Address) error
}

type service struct {
	store *ledger.Store
	bus   *ledger.Bus
}

// NewService creates a new authorization service.
func NewService(store *ledger.Store, bus *ledger.Bus) Service {
	return &service{store: store, bus: bus}
}

func (s *service) IsAdmin(addr ledger.Address) bool {
	var ok bool
	s.store.View(func(st *ledger.State) error {
		ok = st.HasRole(addr, ledger.RoleAdmin)
		return nil
	})
	return ok
}

func (s *service) IsStoreOwner(addr ledger.Address) bool {
	var ok bool
	s.store.View(func(st *ledger.State) error {
		ok = st.HasRole(addr, ledger.RoleStoreOwner)
		return nil
	})
	return ok
}

// GrantStoreOwner adds the StoreOwner role to target. Granting twice is
// not an error; the second grant changes nothing.
func (s *service) GrantStoreOwner(caller, target ledger.Address) error {
	err := s.store.Update(func(st *ledger.State) error {
		if err := Authorize(st, OpGrantStoreOwner, caller, 0); err != nil {
			return err
		}
		st.GrantRole(target, ledger.RoleStoreOwner)
		return nil
	})
	if err != nil {
		return err
	}
	s.bus.Publish(ledger.StoreOwnerAdded{Target: target})
	return nil
}
