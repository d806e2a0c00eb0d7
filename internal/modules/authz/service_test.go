package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

const (
	adminAddr    = ledger.Address("0xadmin")
	ownerAddr    = ledger.Address("0xowner")
	strangerAddr = ledger.Address("0xstranger")
)

func newTestService(t *testing.T) (Service, *ledger.Store, *ledger.Bus) {
	t.Helper()
	store := ledger.NewStore()
	store.Update(func(st *ledger.State) error {
		st.GrantRole(adminAddr, ledger.RoleAdmin)
		return nil
	})
	bus := ledger.NewBus()
	return NewService(store, bus), store, bus
}

func TestService_GrantStoreOwner(t *testing.T) {
	t.Parallel()

	t.Run("admin grants store owner", func(t *testing.T) {
		t.Parallel()
		svc, _, bus := newTestService(t)

		var events []ledger.Event
		bus.Subscribe(func(ev ledger.Event) { events = append(events, ev) })

		require.NoError(t, svc.GrantStoreOwner(adminAddr, ownerAddr))
		assert.True(t, svc.IsStoreOwner(ownerAddr))
		assert.False(t, svc.IsAdmin(ownerAddr))
		require.Len(t, events, 1)
		assert.Equal(t, ledger.StoreOwnerAdded{Target: ownerAddr}, events[0])
	})

	t.Run("grant is idempotent", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		require.NoError(t, svc.GrantStoreOwner(adminAddr, ownerAddr))
		require.NoError(t, svc.GrantStoreOwner(adminAddr, ownerAddr))
		assert.True(t, svc.IsStoreOwner(ownerAddr))
	})

	t.Run("non-admin cannot grant", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		err := svc.GrantStoreOwner(strangerAddr, ownerAddr)
		require.ErrorIs(t, err, ledger.ErrUnauthorized)
		assert.False(t, svc.IsStoreOwner(ownerAddr), "role set must be unchanged after a refused grant")
	})

	t.Run("store owner cannot grant", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)

		require.NoError(t, svc.GrantStoreOwner(adminAddr, ownerAddr))
		err := svc.GrantStoreOwner(ownerAddr, strangerAddr)
		require.ErrorIs(t, err, ledger.ErrUnauthorized)
		assert.False(t, svc.IsStoreOwner(strangerAddr))
	})
}

func TestService_RoleQueries(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(t)

	assert.True(t, svc.IsAdmin(adminAddr))
	assert.False(t, svc.IsAdmin(strangerAddr))
	assert.False(t, svc.IsStoreOwner(adminAddr), "admin does not imply store owner")
}

func TestAuthorize_PolicyTable(t *testing.T) {
	t.Parallel()

	store := ledger.NewStore()
	store.Update(func(st *ledger.State) error {
		st.GrantRole(adminAddr, ledger.RoleAdmin)
		st.GrantRole(ownerAddr, ledger.RoleStoreOwner)
		st.GrantRole(strangerAddr, ledger.RoleStoreOwner)
		st.PutStorefront(ledger.Storefront{ID: st.NextStorefrontID(), Name: "New Store", Owner: ownerAddr})
		return nil
	})

	tests := []struct {
		name         string
		op           Op
		caller       ledger.Address
		storefrontID uint64
		wantErr      error
	}{
		{name: "admin may grant", op: OpGrantStoreOwner, caller: adminAddr},
		{name: "owner may not grant", op: OpGrantStoreOwner, caller: ownerAddr, wantErr: ledger.ErrUnauthorized},
		{name: "owner may create storefront", op: OpCreateStorefront, caller: ownerAddr},
		{name: "admin may not create storefront", op: OpCreateStorefront, caller: adminAddr, wantErr: ledger.ErrUnauthorized},
		{name: "owner may stock own storefront", op: OpAddProduct, caller: ownerAddr, storefrontID: 1},
		{name: "other store owner may not stock it", op: OpAddProduct, caller: strangerAddr, storefrontID: 1, wantErr: ledger.ErrUnauthorized},
		{name: "missing storefront is not found", op: OpAddProduct, caller: ownerAddr, storefrontID: 42, wantErr: ledger.ErrNotFound},
		{name: "owner may withdraw", op: OpWithdraw, caller: ownerAddr, storefrontID: 1},
		{name: "other store owner may not withdraw", op: OpWithdraw, caller: strangerAddr, storefrontID: 1, wantErr: ledger.ErrUnauthorized},
		{name: "unknown op is refused", op: Op("drop_tables"), caller: adminAddr, wantErr: ledger.ErrUnauthorized},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := store.View(func(st *ledger.State) error {
				return Authorize(st, tc.op, tc.caller, tc.storefrontID)
			})
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
