package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

const (
	ownerAddr    = ledger.Address("0xowner")
	otherOwner   = ledger.Address("0xotherowner")
	strangerAddr = ledger.Address("0xstranger")
)

func newTestService(t *testing.T) (Service, *ledger.Bus) {
	t.Helper()
	store := ledger.NewStore()
	store.Update(func(st *ledger.State) error {
		st.GrantRole(ownerAddr, ledger.RoleStoreOwner)
		st.GrantRole(otherOwner, ledger.RoleStoreOwner)
		return nil
	})
	bus := ledger.NewBus()
	return NewService(store, bus), bus
}

func TestService_CreateStorefront(t *testing.T) {
	t.Parallel()

	t.Run("first storefront gets id 1", func(t *testing.T) {
		t.Parallel()
		svc, bus := newTestService(t)

		var events []ledger.Event
		bus.Subscribe(func(ev ledger.Event) { events = append(events, ev) })

		sf, err := svc.CreateStorefront(ownerAddr, "New Store")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), sf.ID)
		assert.Equal(t, "New Store", sf.Name)
		assert.Equal(t, ownerAddr, sf.Owner)
		assert.Equal(t, uint64(0), sf.Balance)
		require.Len(t, events, 1)
		assert.Equal(t, ledger.StorefrontCreated{Storefront: sf}, events[0])
	})

	t.Run("ids are sequential", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		first, err := svc.CreateStorefront(ownerAddr, "First")
		require.NoError(t, err)
		second, err := svc.CreateStorefront(otherOwner, "Second")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first.ID)
		assert.Equal(t, uint64(2), second.ID)
		assert.Equal(t, uint64(2), svc.StorefrontCount())
	})

	t.Run("failed creation burns no id", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.CreateStorefront(ownerAddr, "  ")
		require.ErrorIs(t, err, ledger.ErrInvalidArgument)

		sf, err := svc.CreateStorefront(ownerAddr, "New Store")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), sf.ID)
	})

	t.Run("non store owner is refused", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		_, err := svc.CreateStorefront(strangerAddr, "New Store")
		require.ErrorIs(t, err, ledger.ErrUnauthorized)
		assert.Equal(t, uint64(0), svc.StorefrontCount())
	})
}

func TestService_AddProduct(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (Service, ledger.Storefront) {
		svc, _ := newTestService(t)
		sf, err := svc.CreateStorefront(ownerAddr, "New Store")
		require.NoError(t, err)
		return svc, sf
	}

	t.Run("owner lists a product", func(t *testing.T) {
		t.Parallel()
		svc, sf := setup(t)

		p, err := svc.AddProduct(ownerAddr, AddProductRequest{
			StorefrontID: sf.ID, Name: "New Product", Price: 5, Quantity: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), p.ID)
		assert.Equal(t, "New Product", p.Name)
		assert.Equal(t, uint64(1), p.Quantity)
		assert.Equal(t, uint64(5), p.Price)
		assert.Equal(t, sf.ID, p.StorefrontID)
	})

	t.Run("product ids are global across storefronts", func(t *testing.T) {
		t.Parallel()
		svc, sf := setup(t)
		other, err := svc.CreateStorefront(otherOwner, "Other Store")
		require.NoError(t, err)

		first, err := svc.AddProduct(ownerAddr, AddProductRequest{StorefrontID: sf.ID, Name: "A", Price: 2, Quantity: 3})
		require.NoError(t, err)
		second, err := svc.AddProduct(otherOwner, AddProductRequest{StorefrontID: other.ID, Name: "B", Price: 7, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first.ID)
		assert.Equal(t, uint64(2), second.ID)
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		t.Parallel()
		svc, sf := setup(t)

		p, err := svc.AddProduct(ownerAddr, AddProductRequest{StorefrontID: sf.ID, Name: "Preorder", Price: 9, Quantity: 0})
		require.NoError(t, err)
		assert.Equal(t, uint64(0), p.Quantity)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		svc, sf := setup(t)

		tests := []struct {
			name    string
			caller  ledger.Address
			req     AddProductRequest
			wantErr error
		}{
			{
				name:    "missing storefront",
				caller:  ownerAddr,
				req:     AddProductRequest{StorefrontID: 42, Name: "X", Price: 1, Quantity: 1},
				wantErr: ledger.ErrNotFound,
			},
			{
				name:    "not the owner",
				caller:  otherOwner,
				req:     AddProductRequest{StorefrontID: sf.ID, Name: "X", Price: 1, Quantity: 1},
				wantErr: ledger.ErrUnauthorized,
			},
			{
				name:    "empty name",
				caller:  ownerAddr,
				req:     AddProductRequest{StorefrontID: sf.ID, Name: " ", Price: 1, Quantity: 1},
				wantErr: ledger.ErrInvalidArgument,
			},
			{
				name:    "zero price",
				caller:  ownerAddr,
				req:     AddProductRequest{StorefrontID: sf.ID, Name: "X", Price: 0, Quantity: 1},
				wantErr: ledger.ErrInvalidArgument,
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.AddProduct(tc.caller, tc.req)
				require.ErrorIs(t, err, tc.wantErr)
			})
		}

		// None of the failures above may have burnt a product id.
		p, err := svc.AddProduct(ownerAddr, AddProductRequest{StorefrontID: sf.ID, Name: "First", Price: 1, Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), p.ID)
	})
}

func TestService_Queries(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	t.Run("lookups on empty catalog", func(t *testing.T) {
		_, err := svc.GetStorefront(1)
		require.ErrorIs(t, err, ledger.ErrNotFound)
		_, err = svc.GetProduct(1)
		require.ErrorIs(t, err, ledger.ErrNotFound)
		_, err = svc.ListProducts(1)
		require.ErrorIs(t, err, ledger.ErrNotFound)
		assert.Equal(t, uint64(0), svc.StorefrontCount())
		assert.Empty(t, svc.ListStorefronts())
	})

	sf, err := svc.CreateStorefront(ownerAddr, "New Store")
	require.NoError(t, err)
	p, err := svc.AddProduct(ownerAddr, AddProductRequest{StorefrontID: sf.ID, Name: "New Product", Price: 5, Quantity: 1})
	require.NoError(t, err)

	t.Run("lookups after creation", func(t *testing.T) {
		gotSf, err := svc.GetStorefront(sf.ID)
		require.NoError(t, err)
		assert.Equal(t, sf, gotSf)

		gotP, err := svc.GetProduct(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, gotP)

		products, err := svc.ListProducts(sf.ID)
		require.NoError(t, err)
		assert.Equal(t, []ledger.Product{p}, products)

		assert.Equal(t, []ledger.Storefront{sf}, svc.ListStorefronts())
	})
}
