package catalog

import (
	"fmt"
	"strings"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
	"github.com/lmjin/marketplace-dapp/internal/modules/authz"
)

// Service defines the storefront catalog: role-gated creation of
// storefronts and products, plus read queries over both.
type Service interface {
	CreateStorefront(caller ledger.Address, name string) (ledger.Storefront, error)
	AddProduct(caller ledger.Address, req AddProductRequest) (ledger.Product, error)
	GetStorefront(id uint64) (ledger.Storefront, error)
	GetProduct(id uint64) (ledger.Product, error)
	StorefrontCount() uint64
	ListStorefronts() []ledger.Storefront
	ListProducts(storefrontID uint64) ([]ledger.Product, error)
}

// AddProductRequest holds data for listing a product in a storefront.
type AddProductRequest struct {
	StorefrontID uint64 `json:"storefront_id"`
	Name         string `json:"name"`
	Price        uint64 `json:"price"`
	Quantity     uint64 `json:"quantity"`
}

type service struct {
	store *ledger.Store
	bus   *ledger.Bus
}

// NewService creates a new catalog service.
func NewService(store *ledger.Store, bus *ledger.Bus) Service {
	return &service{store: store, bus: bus}
}

// CreateStorefront opens a new storefront owned by the caller with a
// zero balance. The storefront id is allocated only after validation, so
// failed calls never burn ids.
func (s *service) CreateStorefront(caller ledger.Address, name string) (ledger.Storefront, error) {
	var created ledger.Storefront
	err := s.store.Update(func(st *ledger.State) error {
		if err := authz.Authorize(st, authz.OpCreateStorefront, caller, 0); err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: storefront name is required", ledger.ErrInvalidArgument)
		}
		created = ledger.Storefront{
			ID:      st.NextStorefrontID(),
			Name:    name,
			Owner:   caller,
			Balance: 0,
		}
		st.PutStorefront(created)
		return nil
	})
	if err != nil {
		return ledger.Storefront{}, err
	}
	s.bus.Publish(ledger.StorefrontCreated{Storefront: created})
	return created, nil
}

// AddProduct lists a product in the caller's storefront. Product ids are
// global across storefronts.
func (s *service) AddProduct(caller ledger.Address, req AddProductRequest) (ledger.Product, error) {
	var created ledger.Product
	err := s.store.Update(func(st *ledger.State) error {
		if err := authz.Authorize(st, authz.OpAddProduct, caller, req.StorefrontID); err != nil {
			return err
		}
		if strings.TrimSpace(req.Name) == "" {
			return fmt.Errorf("%w: product name is required", ledger.ErrInvalidArgument)
		}
		if req.Price == 0 {
			return fmt.Errorf("%w: price must be greater than 0", ledger.ErrInvalidArgument)
		}
		created = ledger.Product{
			ID:           st.NextProductID(),
			Name:         req.Name,
			Quantity:     req.Quantity,
			Price:        req.Price,
			StorefrontID: req.StorefrontID,
		}
		st.PutProduct(created)
		return nil
	})
	if err != nil {
		return ledger.Product{}, err
	}
	s.bus.Publish(ledger.ProductAdded{Product: created})
	return created, nil
}

func (s *service) GetStorefront(id uint64) (ledger.Storefront, error) {
	var sf ledger.Storefront
	err := s.store.View(func(st *ledger.State) error {
		var ok bool
		if sf, ok = st.Storefront(id); !ok {
			return fmt.Errorf("%w: storefront %d", ledger.ErrNotFound, id)
		}
		return nil
	})
	return sf, err
}

func (s *service) GetProduct(id uint64) (ledger.Product, error) {
	var p ledger.Product
	err := s.store.View(func(st *ledger.State) error {
		var ok bool
		if p, ok = st.Product(id); !ok {
			return fmt.Errorf("%w: product %d", ledger.ErrNotFound, id)
		}
		return nil
	})
	return p, err
}

func (s *service) StorefrontCount() uint64 {
	var n uint64
	s.store.View(func(st *ledger.State) error {
		n = st.StorefrontCount()
		return nil
	})
	return n
}

func (s *service) ListStorefronts() []ledger.Storefront {
	var out []ledger.Storefront
	s.store.View(func(st *ledger.State) error {
		out = st.Storefronts()
		return nil
	})
	return out
}

func (s *service) ListProducts(storefrontID uint64) ([]ledger.Product, error) {
	var out []ledger.Product
	err := s.store.View(func(st *ledger.State) error {
		if _, ok := st.Storefront(storefrontID); !ok {
			return fmt.Errorf("%w: storefront %d", ledger.ErrNotFound, storefrontID)
		}
		out = st.ProductsByStorefront(storefrontID)
		return nil
	})
	return out, err
}
