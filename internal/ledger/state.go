package ledger

// Address is an opaque account identifier, rendered as a 0x-prefixed
// hex string at the boundary.
type Address string

// Role is a permission held by an account.
type Role string

const (
	// RoleAdmin may grant StoreOwner to other accounts.
	RoleAdmin Role = "ADMIN"
	// RoleStoreOwner may create storefronts and stock them.
	RoleStoreOwner Role = "STORE_OWNER"
)

// Storefront is a named inventory/balance container owned by one account.
// Balance is kept in the smallest currency unit and only ever changes
// through completed purchases and withdrawals.
type Storefront struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Owner   Address `json:"owner"`
	Balance uint64  `json:"balance"`
}

// Product is a priced, quantity-tracked item belonging to exactly one
// storefront. Product ids are global, not per-store.
type Product struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Quantity     uint64 `json:"quantity"`
	Price        uint64 `json:"price"`
	StorefrontID uint64 `json:"storefront_id"`
}

type roleSet map[Role]struct{}

// State is the authoritative marketplace ledger: role grants, the
// storefront and product maps, and the two id counters. All access goes
// through Store.View / Store.Update; callers never hold a *State outside
// those closures.
type State struct {
	roles       map[Address]roleSet
	storefronts map[uint64]Storefront
	products    map[uint64]Product

	// Highest allocated ids. Allocation happens only after every
	// precondition of the creating operation has passed, so failed
	// operations leave no gaps.
	storefrontSeq uint64
	productSeq    uint64
}

func newState() *State {
	return &State{
		roles:       make(map[Address]roleSet),
		storefronts: make(map[uint64]Storefront),
		products:    make(map[uint64]Product),
	}
}

// HasRole reports whether the account holds the role.
func (s *State) HasRole(addr Address, role Role) bool {
	_, ok := s.roles[addr][role]
	return ok
}

// GrantRole adds the role to the account's role set. Granting a role the
// account already holds is a no-op.
func (s *State) GrantRole(addr Address, role Role) {
	set, ok := s.roles[addr]
	if !ok {
		set = make(roleSet)
		s.roles[addr] = set
	}
	set[role] = struct{}{}
}

// Storefront returns the storefront record by id.
func (s *State) Storefront(id uint64) (Storefront, bool) {
	sf, ok := s.storefronts[id]
	return sf, ok
}

// Product returns the product record by id.
func (s *State) Product(id uint64) (Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// StorefrontCount returns the highest allocated storefront id, 0 if none.
func (s *State) StorefrontCount() uint64 { return s.storefrontSeq }

// PutStorefront inserts or replaces a storefront record.
func (s *State) PutStorefront(sf Storefront) { s.storefronts[sf.ID] = sf }

// PutProduct inserts or replaces a product record.
func (s *State) PutProduct(p Product) { s.products[p.ID] = p }

// NextStorefrontID allocates the next storefront id. Call only once every
// precondition of the creation has passed.
func (s *State) NextStorefrontID() uint64 {
	s.storefrontSeq++
	return s.storefrontSeq
}

// NextProductID allocates the next global product id.
func (s *State) NextProductID() uint64 {
	s.productSeq++
	return s.productSeq
}

// Storefronts returns every storefront record ordered by id.
func (s *State) Storefronts() []Storefront {
	out := make([]Storefront, 0, len(s.storefronts))
	for id := uint64(1); id <= s.storefrontSeq; id++ {
		if sf, ok := s.storefronts[id]; ok {
			out = append(out, sf)
		}
	}
	return out
}

// ProductsByStorefront returns the storefront's products ordered by id.
func (s *State) ProductsByStorefront(storefrontID uint64) []Product {
	var out []Product
	for id := uint64(1); id <= s.productSeq; id++ {
		if p, ok := s.products[id]; ok && p.StorefrontID == storefrontID {
			out = append(out, p)
		}
	}
	return out
}
