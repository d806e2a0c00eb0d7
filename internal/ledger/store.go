package ledger

import "sync"

// Store owns the ledger State behind a single read/write lock. Update is
// the serialization point every mutating operation goes through: at most
// one update closure runs at a time, and readers never observe a state
// an update has partially applied. Services keep the closure
// all-or-nothing by validating every precondition before the first write.
type Store struct {
	mu    sync.RWMutex
	state *State
}

// NewStore returns an empty ledger.
func NewStore() *Store {
	return &Store{state: newState()}
}

// View runs fn with shared read access to a consistent state snapshot.
// fn must not mutate the state or retain references past its return.
func (st *Store) View(fn func(*State) error) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return fn(st.state)
}

// Update runs fn with exclusive access to the state. If fn returns an
// error the operation is reported as failed; fn guarantees it has not
// mutated anything on the error path.
func (st *Store) Update(fn func(*State) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.state)
}

// Snapshot is the serialisable copy of the entire ledger: role grants,
// storefront and product maps, and the id counters. It is sufficient to
// reconstruct the core state on restart.
type Snapshot struct {
	Roles         map[Address][]Role    `json:"roles"`
	Storefronts   map[uint64]Storefront `json:"storefronts"`
	Products      map[uint64]Product    `json:"products"`
	StorefrontSeq uint64                `json:"storefront_seq"`
	ProductSeq    uint64                `json:"product_seq"`
}

// Snapshot copies the current state out under the read lock.
func (st *Store) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	snap := Snapshot{
		Roles:         make(map[Address][]Role, len(st.state.roles)),
		Storefronts:   make(map[uint64]Storefront, len(st.state.storefronts)),
		Products:      make(map[uint64]Product, len(st.state.products)),
		StorefrontSeq: st.state.storefrontSeq,
		ProductSeq:    st.state.productSeq,
	}
	for addr, set := range st.state.roles {
		roles := make([]Role, 0, len(set))
		for r := range set {
			roles = append(roles, r)
		}
		snap.Roles[addr] = roles
	}
	for id, sf := range st.state.storefronts {
		snap.Storefronts[id] = sf
	}
	for id, p := range st.state.products {
		snap.Products[id] = p
	}
	return snap
}

// Restore replaces the entire state with the snapshot's contents.
func (st *Store) Restore(snap Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()

	state := newState()
	for addr, roles := range snap.Roles {
		for _, r := range roles {
			state.GrantRole(addr, r)
		}
	}
	for id, sf := range snap.Storefronts {
		state.storefronts[id] = sf
	}
	for id, p := range snap.Products {
		state.products[id] = p
	}
	state.storefrontSeq = snap.StorefrontSeq
	state.productSeq = snap.ProductSeq
	st.state = state
}
