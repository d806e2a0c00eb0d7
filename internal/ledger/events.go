package ledger

import "sync"

// Event is an advisory notification published after a mutation commits.
// Subscribers (display refresh, snapshot writers) must never be required
// for core correctness.
type Event interface{ eventName() string }

// StoreOwnerAdded signals a successful StoreOwner grant.
type StoreOwnerAdded struct {
	Target Address
}

// StorefrontCreated signals a new storefront.
type StorefrontCreated struct {
	Storefront Storefront
}

// ProductAdded signals a new product listing.
type ProductAdded struct {
	Product Product
}

// ProductPurchased signals a completed purchase.
type ProductPurchased struct {
	Buyer        Address
	ProductID    uint64
	StorefrontID uint64
	Quantity     uint64
	AmountPaid   uint64
}

// BalanceWithdrawn signals a completed storefront withdrawal.
type BalanceWithdrawn struct {
	StorefrontID uint64
	Owner        Address
	Amount       uint64
}

func (StoreOwnerAdded) eventName() string   { return "store_owner_added" }
func (StorefrontCreated) eventName() string { return "storefront_created" }
func (ProductAdded) eventName() string      { return "product_added" }
func (ProductPurchased) eventName() string  { return "product_purchased" }
func (BalanceWithdrawn) eventName() string  { return "balance_withdrawn" }

// Bus fans events out to registered subscribers, synchronously and in
// subscription order. Publish happens outside the ledger lock.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Event)
}

// NewBus returns an empty event bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers fn for every subsequent event.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers ev to every subscriber.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
