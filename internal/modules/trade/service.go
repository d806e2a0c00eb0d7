package trade

import (
	"fmt"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
	"github.com/lmjin/marketplace-dapp/internal/modules/authz"
)

// Receipt is the result record of a successful purchase.
type Receipt struct {
	ProductID            uint64         `json:"product_id"`
	Buyer                ledger.Address `json:"buyer"`
	Quantity             uint64         `json:"quantity"`
	AmountPaid           uint64         `json:"amount_paid"`
	NewProductQuantity   uint64         `json:"new_product_quantity"`
	NewStorefrontBalance uint64         `json:"new_storefront_balance"`
}

// Service defines the transaction engine: purchases that move inventory
// and money atomically, and owner withdrawals of storefront balances.
type Service interface {
	BuyProduct(caller ledger.Address, productID, quantity, payment uint64) (Receipt, error)
	WithdrawStoreBalance(caller ledger.Address, storefrontID uint64) (uint64, error)
	StoreBalance(caller ledger.Address, storefrontID uint64) (uint64, error)
}

type service struct {
	store *ledger.Store
	bus   *ledger.Bus
}

// NewService creates a new trade service.
func NewService(store *ledger.Store, bus *ledger.Bus) Service {
	return &service{store: store, bus: bus}
}

// BuyProduct purchases quantity units of a product. Payment must equal
// quantity times the unit price exactly; the engine rejects rather than
// refunds a mismatch. The inventory decrement and the balance credit
// happen in one critical section: a failure on any precondition leaves
// both untouched.
func (s *service) BuyProduct(caller ledger.Address, productID, quantity, payment uint64) (Receipt, error) {
	var (
		receipt Receipt
		sfID    uint64
	)
	err := s.store.Update(func(st *ledger.State) error {
		if quantity == 0 {
			return fmt.Errorf("%w: purchase quantity must be greater than 0", ledger.ErrInvalidArgument)
		}
		p, ok := st.Product(productID)
		if !ok {
			return fmt.Errorf("%w: product %d", ledger.ErrNotFound, productID)
		}
		if p.Quantity < quantity {
			return fmt.Errorf("%w: product %d has %d in stock, want %d",
				ledger.ErrInsufficientInventory, productID, p.Quantity, quantity)
		}
		due := quantity * p.Price
		if payment < due {
			return fmt.Errorf("%w: paid %d, need %d", ledger.ErrInsufficientPayment, payment, due)
		}
		if payment > due {
			return fmt.Errorf("%w: paid %d, need exactly %d", ledger.ErrOverpayment, payment, due)
		}
		sf, ok := st.Storefront(p.StorefrontID)
		if !ok {
			// Unreachable while the catalog enforces referential
			// integrity; refuse rather than credit a ghost store.
			return fmt.Errorf("%w: storefront %d", ledger.ErrNotFound, p.StorefrontID)
		}

		p.Quantity -= quantity
		sf.Balance += due
		st.PutProduct(p)
		st.PutStorefront(sf)

		sfID = sf.ID
		receipt = Receipt{
			ProductID:            p.ID,
			Buyer:                caller,
			Quantity:             quantity,
			AmountPaid:           due,
			NewProductQuantity:   p.Quantity,
			NewStorefrontBalance: sf.Balance,
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	s.bus.Publish(ledger.ProductPurchased{
		Buyer:        caller,
		ProductID:    receipt.ProductID,
		StorefrontID: sfID,
		Quantity:     receipt.Quantity,
		AmountPaid:   receipt.AmountPaid,
	})
	return receipt, nil
}

// WithdrawStoreBalance zeroes the storefront's balance and returns the
// amount withdrawn. Moving the money to the owner's external account is
// a boundary concern; the ledger's obligation ends here.
func (s *service) WithdrawStoreBalance(caller ledger.Address, storefrontID uint64) (uint64, error) {
	var amount uint64
	err := s.store.Update(func(st *ledger.State) error {
		if err := authz.Authorize(st, authz.OpWithdraw, caller, storefrontID); err != nil {
			return err
		}
		sf, _ := st.Storefront(storefrontID)
		if sf.Balance == 0 {
			return fmt.Errorf("%w: storefront %d has no balance to withdraw",
				ledger.ErrInsufficientFunds, storefrontID)
		}
		amount = sf.Balance
		sf.Balance = 0
		st.PutStorefront(sf)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.bus.Publish(ledger.BalanceWithdrawn{
		StorefrontID: storefrontID,
		Owner:        caller,
		Amount:       amount,
	})
	return amount, nil
}

// StoreBalance reports the storefront's current balance to its owner.
func (s *service) StoreBalance(caller ledger.Address, storefrontID uint64) (uint64, error) {
	var balance uint64
	err := s.store.View(func(st *ledger.State) error {
		if err := authz.Authorize(st, authz.OpWithdraw, caller, storefrontID); err != nil {
			return err
		}
		sf, _ := st.Storefront(storefrontID)
		balance = sf.Balance
		return nil
	})
	return balance, err
}
