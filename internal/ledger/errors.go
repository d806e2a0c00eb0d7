package ledger

import "errors"

// Domain error kinds. Services wrap these with fmt.Errorf("%w: ...") to
// add detail; callers match the kind with errors.Is.
var (
	// ErrUnauthorized means the caller lacks the required role or does
	// not own the targeted record.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the referenced storefront or product id does not
	// exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means malformed input: empty name, zero price,
	// zero purchase quantity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientInventory means the purchase quantity exceeds the
	// product's stock.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrInsufficientPayment means the supplied payment is below the
	// exact amount due.
	ErrInsufficientPayment = errors.New("insufficient payment")
	// ErrOverpayment means the supplied payment exceeds the exact amount
	// due; the engine rejects rather than refunds.
	ErrOverpayment = errors.New("overpayment")
	// ErrInsufficientFunds means a withdrawal was attempted on a zero
	// balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
