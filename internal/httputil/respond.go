package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// RespondError maps a domain error kind to an HTTP status and surfaces
// the error to the caller. Core failures are never reported as success.
func RespondError(w http.ResponseWriter, err error) {
	Respond(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInsufficientInventory),
		errors.Is(err, ledger.ErrInsufficientPayment),
		errors.Is(err, ledger.ErrOverpayment),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
