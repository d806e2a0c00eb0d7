package accounts

import (
	"context"
	"net/http"
	"strings"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

type contextKey string

const callerKey contextKey = "caller_address"

// RequireAuth resolves the Bearer token into the caller's address and
// stores it on the request context. Every mutating ledger route sits
// behind this middleware so that core operations always receive an
// explicit caller, never an ambient identity.
func RequireAuth(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			addr, err := svc.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, addr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the authenticated caller address set by RequireAuth.
func CallerFrom(ctx context.Context) (ledger.Address, bool) {
	addr, ok := ctx.Value(callerKey).(ledger.Address)
	return addr, ok
}
