package authz

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lmjin/marketplace-dapp/internal/httputil"
	"github.com/lmjin/marketplace-dapp/internal/ledger"
	"github.com/lmjin/marketplace-dapp/internal/modules/accounts"
)

// Handler exposes role management endpoints.
type Handler struct {
	service Service
	auth    accounts.Service
}

func NewHandler(service Service, auth accounts.Service) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/authz", func(r chi.Router) {
		r.Get("/roles/{address}", h.getRoles)

		r.Group(func(r chi.Router) {
			r.Use(accounts.RequireAuth(h.auth))
			r.Post("/store-owners", h.grantStoreOwner)
		})
	})
}

func (h *Handler) getRoles(w http.ResponseWriter, r *http.Request) {
	addr := ledger.Address(chi.URLParam(r, "address"))
	httputil.Respond(w, http.StatusOK, map[string]interface{}{
		"address":        addr,
		"is_admin":       h.service.IsAdmin(addr),
		"is_store_owner": h.service.IsStoreOwner(addr),
	})
}

func (h *Handler) grantStoreOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	var req struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.GrantStoreOwner(caller, ledger.Address(req.Address)); err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"status": "store owner added"})
}
