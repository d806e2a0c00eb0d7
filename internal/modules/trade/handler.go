package trade

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lmjin/marketplace-dapp/internal/httputil"
	"github.com/lmjin/marketplace-dapp/internal/modules/accounts"
)

// Handler exposes purchase and withdrawal endpoints. Every route is
// authenticated: purchases and withdrawals always carry an explicit
// caller.
type Handler struct {
	service Service
	auth    accounts.Service
}

func NewHandler(service Service, auth accounts.Service) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/trade", func(r chi.Router) {
		r.Use(accounts.RequireAuth(h.auth))
		r.Post("/purchases", h.buyProduct)
		r.Post("/storefronts/{id}/withdrawals", h.withdraw)
		r.Get("/storefronts/{id}/balance", h.storeBalance)
	})
}

func (h *Handler) buyProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	var req struct {
		ProductID uint64 `json:"product_id"`
		Quantity  uint64 `json:"quantity"`
		Payment   uint64 `json:"payment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	receipt, err := h.service.BuyProduct(caller, req.ProductID, req.Quantity, req.Payment)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, receipt)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid storefront id"})
		return
	}
	amount, err := h.service.WithdrawStoreBalance(caller, id)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]uint64{"withdrawn": amount})
}

func (h *Handler) storeBalance(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid storefront id"})
		return
	}
	balance, err := h.service.StoreBalance(caller, id)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]uint64{"balance": balance})
}
