package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lmjin/marketplace-dapp/internal/httputil"
	"github.com/lmjin/marketplace-dapp/internal/modules/accounts"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	auth    accounts.Service
}

func NewHandler(service Service, auth accounts.Service) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		// Read queries are open to any account.
		r.Get("/storefronts", h.listStorefronts)
		r.Get("/storefronts/count", h.storefrontCount)
		r.Get("/storefronts/{id}", h.getStorefront)
		r.Get("/storefronts/{id}/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(accounts.RequireAuth(h.auth))
			r.Post("/storefronts", h.createStorefront)
			r.Post("/storefronts/{id}/products", h.addProduct)
		})
	})
}

func (h *Handler) createStorefront(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sf, err := h.service.CreateStorefront(caller, req.Name)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, sf)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := accounts.CallerFrom(r.Context())
	if !ok {
		http.Error(w, "missing caller", http.StatusUnauthorized)
		return
	}
	storefrontID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid storefront id"})
		return
	}
	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req.StorefrontID = storefrontID
	p, err := h.service.AddProduct(caller, req)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusCreated, p)
}

func (h *Handler) getStorefront(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid storefront id"})
		return
	}
	sf, err := h.service.GetStorefront(id)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, sf)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	p, err := h.service.GetProduct(id)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, p)
}

func (h *Handler) listStorefronts(w http.ResponseWriter, r *http.Request) {
	httputil.Respond(w, http.StatusOK, h.service.ListStorefronts())
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": "invalid storefront id"})
		return
	}
	products, err := h.service.ListProducts(id)
	if err != nil {
		httputil.RespondError(w, err)
		return
	}
	httputil.Respond(w, http.StatusOK, products)
}

func (h *Handler) storefrontCount(w http.ResponseWriter, r *http.Request) {
	httputil.Respond(w, http.StatusOK, map[string]uint64{"count": h.service.StorefrontCount()})
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}
