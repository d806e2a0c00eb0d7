package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lmjin/marketplace-dapp/internal/httputil"
)

// Handler exposes account registration and login endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/accounts", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	account, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	httputil.Respond(w, http.StatusCreated, account)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.Respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}
	httputil.Respond(w, http.StatusOK, map[string]string{"token": token})
}
