package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/orders"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/pricing"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/store"
)

// Handler holds dependencies for the admin API endpoints.
type Handler struct {
	log    *zap.Logger
	store  *store.Store
	orders *orders.Service
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.Logger, st *store.Store, ordersSvc *orders.Service) *Handler {
	return &Handler{log: log.Named("api"), store: st, orders: ordersSvc}
}

// Routes wires all endpoints onto a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.healthHandler)
	mux.HandleFunc("GET /api/rates", h.ratesHandler)
	mux.HandleFunc("GET /api/prices", h.pricesHandler)
	mux.HandleFunc("GET /api/config", h.getConfigHandler)
	mux.HandleFunc("PUT /api/config", h.putConfigHandler)
	mux.HandleFunc("GET /api/orders", h.listOrdersHandler)
	mux.HandleFunc("POST /api/orders", h.createOrderHandler)
	mux.HandleFunc("PATCH /api/orders/{id}/quantity", h.editQuantityHandler)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.completeOrderHandler)
	mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrderHandler)
	mux.HandleFunc("GET /api/users", h.listUsersHandler)
	mux.HandleFunc("POST /api/users", h.createUserHandler)
	mux.HandleFunc("DELETE /api/users/{id}", h.deleteUserHandler)
	return mux
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// ratesHandler returns the latest persisted rate bundle.
func (h *Handler) ratesHandler(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.store.LoadBundle()
	if err != nil {
		h.log.Error("Failed to load rate bundle", zap.Error(err))
		http.Error(w, "Failed to load rates", http.StatusInternalServerError)
		return
	}
	if len(bundle) == 0 {
		http.Error(w, "No rates available yet", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, bundle)
}

// productPrice is one row of the derived price table.
type productPrice struct {
	Product string  `json:"product"`
	Buy     float64 `json:"buy"`
	Sell    float64 `json:"sell"`
}

// pricesHandler returns the full customer-facing price table derived
// from the latest bundle and the admin markup configuration.
func (h *Handler) pricesHandler(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.store.LoadBundle()
	if err != nil {
		h.log.Error("Failed to load rate bundle", zap.Error(err))
		http.Error(w, "Failed to load rates", http.StatusInternalServerError)
		return
	}
	if len(bundle) == 0 {
		http.Error(w, "No rates available yet", http.StatusNotFound)
		return
	}
	markup, err := h.store.LoadMarkup()
	if err != nil {
		h.log.Error("Failed to load markup config", zap.Error(err))
		http.Error(w, "Failed to load config", http.StatusInternalServerError)
		return
	}

	table := make([]productPrice, 0, len(pricing.Products))
	for _, product := range pricing.Products {
		buy, err := pricing.ProductPrice(bundle, markup, product, pricing.SideBuy)
		if err != nil {
			h.log.Error("Failed to derive price", zap.String("product", product), zap.Error(err))
			http.Error(w, "Failed to derive prices", http.StatusInternalServerError)
			return
		}
		sell, err := pricing.ProductPrice(bundle, markup, product, pricing.SideSell)
		if err != nil {
			h.log.Error("Failed to derive price", zap.String("product", product), zap.Error(err))
			http.Error(w, "Failed to derive prices", http.StatusInternalServerError)
			return
		}
		table = append(table, productPrice{Product: product, Buy: buy, Sell: sell})
	}
	h.writeJSON(w, http.StatusOK, table)
}

// getConfigHandler returns the markup configuration for the whole
// catalog, filling unconfigured products with all-zero rules the way the
// admin form expects.
func (h *Handler) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	stored, err := h.store.LoadMarkup()
	if err != nil {
		h.log.Error("Failed to load markup config", zap.Error(err))
		http.Error(w, "Failed to load config", http.StatusInternalServerError)
		return
	}

	full := make(pricing.Config, len(pricing.Products))
	for _, product := range pricing.Products {
		full[product] = stored[product]
	}
	h.writeJSON(w, http.StatusOK, full)
}

// putConfigHandler merges a partial markup edit. Products absent from
// the request body keep their stored rules.
func (h *Handler) putConfigHandler(w http.ResponseWriter, r *http.Request) {
	var cfg pricing.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid config payload", http.StatusBadRequest)
		return
	}
	for product := range cfg {
		if !pricing.IsKnownProduct(product) {
			http.Error(w, fmt.Sprintf("Unknown product %q", product), http.StatusBadRequest)
			return
		}
	}
	if err := h.store.MergeMarkup(cfg); err != nil {
		h.log.Error("Failed to merge markup config", zap.Error(err))
		http.Error(w, "Failed to save config", http.StatusInternalServerError)
		return
	}
	h.log.Info("Markup config updated", zap.Int("products", len(cfg)))
	w.WriteHeader(http.StatusNoContent)
}

// listOrdersHandler returns all orders, newest first.
func (h *Handler) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListOrders()
	if err != nil {
		h.log.Error("Failed to list orders", zap.Error(err))
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

func (h *Handler) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}
	order, err := h.orders.Create(req)
	if err != nil {
		h.log.Warn("Order creation rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) editQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	order, err := h.orders.EditQuantity(r.PathValue("id"), req.Quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) completeOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if req.Status != models.OrderStatusCompleted {
		http.Error(w, "Only the COMPLETED transition is supported", http.StatusBadRequest)
		return
	}

	err := h.orders.Complete(r.PathValue("id"))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, orders.ErrNotPending):
		http.Error(w, "Order is not pending", http.StatusConflict)
	case err != nil:
		h.log.Error("Failed to complete order", zap.Error(err))
		http.Error(w, "Failed to complete order", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.PathValue("id")); err != nil {
		h.log.Error("Failed to delete order", zap.Error(err))
		http.Error(w, "Failed to delete order", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		h.log.Error("Failed to list users", zap.Error(err))
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"displayName"`
		PhoneNumber string `json:"phoneNumber"`
		Email       string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid user payload", http.StatusBadRequest)
		return
	}
	if req.PhoneNumber == "" {
		http.Error(w, "phoneNumber is required", http.StatusBadRequest)
		return
	}

	user := &models.User{
		DisplayName: req.DisplayName,
		Phone:       req.PhoneNumber,
		Email:       req.Email,
		Allowed:     true, // new accounts may place orders right away
	}
	if err := h.store.CreateUser(user); err != nil {
		h.log.Error("Failed to create user", zap.Error(err))
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteUser(uint(id)); err != nil {
		h.log.Error("Failed to delete user", zap.Error(err))
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
