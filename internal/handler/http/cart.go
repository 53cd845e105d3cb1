// Package http exposes the bookings API over chi. Handlers translate HTTP
// into service calls and attach the user-facing notifications each action
// produces.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staykenya/bookings/internal/notification"
	"github.com/staykenya/bookings/internal/service"
	"github.com/staykenya/bookings/pkg/httputil"
	"github.com/staykenya/bookings/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service  *service.CartService
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, notifier *notification.Notifier, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service:  svc,
		notifier: notifier,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a listing to the cart.
// Everything except the id is display data captured off the listing card.
type AddItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"max=500"`
	Location string `json:"location" validate:"max=500"`
	Price    string `json:"price" validate:"max=100"`
	Image    string `json:"image" validate:"max=2000"`
}

// AdjustQuantityRequest is the JSON request body for nudging a line's
// quantity. The controls only ever move by one night at a time.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, added, err := h.service.AddItem(r.Context(), sessionID, service.Snapshot{
		ID:       req.ID,
		Title:    req.Title,
		Location: req.Location,
		Price:    req.Price,
		Image:    req.Image,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var notice notification.Notification
	if added {
		notice = h.notifier.Push(sessionID, notification.LevelSuccess, "Added to bookings")
	} else {
		notice = h.notifier.Push(sessionID, notification.LevelInfo, "Booking period extended")
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          cart,
		Notifications: []any{notice},
	})
}

// AdjustQuantity handles POST /api/v1/cart/items/{id}/quantity
func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req AdjustQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, removed, err := h.service.AdjustQuantity(r.Context(), sessionID, id, req.Delta)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var notifications []any
	if removed {
		notifications = append(notifications, h.notifier.Push(sessionID, notification.LevelInfo, "Removed from bookings"))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          cart,
		Notifications: notifications,
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	cart, err := h.service.RemoveItem(r.Context(), sessionID, id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	notice := h.notifier.Push(sessionID, notification.LevelInfo, "Removed from bookings")

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          cart,
		Notifications: []any{notice},
	})
}

// Clear handles DELETE /api/v1/cart. The confirm query parameter carries the
// user's answer to the confirmation prompt.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	confirmed := r.URL.Query().Get("confirm") == "true"

	status, err := h.service.Clear(r.Context(), sessionID, confirmed)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var notifications []any
	switch status {
	case service.ClearAlreadyEmpty:
		notifications = append(notifications, h.notifier.Push(sessionID, notification.LevelInfo, "Bookings list is already empty"))
	case service.ClearCleared:
		notifications = append(notifications, h.notifier.Push(sessionID, notification.LevelInfo, "Bookings cleared"))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          map[string]string{"status": string(status)},
		Notifications: notifications,
	})
}
