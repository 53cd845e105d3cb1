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

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service  *service.WishlistService
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, notifier *notification.Notifier, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service:  svc,
		notifier: notifier,
		logger:   logger,
	}
}

// ToggleRequest is the JSON request body for toggling wishlist membership.
type ToggleRequest struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"max=500"`
	Location string `json:"location" validate:"max=500"`
	Price    string `json:"price" validate:"max=100"`
	Image    string `json:"image" validate:"max=2000"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	wishlist, err := h.service.GetWishlist(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// Toggle handles POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req ToggleRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	wishlist, added, err := h.service.Toggle(r.Context(), sessionID, service.Snapshot{
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
		notice = h.notifier.Push(sessionID, notification.LevelSuccess, "Added to wishlist")
	} else {
		notice = h.notifier.Push(sessionID, notification.LevelInfo, "Removed from wishlist")
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          wishlist,
		Notifications: []any{notice},
	})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	wishlist, err := h.service.RemoveItem(r.Context(), sessionID, id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	notice := h.notifier.Push(sessionID, notification.LevelInfo, "Removed from wishlist")

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          wishlist,
		Notifications: []any{notice},
	})
}
