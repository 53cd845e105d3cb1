package http

import (
	"log/slog"
	"net/http"

	"github.com/staykenya/bookings/internal/notification"
	"github.com/staykenya/bookings/internal/render"
	"github.com/staykenya/bookings/internal/service"
	"github.com/staykenya/bookings/pkg/httputil"
)

// FragmentsHandler serves rendered HTML fragments, the header badge counts,
// and the session's active notifications.
type FragmentsHandler struct {
	cart     *service.CartService
	wishlist *service.WishlistService
	renderer *render.Renderer
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewFragmentsHandler creates a new fragments HTTP handler.
func NewFragmentsHandler(
	cart *service.CartService,
	wishlist *service.WishlistService,
	renderer *render.Renderer,
	notifier *notification.Notifier,
	logger *slog.Logger,
) *FragmentsHandler {
	return &FragmentsHandler{
		cart:     cart,
		wishlist: wishlist,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
	}
}

// CartFragment handles GET /api/v1/fragments/cart
func (h *FragmentsHandler) CartFragment(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cart, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	frag, err := h.renderer.CartFragment(cart)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: frag})
}

// WishlistFragment handles GET /api/v1/fragments/wishlist
func (h *FragmentsHandler) WishlistFragment(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	wishlist, err := h.wishlist.GetWishlist(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	frag, err := h.renderer.WishlistFragment(wishlist)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: frag})
}

// BadgesResponse carries the header counters: total booked nights and the
// number of wishlisted listings.
type BadgesResponse struct {
	CartCount     int `json:"cart_count"`
	WishlistCount int `json:"wishlist_count"`
}

// Badges handles GET /api/v1/badges
func (h *FragmentsHandler) Badges(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cart, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	wishlist, err := h.wishlist.GetWishlist(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: BadgesResponse{
		CartCount:     cart.TotalQuantity(),
		WishlistCount: wishlist.Count(),
	}})
}

// Notifications handles GET /api/v1/notifications
func (h *FragmentsHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.notifier.Active(sessionID),
	})
}
