package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/staykenya/bookings/internal/checkout"
	"github.com/staykenya/bookings/internal/notification"
	"github.com/staykenya/bookings/internal/service"
	apperrors "github.com/staykenya/bookings/pkg/errors"
	"github.com/staykenya/bookings/pkg/httputil"
)

// CheckoutHandler builds the WhatsApp handoff link for the current cart.
type CheckoutHandler struct {
	cart     *service.CartService
	builder  *checkout.Builder
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(cart *service.CartService, builder *checkout.Builder, notifier *notification.Notifier, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		cart:     cart,
		builder:  builder,
		notifier: notifier,
		logger:   logger,
	}
}

// Link handles GET /api/v1/checkout/link. An empty cart is refused with a
// warning notification and no link.
func (h *CheckoutHandler) Link(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cart, err := h.cart.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	link, err := h.builder.Link(cart)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			notice := h.notifier.Push(sessionID, notification.LevelWarning, "Your bookings list is empty")
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Notifications: []any{notice},
				Error:         &httputil.ErrorResponse{Code: "EMPTY_CART", Message: "Your bookings list is empty"},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"url": link},
	})
}
