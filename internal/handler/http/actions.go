package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/staykenya/bookings/internal/checkout"
	"github.com/staykenya/bookings/internal/dispatch"
	"github.com/staykenya/bookings/internal/notification"
	"github.com/staykenya/bookings/internal/service"
	apperrors "github.com/staykenya/bookings/pkg/errors"
	"github.com/staykenya/bookings/pkg/httputil"
	"github.com/staykenya/bookings/pkg/validator"
)

// ActionsHandler accepts serialized click descriptors and routes them
// through the dispatcher. It is the delegation layer: the page posts every
// interesting click here and the server decides what, if anything, it means.
type ActionsHandler struct {
	cart     *service.CartService
	wishlist *service.WishlistService
	builder  *checkout.Builder
	notifier *notification.Notifier
	logger   *slog.Logger
}

// NewActionsHandler creates a new actions HTTP handler.
func NewActionsHandler(
	cart *service.CartService,
	wishlist *service.WishlistService,
	builder *checkout.Builder,
	notifier *notification.Notifier,
	logger *slog.Logger,
) *ActionsHandler {
	return &ActionsHandler{
		cart:     cart,
		wishlist: wishlist,
		builder:  builder,
		notifier: notifier,
		logger:   logger,
	}
}

// ActionRequest is the JSON request body for POST /api/v1/actions. Confirmed
// carries the user's answer when the resolved action needs a confirmation
// prompt (clearing the cart).
type ActionRequest struct {
	Chain     []dispatch.Element `json:"chain" validate:"required,min=1"`
	Confirmed bool               `json:"confirmed"`
}

// ActionResult reports what the click resolved to and any follow-up the page
// should perform.
type ActionResult struct {
	Action      dispatch.Action `json:"action"`
	CheckoutURL string          `json:"checkout_url,omitempty"`
	ClearStatus string          `json:"clear_status,omitempty"`
}

// Handle handles POST /api/v1/actions
func (h *ActionsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req ActionRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result := &ActionResult{}
	var notifications []any
	push := func(level notification.Level, message string) {
		notifications = append(notifications, h.notifier.Push(sessionID, level, message))
	}

	d := h.dispatcher(req.Confirmed, result, push)

	res, err := d.Dispatch(r.Context(), sessionID, dispatch.ClickTarget{Chain: req.Chain})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	result.Action = res.Action

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:          result,
		Notifications: notifications,
	})
}

// dispatcher wires the action table for one request. FAQ toggling is a
// client-side concern, so it stays unregistered and is acknowledged as-is.
func (h *ActionsHandler) dispatcher(confirmed bool, result *ActionResult, push func(notification.Level, string)) dispatch.Dispatcher {
	return dispatch.Dispatcher{
		dispatch.ActionToggleWishlist: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			_, added, err := h.wishlist.Toggle(ctx, sessionID, snapshotOf(res))
			if err != nil {
				return err
			}
			if added {
				push(notification.LevelSuccess, "Added to wishlist")
			} else {
				push(notification.LevelInfo, "Removed from wishlist")
			}
			return nil
		},
		dispatch.ActionAddToCart: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			_, added, err := h.cart.AddItem(ctx, sessionID, snapshotOf(res))
			if err != nil {
				return err
			}
			if added {
				push(notification.LevelSuccess, "Added to bookings")
			} else {
				push(notification.LevelInfo, "Booking period extended")
			}
			return nil
		},
		dispatch.ActionRemoveFromCart: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			if _, err := h.cart.RemoveItem(ctx, sessionID, res.ID); err != nil {
				return err
			}
			push(notification.LevelInfo, "Removed from bookings")
			return nil
		},
		dispatch.ActionRemoveFromWishlist: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			if _, err := h.wishlist.RemoveItem(ctx, sessionID, res.ID); err != nil {
				return err
			}
			push(notification.LevelInfo, "Removed from wishlist")
			return nil
		},
		dispatch.ActionQuantityIncrease: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			_, _, err := h.cart.AdjustQuantity(ctx, sessionID, res.ID, +1)
			return err
		},
		dispatch.ActionQuantityDecrease: func(ctx context.Context, sessionID string, res dispatch.Resolution) error {
			_, removed, err := h.cart.AdjustQuantity(ctx, sessionID, res.ID, -1)
			if err != nil {
				return err
			}
			if removed {
				push(notification.LevelInfo, "Removed from bookings")
			}
			return nil
		},
		dispatch.ActionClearCart: func(ctx context.Context, sessionID string, _ dispatch.Resolution) error {
			status, err := h.cart.Clear(ctx, sessionID, confirmed)
			if err != nil {
				return err
			}
			result.ClearStatus = string(status)
			switch status {
			case service.ClearAlreadyEmpty:
				push(notification.LevelInfo, "Bookings list is already empty")
			case service.ClearCleared:
				push(notification.LevelInfo, "Bookings cleared")
			}
			return nil
		},
		dispatch.ActionCheckout: func(ctx context.Context, sessionID string, _ dispatch.Resolution) error {
			cart, err := h.cart.GetCart(ctx, sessionID)
			if err != nil {
				return err
			}
			link, err := h.builder.Link(cart)
			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidInput) {
					push(notification.LevelWarning, "Your bookings list is empty")
					return nil
				}
				return err
			}
			result.CheckoutURL = link
			return nil
		},
	}
}

func snapshotOf(res dispatch.Resolution) service.Snapshot {
	return service.Snapshot{
		ID:       res.ID,
		Title:    res.Title,
		Location: res.Location,
		Price:    res.Price,
		Image:    res.Image,
	}
}
