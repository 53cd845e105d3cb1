// Package dispatch classifies serialized click descriptors into domain
// actions and routes them to their handlers. It is the only place that knows
// about CSS class names and data attributes; everything past Classify works
// with a closed action set.
package dispatch

import (
	"context"
	"slices"
)

// Action is the closed set of interactions the site supports.
type Action string

const (
	ActionNone               Action = "none"
	ActionToggleWishlist     Action = "toggle-wishlist"
	ActionAddToCart          Action = "add-to-cart"
	ActionRemoveFromCart     Action = "remove-from-cart"
	ActionRemoveFromWishlist Action = "remove-from-wishlist"
	ActionQuantityDecrease   Action = "quantity-decrease"
	ActionQuantityIncrease   Action = "quantity-increase"
	ActionClearCart          Action = "clear-cart"
	ActionCheckout           Action = "checkout"
	ActionFAQToggle          Action = "faq-toggle"
)

// Element is one node in the serialized ancestor chain of a click: its CSS
// classes, its data attributes, and, for listing cards, the display fields
// read off the card at click time.
type Element struct {
	Classes  []string          `json:"classes"`
	Data     map[string]string `json:"data,omitempty"`
	Title    string            `json:"title,omitempty"`
	Location string            `json:"location,omitempty"`
	Price    string            `json:"price,omitempty"`
	Image    string            `json:"image,omitempty"`
}

// ClickTarget is the serialized click: the clicked element first, then its
// ancestors in ascending order.
type ClickTarget struct {
	Chain []Element `json:"chain" validate:"required,min=1"`
}

// Resolution is the outcome of classifying a click. ID and the display
// fields are populated only for actions that carry them.
type Resolution struct {
	Action   Action
	ID       string
	Title    string
	Location string
	Price    string
	Image    string
}

// Display-field defaults applied when a listing card omits them.
const (
	defaultTitle = "Accommodation"
	defaultPrice = "KSh 0"
)

var actionClasses = []struct {
	class  string
	action Action
}{
	{"like-btn", ActionToggleWishlist},
	{"add-to-cart", ActionAddToCart},
	{"remove-from-cart", ActionRemoveFromCart},
	{"remove-from-wishlist", ActionRemoveFromWishlist},
	{"quantity-decrease", ActionQuantityDecrease},
	{"quantity-increase", ActionQuantityIncrease},
	{"empty-cart-btn", ActionClearCart},
	{"checkout-btn", ActionCheckout},
	{"faq-item", ActionFAQToggle},
}

// Classify resolves a click into exactly one action. Matching walks a fixed
// precedence list; each candidate class matches the clicked element or any
// ancestor. Clicks that match nothing, card actions with no enclosing
// listing card, and id actions with no data-id all resolve to ActionNone.
func Classify(target ClickTarget) Resolution {
	for _, candidate := range actionClasses {
		i := closest(target, candidate.class)
		if i < 0 {
			continue
		}

		switch candidate.action {
		case ActionToggleWishlist, ActionAddToCart:
			card := closestFrom(target, i, "listing-card")
			if card < 0 {
				return Resolution{Action: ActionNone}
			}
			return cardResolution(candidate.action, target.Chain[card])

		case ActionRemoveFromCart, ActionRemoveFromWishlist, ActionQuantityDecrease, ActionQuantityIncrease:
			id := target.Chain[i].Data["id"]
			if id == "" {
				return Resolution{Action: ActionNone}
			}
			return Resolution{Action: candidate.action, ID: id}

		default:
			return Resolution{Action: candidate.action}
		}
	}

	return Resolution{Action: ActionNone}
}

func cardResolution(action Action, card Element) Resolution {
	res := Resolution{
		Action:   action,
		ID:       card.Data["id"],
		Title:    card.Title,
		Location: card.Location,
		Price:    card.Price,
		Image:    card.Image,
	}
	if res.Title == "" {
		res.Title = defaultTitle
	}
	if res.Price == "" {
		res.Price = defaultPrice
	}
	return res
}

// closest returns the index of the first element in the chain carrying the
// class, or -1.
func closest(target ClickTarget, class string) int {
	return closestFrom(target, 0, class)
}

func closestFrom(target ClickTarget, start int, class string) int {
	for i := start; i < len(target.Chain); i++ {
		if slices.Contains(target.Chain[i].Classes, class) {
			return i
		}
	}
	return -1
}

// Handler executes one resolved action for a session.
type Handler func(ctx context.Context, sessionID string, res Resolution) error

// Dispatcher routes resolutions to handlers. Actions without a registered
// handler, and ActionNone, are ignored.
type Dispatcher map[Action]Handler

// Dispatch classifies the target and invokes the matching handler. It
// returns the resolution so callers can report what happened.
func (d Dispatcher) Dispatch(ctx context.Context, sessionID string, target ClickTarget) (Resolution, error) {
	res := Classify(target)
	handler, ok := d[res.Action]
	if !ok || res.Action == ActionNone {
		return res, nil
	}
	return res, handler(ctx, sessionID, res)
}
