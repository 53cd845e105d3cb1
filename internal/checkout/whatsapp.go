// Package checkout builds the WhatsApp inquiry handoff. There is no payment
// flow; checkout hands the cart to the host as a pre-filled chat message.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/staykenya/bookings/internal/domain"
	apperrors "github.com/staykenya/bookings/pkg/errors"
)

// Builder composes inquiry messages and wa.me links for a fixed recipient.
type Builder struct {
	recipient string
}

// NewBuilder creates a builder for the given recipient phone number in
// international format without the leading plus, e.g. "254740941872".
func NewBuilder(recipient string) *Builder {
	return &Builder{recipient: recipient}
}

// Message renders the inquiry text for a cart: a greeting, one line per
// entry, the total, and a closing request. An empty cart is refused.
func (b *Builder) Message(cart *domain.Collection) (string, error) {
	if cart.IsEmpty() {
		return "", apperrors.InvalidInput("Your bookings list is empty")
	}

	var sb strings.Builder
	sb.WriteString("Hello! I would like to inquire about the following accommodations:\n\n")

	for _, item := range cart.Items {
		fmt.Fprintf(&sb, "- %s (%d nights) - %s\n", item.Title, item.Quantity, item.Price)
	}

	fmt.Fprintf(&sb, "\nTotal: %s\n\n", domain.FormatPrice(cart.Subtotal()))
	sb.WriteString("Please provide availability and booking details for these properties.")

	return sb.String(), nil
}

// Link builds the wa.me URL carrying the percent-encoded inquiry message.
func (b *Builder) Link(cart *domain.Collection) (string, error) {
	message, err := b.Message(cart)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("text", message)

	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + b.recipient,
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}
