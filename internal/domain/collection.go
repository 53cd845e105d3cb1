package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind names one of the two persisted collections.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
)

// LineItem is one entry in a cart or wishlist, keyed by listing id. The
// display fields are snapshots copied from the listing card at the moment of
// the action and are never refreshed against a catalog (none exists).
type LineItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Price    string `json:"price"` // display string, e.g. "KSh 4,500"
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// Collection is an ordered list of line items for one browser session.
// Ids are unique within a collection and insertion order is the render order.
type Collection struct {
	Kind      Kind       `json:"kind"`
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCollection creates an empty collection of the given kind.
func NewCollection(kind Kind, sessionID string) *Collection {
	return &Collection{
		Kind:      kind,
		SessionID: sessionID,
		Items:     []LineItem{},
		UpdatedAt: time.Now().UTC(),
	}
}

// FindIndex returns the index of the item with the given id, or -1.
func (c *Collection) FindIndex(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the collection has no items.
func (c *Collection) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the quantity-weighted item count (the cart badge).
func (c *Collection) TotalQuantity() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Count returns the number of entries (the wishlist badge).
func (c *Collection) Count() int {
	return len(c.Items)
}

// Subtotal sums price times quantity over all items. Prices are parsed out
// of the display strings, so an unparseable price contributes zero.
func (c *Collection) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += ParsePrice(item.Price) * int64(item.Quantity)
	}
	return total
}

var priceRe = regexp.MustCompile(`\d[\d,]*`)

// ParsePrice extracts the numeric amount from a display price string such as
// "KSh 4,500 / night": the first run of digits and grouping commas, with the
// commas stripped. Returns 0 when the string carries no digits.
func ParsePrice(s string) int64 {
	m := priceRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatPrice renders an amount as a display price, e.g. 4500 -> "KSh 4,500".
func FormatPrice(n int64) string {
	return "KSh " + groupDigits(n)
}

// groupDigits inserts comma separators every three digits.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
