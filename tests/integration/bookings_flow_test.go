package integration

import (
	"fmt"
	"strings"
	"testing"
)

// TestAddItemToBookings verifies that a listing can be added to the bookings
// list for a fresh session.
func TestAddItemToBookings(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}

	body := map[string]interface{}{
		"id":       "it-101",
		"title":    "Diani Beach Villa",
		"location": "Diani Beach",
		"price":    "KSh 4,500",
	}

	status, data := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", body, headers)
	requireStatus(t, status, 200)

	cartData := extractField(data, "data")
	if cartData == nil {
		t.Fatal("expected data in add-item response, got nil")
	}

	t.Logf("added listing to bookings for session %s", sessionID)
}

// TestDuplicateAddExtendsBooking verifies that adding the same listing twice
// keeps one line with quantity 2 and emits the extension notification.
func TestDuplicateAddExtendsBooking(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}
	body := map[string]interface{}{"id": "it-202", "title": "Naivasha Cottage", "price": "KSh 3,000"}

	status, _ := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", body, headers)
	requireStatus(t, status, 200)
	status, data := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", body, headers)
	requireStatus(t, status, 200)

	items, ok := extractField(data, "data.items").([]interface{})
	if !ok || len(items) != 1 {
		t.Fatalf("expected a single merged line, got %v", extractField(data, "data.items"))
	}
	line, _ := items[0].(map[string]interface{})
	if qty, _ := line["quantity"].(float64); qty != 2 {
		t.Errorf("quantity = %v, want 2", line["quantity"])
	}
}

// TestViewBookings verifies that the bookings list can be retrieved and that a
// session with no writes sees an empty list rather than an error.
func TestViewBookings(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	headers := map[string]string{"X-Session-ID": uniqueSessionID()}

	status, data := httpGetWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart", headers)
	requireStatus(t, status, 200)

	if extractField(data, "data") == nil {
		t.Fatal("expected data in view response, got nil")
	}
}

// TestWishlistToggleRoundTrip verifies that toggling the same listing twice
// leaves the wishlist empty.
func TestWishlistToggleRoundTrip(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}
	body := map[string]interface{}{"id": "it-303", "title": "Maasai Mara Camp", "price": "KSh 12,000"}

	status, data := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/wishlist/toggle", body, headers)
	requireStatus(t, status, 200)
	items, _ := extractField(data, "data.items").([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one wishlist entry after first toggle, got %d", len(items))
	}

	status, data = httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/wishlist/toggle", body, headers)
	requireStatus(t, status, 200)
	items, _ = extractField(data, "data.items").([]interface{})
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist after second toggle, got %d entries", len(items))
	}
}

// TestCheckoutLink verifies that a non-empty cart produces a wa.me deep link
// carrying the inquiry message.
func TestCheckoutLink(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}
	body := map[string]interface{}{"id": "it-404", "title": "Watamu Apartment", "price": "KSh 6,500"}

	status, _ := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", body, headers)
	requireStatus(t, status, 200)

	status, data := httpGetWithHeaders(t, baseURL(bookingsPort)+"/api/v1/checkout/link", headers)
	requireStatus(t, status, 200)

	url := extractString(t, data, "data.url")
	if !strings.HasPrefix(url, "https://wa.me/") {
		t.Errorf("checkout link = %q, want a wa.me URL", url)
	}
}

// TestClearBookings verifies the full clear flow: confirmed clear empties the
// list and a repeat clear reports it was already empty.
func TestClearBookings(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}
	body := map[string]interface{}{"id": "it-505", "title": "Nairobi Loft", "price": "KSh 2,500"}

	status, _ := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", body, headers)
	requireStatus(t, status, 200)

	status, data := httpDeleteWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart?confirm=true", headers)
	requireStatus(t, status, 200)
	if got := extractString(t, data, "data.status"); got != "cleared" {
		t.Errorf("clear status = %q, want %q", got, "cleared")
	}

	status, data = httpDeleteWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart?confirm=true", headers)
	requireStatus(t, status, 200)
	if got := extractString(t, data, "data.status"); got != "already_empty" {
		t.Errorf("repeat clear status = %q, want %q", got, "already_empty")
	}
}

// TestBadgesReflectQuantities verifies that the cart badge counts nights while
// the wishlist badge counts saved listings.
func TestBadgesReflectQuantities(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}

	add := map[string]interface{}{"id": "it-606", "title": "Lamu House", "price": "KSh 9,000"}
	for i := 0; i < 3; i++ {
		status, _ := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart/items", add, headers)
		requireStatus(t, status, 200)
	}
	status, _ := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/wishlist/toggle", add, headers)
	requireStatus(t, status, 200)

	status, data := httpGetWithHeaders(t, baseURL(bookingsPort)+"/api/v1/badges", headers)
	requireStatus(t, status, 200)

	if got := extractFloat(t, data, "data.cart_count"); got != 3 {
		t.Errorf("cart badge = %v, want 3", got)
	}
	if got := extractFloat(t, data, "data.wishlist_count"); got != 1 {
		t.Errorf("wishlist badge = %v, want 1", got)
	}
}

// TestMissingSessionHeaderRejected verifies that API calls without a session
// header are rejected.
func TestMissingSessionHeaderRejected(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	status, data := httpGetWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart", nil)
	requireStatus(t, status, 400)

	code := extractField(data, "error.code")
	if code != "INVALID_INPUT" {
		t.Errorf("error code = %v, want INVALID_INPUT", code)
	}
}

// TestActionsEndpointAddsToCart verifies the click-descriptor path end to end:
// posting a serialized add-to-cart click inserts the listing.
func TestActionsEndpointAddsToCart(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	sessionID := uniqueSessionID()
	headers := map[string]string{"X-Session-ID": sessionID}

	click := map[string]interface{}{
		"chain": []map[string]interface{}{
			{"classes": []string{"add-to-cart"}},
			{
				"classes":  []string{"listing-card"},
				"data":     map[string]string{"id": "it-707"},
				"title":    "Kilifi Beach House",
				"location": "Kilifi",
				"price":    "KSh 7,500",
			},
		},
	}

	status, data := httpPostWithHeaders(t, baseURL(bookingsPort)+"/api/v1/actions", click, headers)
	requireStatus(t, status, 200)
	if got := extractString(t, data, "data.action"); got != "add-to-cart" {
		t.Errorf("resolved action = %q, want add-to-cart", got)
	}

	status, cart := httpGetWithHeaders(t, baseURL(bookingsPort)+"/api/v1/cart", headers)
	requireStatus(t, status, 200)
	items, _ := extractField(cart, "data.items").([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one cart line after dispatched click, got %d", len(items))
	}
}

// TestFragmentsRenderEmptyState verifies that a fresh session's cart fragment
// carries the empty-state message.
func TestFragmentsRenderEmptyState(t *testing.T) {
	skipIfNotRunning(t, bookingsPort)

	headers := map[string]string{"X-Session-ID": uniqueSessionID()}

	status, data := httpGetWithHeaders(t, fmt.Sprintf("%s/api/v1/fragments/cart", baseURL(bookingsPort)), headers)
	requireStatus(t, status, 200)

	html := extractString(t, data, "data.html")
	if !strings.Contains(html, "Your bookings list is empty") {
		t.Errorf("empty cart fragment missing empty-state message: %q", html)
	}
}
