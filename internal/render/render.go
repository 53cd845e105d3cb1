// Package render turns collection state into the HTML fragments the site
// swaps into its cart and wishlist containers. Rendering is a pure function
// of the collection passed in; it never reads storage.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/staykenya/bookings/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// itemView is one rendered line. Fallback is the inline SVG substituted when
// the item's image fails to load client-side; an empty image source gets the
// fallback as its primary source.
type itemView struct {
	ID       string
	Title    string
	Location string
	Price    string
	Image    template.URL
	Fallback template.URL
	Quantity int
}

type listView struct {
	Empty bool
	Items []itemView
}

// Fragment is a rendered piece of the page plus the derived figures the
// surrounding chrome displays alongside it.
type Fragment struct {
	HTML     string `json:"html"`
	Subtotal string `json:"subtotal,omitempty"`
	Total    string `json:"total,omitempty"`
	Count    int    `json:"count"`
}

// Renderer renders cart and wishlist fragments from embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// CartFragment renders the cart list. Subtotal and total carry the same
// value; there is no tax or fee layer.
func (r *Renderer) CartFragment(cart *domain.Collection) (*Fragment, error) {
	html, err := r.execute("cart.html.tmpl", newListView(cart))
	if err != nil {
		return nil, err
	}

	subtotal := domain.FormatPrice(cart.Subtotal())
	return &Fragment{
		HTML:     html,
		Subtotal: subtotal,
		Total:    subtotal,
		Count:    cart.TotalQuantity(),
	}, nil
}

// WishlistFragment renders the wishlist.
func (r *Renderer) WishlistFragment(wishlist *domain.Collection) (*Fragment, error) {
	html, err := r.execute("wishlist.html.tmpl", newListView(wishlist))
	if err != nil {
		return nil, err
	}

	// The wishlist badge counts entries, not quantities.
	return &Fragment{
		HTML:  html,
		Count: wishlist.Count(),
	}, nil
}

func (r *Renderer) execute(name string, view listView) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}

func newListView(collection *domain.Collection) listView {
	view := listView{Empty: collection.IsEmpty()}
	for _, item := range collection.Items {
		fallback := PlaceholderDataURI(VariantListing, item.ID)
		src := item.Image
		if src == "" {
			src = fallback
		}
		view.Items = append(view.Items, itemView{
			ID:       item.ID,
			Title:    item.Title,
			Location: item.Location,
			Price:    item.Price,
			Image:    template.URL(src),
			Fallback: template.URL(fallback),
			Quantity: item.Quantity,
		})
	}
	return view
}
