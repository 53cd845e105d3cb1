package render

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
)

// Variant selects the placeholder shape for the kind of image slot that
// failed to load.
type Variant string

const (
	VariantListing  Variant = "listing"
	VariantCategory Variant = "category"
	VariantOther    Variant = "other"
)

// listingPalette is the fixed set of fill colors for listing placeholders.
// The color for a given listing is stable across renders.
var listingPalette = []string{"#FF385C", "#00A699", "#FFB400", "#914669", "#2176AE"}

const (
	categoryFill = "#00A699"
	otherFill    = "#607d8b"
)

// PlaceholderDataURI builds an inline SVG fallback image as a base64 data
// URI. Listing placeholders hash the listing id into the palette so the same
// listing always gets the same color; category and chrome placeholders use a
// single fixed fill.
func PlaceholderDataURI(variant Variant, id string) string {
	var svg string
	switch variant {
	case VariantCategory:
		svg = placeholderSVG(200, 150, 12, categoryFill, "Category Image")
	case VariantOther:
		svg = placeholderSVG(100, 100, 10, otherFill, "Image")
	default:
		fill := listingPalette[paletteIndex(id)]
		svg = placeholderSVG(200, 200, 14, fill, "Accommodation Image")
	}
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func paletteIndex(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(listingPalette)))
}

func placeholderSVG(width, height, fontSize int, fill, caption string) string {
	return fmt.Sprintf(
		`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+
			`<rect width="100%%" height="100%%" fill="%s"/>`+
			`<text x="50%%" y="50%%" font-family="Arial" font-size="%d" fill="white" text-anchor="middle" dy=".3em">%s</text>`+
			`</svg>`,
		width, height, fill, fontSize, caption,
	)
}
