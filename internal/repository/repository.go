package repository

import (
	"context"

	"github.com/staykenya/bookings/internal/domain"
)

// CollectionRepository defines the interface for cart/wishlist persistence.
// Writes are whole-collection overwrites with no cross-writer coordination:
// two sessions of the same browser profile writing the same key race with
// last-writer-wins semantics, mirroring the storage model of the site.
type CollectionRepository interface {
	// Get retrieves a collection by kind and session ID.
	Get(ctx context.Context, kind domain.Kind, sessionID string) (*domain.Collection, error)

	// Save persists a collection, overwriting any existing value for the key.
	Save(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection. Deleting an absent key is not an error.
	Delete(ctx context.Context, kind domain.Kind, sessionID string) error
}
