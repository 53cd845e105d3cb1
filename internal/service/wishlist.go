package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/staykenya/bookings/internal/domain"
	"github.com/staykenya/bookings/internal/event"
	"github.com/staykenya/bookings/internal/repository"
	apperrors "github.com/staykenya/bookings/pkg/errors"
)

// WishlistService implements the business logic for wishlist operations.
// The wishlist is a pure presence set: toggling is add-or-remove, never an
// increment, and quantities are fixed at 1.
type WishlistService struct {
	repo     repository.CollectionRepository
	producer *event.Producer
	logger   *slog.Logger
	ttl      time.Duration
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.CollectionRepository, producer *event.Producer, logger *slog.Logger, ttl time.Duration) *WishlistService {
	return &WishlistService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		ttl:      ttl,
	}
}

// GetWishlist retrieves the wishlist for a session, empty when absent.
func (s *WishlistService) GetWishlist(ctx context.Context, sessionID string) (*domain.Collection, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	return s.getOrEmpty(ctx, sessionID)
}

// Toggle flips the membership of a listing: present entries are removed,
// absent ones are inserted with quantity 1. The returned flag reports
// whether the listing was added (true) or removed (false). Toggling twice
// always restores the original state.
func (s *WishlistService) Toggle(ctx context.Context, sessionID string, snap Snapshot) (*domain.Collection, bool, error) {
	if sessionID == "" {
		return nil, false, apperrors.InvalidInput("session id is required")
	}
	if snap.ID == "" {
		return nil, false, apperrors.InvalidInput("listing id is required")
	}

	wishlist, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	added := false
	if i := wishlist.FindIndex(snap.ID); i >= 0 {
		wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
	} else {
		wishlist.Items = append(wishlist.Items, domain.LineItem{
			ID:       snap.ID,
			Title:    snap.Title,
			Location: snap.Location,
			Price:    snap.Price,
			Image:    snap.Image,
			Quantity: 1,
		})
		added = true
	}

	if err := s.save(ctx, wishlist); err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "wishlist membership toggled",
		slog.String("session_id", sessionID),
		slog.String("listing_id", snap.ID),
		slog.Bool("added", added),
	)

	return wishlist, added, nil
}

// RemoveItem removes a listing from the wishlist. Removing an absent id is
// not an error and writes nothing.
func (s *WishlistService) RemoveItem(ctx context.Context, sessionID, id string) (*domain.Collection, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("listing id is required")
	}

	wishlist, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := wishlist.FindIndex(id)
	if i < 0 {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)

	if err := s.save(ctx, wishlist); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("session_id", sessionID),
		slog.String("listing_id", id),
	)

	return wishlist, nil
}

func (s *WishlistService) getOrEmpty(ctx context.Context, sessionID string) (*domain.Collection, error) {
	wishlist, err := s.repo.Get(ctx, domain.KindWishlist, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCollection(domain.KindWishlist, sessionID), nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return wishlist, nil
}

func (s *WishlistService) save(ctx context.Context, wishlist *domain.Collection) error {
	wishlist.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, wishlist); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}

	if err := s.producer.PublishCollectionUpdated(ctx, wishlist); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("session_id", wishlist.SessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
