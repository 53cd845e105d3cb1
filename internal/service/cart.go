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

// Snapshot carries the display fields read off a listing card at the moment
// of the action. It is the only source of item data; there is no catalog to
// re-validate against, so entries keep whatever the card showed.
type Snapshot struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Image    string `json:"image"`
}

// ClearStatus reports the outcome of a guarded cart clear.
type ClearStatus string

const (
	ClearAlreadyEmpty ClearStatus = "already_empty"
	ClearDeclined     ClearStatus = "declined"
	ClearCleared      ClearStatus = "cleared"
)

// CartService implements the business logic for cart operations. Every
// mutation persists the whole collection immediately and publishes a
// best-effort domain event.
type CartService struct {
	repo     repository.CollectionRepository
	producer *event.Producer
	logger   *slog.Logger
	ttl      time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CollectionRepository, producer *event.Producer, logger *slog.Logger, ttl time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		ttl:      ttl,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Collection, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	return s.getOrEmpty(ctx, sessionID)
}

// AddItem adds a listing to the session's cart. A duplicate id increments the
// existing line's quantity by one and refreshes its display fields from the
// newer snapshot; otherwise the snapshot is inserted with quantity 1. The
// returned flag reports whether a new line was inserted.
func (s *CartService) AddItem(ctx context.Context, sessionID string, snap Snapshot) (*domain.Collection, bool, error) {
	if sessionID == "" {
		return nil, false, apperrors.InvalidInput("session id is required")
	}
	if snap.ID == "" {
		return nil, false, apperrors.InvalidInput("listing id is required")
	}

	cart, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	added := false
	if i := cart.FindIndex(snap.ID); i >= 0 {
		cart.Items[i].Quantity++
		// Refresh display fields in case the card changed since the last add.
		cart.Items[i].Title = snap.Title
		cart.Items[i].Location = snap.Location
		cart.Items[i].Price = snap.Price
		cart.Items[i].Image = snap.Image
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			ID:       snap.ID,
			Title:    snap.Title,
			Location: snap.Location,
			Price:    snap.Price,
			Image:    snap.Image,
			Quantity: 1,
		})
		added = true
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("listing_id", snap.ID),
		slog.Bool("new_line", added),
	)

	return cart, added, nil
}

// AdjustQuantity changes an item's quantity by delta. An absent id is a
// silent no-op. A resulting quantity of zero or less removes the line, so a
// surviving line never drops below quantity 1. The returned flag reports
// whether the line was removed.
func (s *CartService) AdjustQuantity(ctx context.Context, sessionID, id string, delta int) (*domain.Collection, bool, error) {
	if sessionID == "" {
		return nil, false, apperrors.InvalidInput("session id is required")
	}
	if id == "" {
		return nil, false, apperrors.InvalidInput("listing id is required")
	}

	cart, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	i := cart.FindIndex(id)
	if i < 0 {
		return cart, false, nil
	}

	removed := false
	newQty := cart.Items[i].Quantity + delta
	if newQty <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		removed = true
	} else {
		cart.Items[i].Quantity = newQty
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, false, err
	}

	s.logger.InfoContext(ctx, "cart quantity adjusted",
		slog.String("session_id", sessionID),
		slog.String("listing_id", id),
		slog.Int("delta", delta),
		slog.Bool("line_removed", removed),
	)

	return cart, removed, nil
}

// RemoveItem removes a line from the cart. Removing an absent id is not an
// error and writes nothing.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, id string) (*domain.Collection, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("listing id is required")
	}

	cart, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindIndex(id)
	if i < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("listing_id", id),
	)

	return cart, nil
}

// Clear empties the session's cart. An already-empty cart short-circuits
// before the confirmation step and writes nothing; an unconfirmed request is
// a no-op. Only a confirmed clear of a non-empty cart touches storage.
func (s *CartService) Clear(ctx context.Context, sessionID string, confirmed bool) (ClearStatus, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrEmpty(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if cart.IsEmpty() {
		return ClearAlreadyEmpty, nil
	}
	if !confirmed {
		return ClearDeclined, nil
	}

	if err := s.repo.Delete(ctx, domain.KindCart, sessionID); err != nil {
		return "", fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return ClearCleared, nil
}

// getOrEmpty retrieves the cart, creating an empty one if it does not exist.
func (s *CartService) getOrEmpty(ctx context.Context, sessionID string) (*domain.Collection, error) {
	cart, err := s.repo.Get(ctx, domain.KindCart, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCollection(domain.KindCart, sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// save stamps, persists, and announces the cart.
func (s *CartService) save(ctx context.Context, cart *domain.Collection) error {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCollectionUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
