package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/staykenya/bookings/internal/domain"
	pkgkafka "github.com/staykenya/bookings/pkg/kafka"
)

// Kafka topic constants for bookings domain events.
const (
	TopicCartUpdated     = "staykenya.cart.updated"
	TopicCartCleared     = "staykenya.cart.cleared"
	TopicWishlistUpdated = "staykenya.wishlist.updated"
)

// Aggregate type constant.
const AggregateTypeCollection = "collection"

// Source identifier for events originating from the bookings service.
const SourceBookingsService = "bookings-service"

// CollectionUpdatedData is the payload for cart.updated and wishlist.updated events.
type CollectionUpdatedData struct {
	SessionID     string         `json:"session_id"`
	Kind          string         `json:"kind"`
	Items         []LineItemData `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	Subtotal      int64          `json:"subtotal"`
}

// LineItemData is the item payload within collection events.
type LineItemData struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// Producer publishes bookings domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the bookings service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCollectionUpdated publishes cart.updated or wishlist.updated
// depending on the collection kind.
func (p *Producer) PublishCollectionUpdated(ctx context.Context, collection *domain.Collection) error {
	items := make([]LineItemData, len(collection.Items))
	for i, item := range collection.Items {
		items[i] = LineItemData{
			ID:       item.ID,
			Title:    item.Title,
			Location: item.Location,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	data := CollectionUpdatedData{
		SessionID:     collection.SessionID,
		Kind:          string(collection.Kind),
		Items:         items,
		TotalQuantity: collection.TotalQuantity(),
		Subtotal:      collection.Subtotal(),
	}

	topic := TopicCartUpdated
	if collection.Kind == domain.KindWishlist {
		topic = TopicWishlistUpdated
	}

	event, err := pkgkafka.NewEvent(topic, collection.SessionID, AggregateTypeCollection, SourceBookingsService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published collection event",
		slog.String("topic", topic),
		slog.String("session_id", collection.SessionID),
		slog.Int("item_count", collection.Count()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCollection, SourceBookingsService, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}
