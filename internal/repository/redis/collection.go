package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/staykenya/bookings/internal/domain"
	apperrors "github.com/staykenya/bookings/pkg/errors"
)

// CollectionRepository implements repository.CollectionRepository using Redis.
type CollectionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCollectionRepository creates a new Redis-backed collection repository.
func NewCollectionRepository(client *redis.Client, ttl time.Duration) *CollectionRepository {
	return &CollectionRepository{
		client: client,
		ttl:    ttl,
	}
}

func key(kind domain.Kind, sessionID string) string {
	return string(kind) + ":" + sessionID
}

// Get retrieves a collection from Redis. A missing key returns a NotFound
// error; a malformed value is treated as an empty collection, never an error,
// so that a corrupted cache can't break the session.
func (r *CollectionRepository) Get(ctx context.Context, kind domain.Kind, sessionID string) (*domain.Collection, error) {
	data, err := r.client.Get(ctx, key(kind, sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound(string(kind), sessionID)
		}
		return nil, fmt.Errorf("redis get %s: %w", kind, err)
	}

	var collection domain.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return domain.NewCollection(kind, sessionID), nil
	}
	if collection.Items == nil {
		collection.Items = []domain.LineItem{}
	}

	return &collection, nil
}

// Save persists a collection to Redis with the configured TTL.
func (r *CollectionRepository) Save(ctx context.Context, collection *domain.Collection) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", collection.Kind, err)
	}

	if err := r.client.Set(ctx, key(collection.Kind, collection.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", collection.Kind, err)
	}

	return nil
}

// Delete removes a collection from Redis.
func (r *CollectionRepository) Delete(ctx context.Context, kind domain.Kind, sessionID string) error {
	if err := r.client.Del(ctx, key(kind, sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", kind, err)
	}

	return nil
}
