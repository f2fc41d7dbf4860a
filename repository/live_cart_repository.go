package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"github.com/redis/go-redis/v9"
)

// LiveCartRepository mirrors the live cart into Redis with a TTL so the
// storefront can render it without touching Postgres.
type LiveCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLiveCartRepository(client *redis.Client, ttl time.Duration) *LiveCartRepository {
	return &LiveCartRepository{client: client, ttl: ttl}
}

func (r *LiveCartRepository) key(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Get returns the cart for a session, or nil when none exists.
func (r *LiveCartRepository) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *LiveCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.SessionID), data, r.ttl).Err()
}

func (r *LiveCartRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
