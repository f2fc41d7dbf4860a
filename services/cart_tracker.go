package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"

	"go.uber.org/zap"
)

// CartTracker owns the abandoned-cart lifecycle: cart-sync upserts on every
// mutation, the periodic sweep flags idle carts, and conversion is applied by
// the reconciler on settlement.
type CartTracker struct {
	carts     repository.CartRepository
	liveCarts *repository.LiveCartRepository
	threshold time.Duration
	logger    *zap.Logger
}

func NewCartTracker(carts repository.CartRepository, liveCarts *repository.LiveCartRepository, threshold time.Duration, logger *zap.Logger) *CartTracker {
	return &CartTracker{
		carts:     carts,
		liveCarts: liveCarts,
		threshold: threshold,
		logger:    logger,
	}
}

// Sync mirrors a cart mutation into Redis and upserts the durable row keyed
// by session. Renewed activity clears any abandonment flag.
func (t *CartTracker) Sync(ctx context.Context, cart *models.Cart) *ServiceError {
	if cart.SessionID == "" {
		return NewValidationError("session id is required")
	}

	total := 0
	for _, item := range cart.Items {
		total += item.UnitPrice * item.Quantity
	}
	cart.TotalValue = total

	if t.liveCarts != nil {
		if err := t.liveCarts.Save(ctx, cart); err != nil {
			// The durable row is authoritative; a stale mirror only degrades
			// storefront rendering.
			t.logger.Warn("failed to mirror cart to redis",
				zap.String("session_id", cart.SessionID),
				zap.Error(err),
			)
		}
	}

	itemsJSON, _ := json.Marshal(cart.Items)
	row := &models.AbandonedCart{
		SessionID:   cart.SessionID,
		CustomerID:  cart.CustomerID,
		ItemsJSON:   string(itemsJSON),
		TotalValue:  cart.TotalValue,
		LastUpdated: time.Now(),
	}
	if err := t.carts.UpsertBySession(ctx, row); err != nil {
		t.logger.Error("cart upsert failed", zap.String("session_id", cart.SessionID), zap.Error(err))
		return NewInternalError("failed to sync cart", err)
	}
	return nil
}

// GetLive returns the Redis mirror of a session's cart, or nil when absent.
func (t *CartTracker) GetLive(ctx context.Context, sessionID string) (*models.Cart, *ServiceError) {
	cart, err := t.liveCarts.Get(ctx, sessionID)
	if err != nil {
		return nil, NewInternalError("failed to load cart", err)
	}
	return cart, nil
}

// Sweep flags carts idle past the threshold that are neither abandoned nor
// converted. Assumes single-instance execution; there is no distributed lock,
// so deployments must route the trigger to one instance.
func (t *CartTracker) Sweep(ctx context.Context) (int64, *ServiceError) {
	now := time.Now()
	count, err := t.carts.MarkAbandoned(ctx, now.Add(-t.threshold), now)
	if err != nil {
		t.logger.Error("abandoned cart sweep failed", zap.Error(err))
		return 0, NewInternalError("sweep failed", err)
	}
	t.logger.Info("abandoned cart sweep completed", zap.Int64("flagged", count))
	return count, nil
}
