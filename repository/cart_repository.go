package repository

import (
	"context"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository persists the durable abandoned-cart rows the tracker sweeps.
type CartRepository interface {
	// UpsertBySession inserts or refreshes the row for a session. Renewed
	// activity resets is_abandoned; converted rows stay converted.
	UpsertBySession(ctx context.Context, cart *models.AbandonedCart) error
	FindBySession(ctx context.Context, sessionID string) (*models.AbandonedCart, error)
	// MarkAbandoned flags carts idle since before the cutoff that are neither
	// abandoned nor converted, and returns the number of rows flagged.
	MarkAbandoned(ctx context.Context, cutoff, now time.Time) (int64, error)
}

type gormCartRepo struct {
	db *gorm.DB
}

func NewGormCartRepo(db *gorm.DB) CartRepository {
	return &gormCartRepo{db: db}
}

func (r *gormCartRepo) UpsertBySession(ctx context.Context, cart *models.AbandonedCart) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"customer_id":  cart.CustomerID,
			"items_json":   cart.ItemsJSON,
			"total_value":  cart.TotalValue,
			"last_updated": cart.LastUpdated,
			"is_abandoned": false,
			"abandoned_at": nil,
		}),
	}).Create(cart).Error
}

func (r *gormCartRepo) FindBySession(ctx context.Context, sessionID string) (*models.AbandonedCart, error) {
	var cart models.AbandonedCart
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepo) MarkAbandoned(ctx context.Context, cutoff, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.AbandonedCart{}).
		Where("last_updated < ? AND is_abandoned = ? AND is_converted = ?", cutoff, false, false).
		Updates(map[string]interface{}{
			"is_abandoned": true,
			"abandoned_at": now,
		})
	return res.RowsAffected, res.Error
}
