package repository

import (
	"context"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines order reads and the conditional status write used
// by the admin override path.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateStatusIf moves an order from an expected status to a new one in a
	// single conditional update and returns the number of rows affected. Zero
	// rows means the order was no longer in the expected status.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to string) (int64, error)
}

type gormOrderRepo struct {
	db *gorm.DB
}

func NewGormOrderRepo(db *gorm.DB) OrderRepository {
	return &gormOrderRepo{db: db}
}

func (r *gormOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
