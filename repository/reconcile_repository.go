package repository

import (
	"context"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"gorm.io/gorm"
)

// ReconcileStore owns the atomic, conditional writes that apply a gateway
// outcome to payment, order and cart state.
type ReconcileStore interface {
	// ApplySettlement settles the payment and its order and marks the
	// customer's unconverted carts converted, all in one transaction. Every
	// update is conditioned on the expected "from" status; if the payment
	// update matches zero rows the event was already processed or superseded
	// and the transaction commits nothing (applied=false, err=nil).
	ApplySettlement(ctx context.Context, payment *models.Payment, rawPayload string) (applied bool, err error)
	// ApplyDecline moves the payment to declined. The order is left as-is so
	// the customer can retry payment.
	ApplyDecline(ctx context.Context, payment *models.Payment, rawPayload string) (applied bool, err error)
}

type gormReconcileStore struct {
	db *gorm.DB
}

func NewGormReconcileStore(db *gorm.DB) ReconcileStore {
	return &gormReconcileStore{db: db}
}

// errSuperseded aborts the settlement transaction without surfacing an error
// to the caller: a concurrent delivery of the same event got there first.
type errSuperseded struct{}

func (errSuperseded) Error() string { return "already processed or superseded" }

func (s *gormReconcileStore) ApplySettlement(ctx context.Context, payment *models.Payment, rawPayload string) (bool, error) {
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status IN ?", payment.ID, models.PaymentStatusesAllowing(models.PaymentStatusSettled)).
			Updates(map[string]interface{}{
				"status":          models.PaymentStatusSettled,
				"gateway_payload": rawPayload,
				"settled_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errSuperseded{}
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", payment.OrderID, models.OrderStatusesAllowing(models.OrderStatusPaymentSettled)).
			Update("status", models.OrderStatusPaymentSettled).Error; err != nil {
			return err
		}

		// Conversion is one-way; sweeps never revert it.
		return tx.Model(&models.AbandonedCart{}).
			Where("customer_id = ? AND is_converted = ?", payment.CustomerID, false).
			Updates(map[string]interface{}{
				"is_converted": true,
				"is_abandoned": false,
			}).Error
	})
	if err != nil {
		if _, ok := err.(errSuperseded); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *gormReconcileStore) ApplyDecline(ctx context.Context, payment *models.Payment, rawPayload string) (bool, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status IN ?", payment.ID, models.PaymentStatusesAllowing(models.PaymentStatusDeclined)).
		Updates(map[string]interface{}{
			"status":          models.PaymentStatusDeclined,
			"gateway_payload": rawPayload,
			"declined_at":     now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
