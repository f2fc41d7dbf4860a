package repository

import (
	"context"
	"errors"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutLine is one requested line at checkout: product and quantity only,
// the price is re-read from the catalog inside the transaction.
type CheckoutLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// CheckoutStore owns the transactional writes of the checkout flow.
type CheckoutStore interface {
	// ReserveAndCreate runs one transaction that re-prices every line,
	// conditionally decrements stock (all-or-nothing), freezes line
	// snapshots, computes totals with the given tax rate and inserts the
	// order (status created) and payment (status pending, amount = total).
	ReserveAndCreate(ctx context.Context, order *models.Order, lines []CheckoutLine, taxRateBps int) (*models.Payment, error)
	// AttachGatewayReference stores the gateway reference and authorization
	// URL on the payment and moves the order created -> payment_pending.
	AttachGatewayReference(ctx context.Context, payment *models.Payment, reference, authorizationURL string) error
	// Compensate rolls a committed checkout back after a gateway failure:
	// restores every decremented line and soft-deletes the order and payment.
	Compensate(ctx context.Context, order *models.Order, payment *models.Payment) error
}

type gormCheckoutStore struct {
	db *gorm.DB
}

func NewGormCheckoutStore(db *gorm.DB) CheckoutStore {
	return &gormCheckoutStore{db: db}
}

func (s *gormCheckoutStore) ReserveAndCreate(ctx context.Context, order *models.Order, lines []CheckoutLine, taxRateBps int) (*models.Payment, error) {
	var payment *models.Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subTotal := 0
		items := make([]models.OrderItem, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ErrProductNotFound{ProductID: line.ProductID}
				}
				return err
			}

			// Guarded decrement: losing a race for the last unit fails the
			// whole checkout, never a partial order.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_on_hand >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock_on_hand", gorm.Expr("stock_on_hand - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &ErrInsufficientStock{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: line.Quantity,
				}
			}

			subTotal += product.Price * line.Quantity
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
			})
		}

		order.SubTotal = subTotal
		order.Tax = subTotal * taxRateBps / 10000
		order.Total = order.SubTotal + order.ShippingCost + order.Tax
		order.Status = models.OrderStatusCreated
		order.OrderItems = items

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		payment = &models.Payment{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Amount:     order.Total,
			Currency:   order.Currency,
			Status:     models.PaymentStatusPending,
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *gormCheckoutStore) AttachGatewayReference(ctx context.Context, payment *models.Payment, reference, authorizationURL string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"reference":         reference,
				"authorization_url": authorizationURL,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", payment.OrderID, models.OrderStatusCreated).
			Update("status", models.OrderStatusPaymentPending).Error
	})
}

func (s *gormCheckoutStore) Compensate(ctx context.Context, order *models.Order, payment *models.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_on_hand", gorm.Expr("stock_on_hand + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		if err := tx.Model(&models.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"status":     models.PaymentStatusCancelled,
				"deleted_at": now,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":       models.OrderStatusCancelled,
				"cancelled_at": now,
				"deleted_at":   now,
			}).Error
	})
}
