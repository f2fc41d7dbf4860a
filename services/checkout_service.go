package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutItemRequest is one requested line. Prices are never accepted from
// the client.
type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	Email           string                `json:"email" binding:"required,email"`
	ShippingAddress models.Address        `json:"shipping_address" binding:"required"`
	BillingAddress  *models.Address       `json:"billing_address"`
	ShippingMethod  string                `json:"shipping_method" binding:"required"`
}

type CheckoutResult struct {
	Order   *models.Order   `json:"order"`
	Payment *models.Payment `json:"payment"`
}

// CheckoutService turns a validated cart into a durable order plus a pending
// gateway transaction.
type CheckoutService struct {
	store    repository.CheckoutStore
	shipping ShippingResolver
	gateway  PaymentGateway
	currency string
	taxBps   int
	logger   *zap.Logger
}

func NewCheckoutService(store repository.CheckoutStore, shipping ShippingResolver, gateway PaymentGateway, currency string, taxBps int, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:    store,
		shipping: shipping,
		gateway:  gateway,
		currency: currency,
		taxBps:   taxBps,
		logger:   logger,
	}
}

// Checkout re-prices the cart, reserves stock all-or-nothing, persists the
// order and payment, and initializes the gateway transaction. A gateway
// failure after commit triggers a compensating rollback so the customer is
// never left with decremented stock and no valid checkout artifact.
func (s *CheckoutService) Checkout(ctx context.Context, customerID uuid.UUID, req *CheckoutRequest) (*CheckoutResult, *ServiceError) {
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, NewValidationError("item quantity must be greater than zero")
		}
	}

	shippingCost, svcErr := s.shipping.ResolveCost(ctx, req.ShippingAddress.County, req.ShippingAddress.Town, req.ShippingMethod)
	if svcErr != nil {
		return nil, svcErr
	}

	shippingJSON, _ := json.Marshal(req.ShippingAddress)
	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}
	billingJSON, _ := json.Marshal(billing)

	order := &models.Order{
		Code:                generateOrderCode(),
		CustomerID:          customerID,
		Currency:            s.currency,
		ShippingCost:        shippingCost,
		ShippingMethod:      req.ShippingMethod,
		ShippingAddressJSON: string(shippingJSON),
		BillingAddressJSON:  string(billingJSON),
	}

	lines := make([]repository.CheckoutLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, repository.CheckoutLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	payment, err := s.store.ReserveAndCreate(ctx, order, lines, s.taxBps)
	if err != nil {
		var stockErr *repository.ErrInsufficientStock
		if errors.As(err, &stockErr) {
			return nil, NewStockError(stockErr.Error())
		}
		var notFound *repository.ErrProductNotFound
		if errors.As(err, &notFound) {
			return nil, NewValidationError(notFound.Error())
		}
		s.logger.Error("checkout transaction failed", zap.Error(err))
		return nil, NewInternalError("failed to create order", err)
	}

	init, err := s.gateway.Initialize(ctx, order.Code, payment.Amount, s.currency, req.Email)
	if err != nil {
		s.compensate(ctx, order, payment)
		s.logger.Error("gateway initialize failed, checkout compensated",
			zap.String("order_code", order.Code),
			zap.Error(err),
		)
		return nil, NewGatewayError("payment gateway unavailable", err)
	}

	if err := s.store.AttachGatewayReference(ctx, payment, init.Reference, init.AuthorizationURL); err != nil {
		s.compensate(ctx, order, payment)
		s.logger.Error("failed to store gateway reference, checkout compensated",
			zap.String("order_code", order.Code),
			zap.String("reference", init.Reference),
			zap.Error(err),
		)
		return nil, NewInternalError("failed to finalize checkout", err)
	}

	order.Status = models.OrderStatusPaymentPending
	payment.Reference = &init.Reference
	payment.AuthorizationURL = &init.AuthorizationURL

	s.logger.Info("checkout completed",
		zap.String("order_code", order.Code),
		zap.String("reference", init.Reference),
		zap.Int("total", order.Total),
	)

	return &CheckoutResult{Order: order, Payment: payment}, nil
}

func (s *CheckoutService) compensate(ctx context.Context, order *models.Order, payment *models.Payment) {
	if err := s.store.Compensate(ctx, order, payment); err != nil {
		// Stock stays reserved until manual review; this must never be silent.
		s.logger.Error("checkout compensation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

func generateOrderCode() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ORD-%s", strings.ToUpper(hex.EncodeToString(b)))
}
