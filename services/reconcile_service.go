package services

import (
	"context"
	"encoding/json"
	"time"

	awspkg "github.com/BrianNzangi/workit-ecommerce-sub007/pkg/aws"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"

	"go.uber.org/zap"
)

// Webhook outcomes after provider-status normalization.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// ReconcileService applies a verified gateway event to payment, order and
// cart state under the shared transition table.
type ReconcileService struct {
	store     repository.ReconcileStore
	sns       awspkg.SNSPublisher
	topicArn  string
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewReconcileService(store repository.ReconcileStore, orderRepo repository.OrderRepository, sns awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{
		store:     store,
		sns:       sns,
		topicArn:  topicArn,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// Apply reconciles one event against the given payment. Events whose implied
// transition is not legal from the current state are logged and not applied;
// the caller still acks them so the provider stops retrying. Only transient
// store failures return an error.
func (s *ReconcileService) Apply(ctx context.Context, payment *models.Payment, outcome string, rawPayload []byte) *ServiceError {
	target := ""
	switch outcome {
	case OutcomeSuccess:
		target = models.PaymentStatusSettled
	case OutcomeFailed:
		target = models.PaymentStatusDeclined
	default:
		s.logger.Warn("unrecognized webhook outcome, ignored",
			zap.String("outcome", outcome),
			zap.String("payment_id", payment.ID.String()),
		)
		return nil
	}

	if !models.CanTransitionPayment(payment.Status, target) {
		// e.g. a success event arriving after the payment was declined.
		s.logger.Warn("illegal payment transition, event not applied; flagged for manual review",
			zap.String("payment_id", payment.ID.String()),
			zap.String("from", payment.Status),
			zap.String("to", target),
		)
		return nil
	}

	switch outcome {
	case OutcomeSuccess:
		applied, err := s.store.ApplySettlement(ctx, payment, string(rawPayload))
		if err != nil {
			s.logger.Error("settlement write failed", zap.Error(err))
			return NewInternalError("failed to apply settlement", err)
		}
		if !applied {
			s.logger.Info("settlement already processed or superseded",
				zap.String("payment_id", payment.ID.String()),
			)
			return nil
		}
		s.publishEvent(ctx, payment, "payment_settled")

	case OutcomeFailed:
		applied, err := s.store.ApplyDecline(ctx, payment, string(rawPayload))
		if err != nil {
			s.logger.Error("decline write failed", zap.Error(err))
			return NewInternalError("failed to apply decline", err)
		}
		if !applied {
			s.logger.Info("decline already processed or superseded",
				zap.String("payment_id", payment.ID.String()),
			)
			return nil
		}
		// The order is left as-is: the customer may retry payment.
		s.publishEvent(ctx, payment, "payment_declined")
	}

	return nil
}

// publishEvent publishes a payment event to SNS, best-effort: a publish
// failure never fails the reconciliation that already committed.
func (s *ReconcileService) publishEvent(ctx context.Context, payment *models.Payment, eventType string) {
	if s.sns == nil || s.topicArn == "" {
		return
	}

	orderCode := ""
	if order, err := s.orderRepo.FindByID(ctx, payment.OrderID); err == nil {
		orderCode = order.Code
	}

	reference := ""
	if payment.Reference != nil {
		reference = *payment.Reference
	}

	payload, _ := json.Marshal(models.PaymentEvent{
		Type:      eventType,
		OrderID:   payment.OrderID.String(),
		OrderCode: orderCode,
		UserID:    payment.CustomerID.String(),
		PaymentID: payment.ID.String(),
		Reference: reference,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Timestamp: time.Now().UTC(),
	})

	if err := s.sns.Publish(ctx, s.topicArn, payload); err != nil {
		s.logger.Error("failed to publish payment event to SNS",
			zap.String("event_type", eventType),
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("payment event published",
		zap.String("event_type", eventType),
		zap.String("payment_id", payment.ID.String()),
	)
}
