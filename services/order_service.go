package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService serves order reads and the privileged manual status override.
type OrderService struct {
	repo   repository.OrderRepository
	logger *zap.Logger
}

func NewOrderService(repo repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("order not found")
		}
		return nil, NewInternalError("failed to load order", err)
	}
	return order, nil
}

// UpdateStatus applies an admin-requested transition under the same
// transition table the webhook path uses. The conditional write is retried
// once when a concurrent transition wins the race, then surfaced as a
// conflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, target string) (*models.Order, *ServiceError) {
	for attempt := 0; attempt < 2; attempt++ {
		order, svcErr := s.GetOrder(ctx, id)
		if svcErr != nil {
			return nil, svcErr
		}

		if !models.CanTransitionOrder(order.Status, target) {
			return nil, NewIllegalTransitionError(
				fmt.Sprintf("cannot transition order from %q to %q", order.Status, target))
		}

		rows, err := s.repo.UpdateStatusIf(ctx, id, order.Status, target)
		if err != nil {
			return nil, NewInternalError("failed to update order status", err)
		}
		if rows > 0 {
			s.logger.Info("order status updated",
				zap.String("order_id", id.String()),
				zap.String("from", order.Status),
				zap.String("to", target),
			)
			order.Status = target
			return order, nil
		}

		s.logger.Warn("order status changed concurrently, retrying",
			zap.String("order_id", id.String()),
			zap.String("expected", order.Status),
		)
	}
	return nil, NewConflictError("order status changed concurrently, please retry")
}
