package controllers

import (
	"errors"
	"net/http"

	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentController serves the read-only payment lookups used by support
// tooling, plus a manual gateway verification for reconciliation work.
type PaymentController struct {
	Repo    repository.PaymentRepository
	Gateway services.PaymentGateway
	Logger  *zap.Logger
}

func NewPaymentController(repo repository.PaymentRepository, gateway services.PaymentGateway, logger *zap.Logger) *PaymentController {
	return &PaymentController{Repo: repo, Gateway: gateway, Logger: logger}
}

// GetByReference handles GET /payments/reference/:ref.
func (pc *PaymentController) GetByReference(c *gin.Context) {
	payment, err := pc.Repo.FindByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		pc.Logger.Error("payment lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payment"})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetByOrder handles GET /payments/order/:orderId. An order can carry
// several attempts; all are returned, newest first.
func (pc *PaymentController) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	payments, err := pc.Repo.FindByOrderID(c.Request.Context(), orderID)
	if err != nil {
		pc.Logger.Error("payment lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load payments"})
		return
	}
	if len(payments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no payments for order"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// VerifyWithGateway handles GET /payments/verify/:ref. It asks the provider
// directly for a transaction's status, independent of webhooks.
func (pc *PaymentController) VerifyWithGateway(c *gin.Context) {
	ref := c.Param("ref")
	status, err := pc.Gateway.Verify(c.Request.Context(), ref)
	if err != nil {
		pc.Logger.Error("gateway verify failed", zap.String("reference", ref), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "gateway verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": ref, "provider_status": status})
}
