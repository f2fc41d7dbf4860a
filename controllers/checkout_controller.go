package controllers

import (
	"net/http"

	"github.com/BrianNzangi/workit-ecommerce-sub007/middleware"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Service *services.CheckoutService
	Logger  *zap.Logger
}

func NewCheckoutController(service *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Service: service, Logger: logger}
}

// Checkout handles POST /checkout.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}

	result, svcErr := cc.Service.Checkout(c.Request.Context(), customerID, &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}
