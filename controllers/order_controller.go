package controllers

import (
	"net/http"

	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderController struct {
	Service *services.OrderService
	Logger  *zap.Logger
}

func NewOrderController(service *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{Service: service, Logger: logger}
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, svcErr := oc.Service.GetOrder(c.Request.Context(), id)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/:id/status. A privileged manual
// transition, constrained by the same transition table the webhook path uses.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, svcErr := oc.Service.UpdateStatus(c.Request.Context(), id, req.Status)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, order)
}
