package controllers

import (
	"net/http"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartController struct {
	Tracker *services.CartTracker
	Logger  *zap.Logger
}

func NewCartController(tracker *services.CartTracker, logger *zap.Logger) *CartController {
	return &CartController{Tracker: tracker, Logger: logger}
}

type syncCartRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	Items      []models.CartItem `json:"items" binding:"required,dive"`
}

// SyncCart handles PUT /carts/:sessionId, the cart-sync write on every cart
// mutation.
func (cc *CartController) SyncCart(c *gin.Context) {
	var req syncCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := &models.Cart{
		SessionID:  c.Param("sessionId"),
		CustomerID: req.CustomerID,
		Items:      req.Items,
	}
	if svcErr := cc.Tracker.Sync(c.Request.Context(), cart); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetCart handles GET /carts/:sessionId from the Redis mirror.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, svcErr := cc.Tracker.GetLive(c.Request.Context(), c.Param("sessionId"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Sweep handles GET /internal/abandoned-carts/sweep, triggered on a fixed
// interval by an external scheduler.
func (cc *CartController) Sweep(c *gin.Context) {
	count, svcErr := cc.Tracker.Sweep(c.Request.Context())
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"abandoned": count})
}
