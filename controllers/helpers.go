package controllers

import (
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError writes a ServiceError as the JSON error body the
// storefront expects.
func respondServiceError(c *gin.Context, err *services.ServiceError) {
	c.JSON(err.StatusCode, gin.H{"error": err.Message, "kind": err.Kind})
}
