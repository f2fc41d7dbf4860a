package routes

import (
	"github.com/BrianNzangi/workit-ecommerce-sub007/controllers"
	"github.com/BrianNzangi/workit-ecommerce-sub007/middleware"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Webhook  *controllers.WebhookController
	Order    *controllers.OrderController
	Cart     *controllers.CartController
}

// Register wires every route group. The webhook stays outside customer auth:
// its caller is the gateway, authenticated by signature.
func Register(r *gin.Engine, c *Controllers, jwtSecret, internalToken string) {
	r.POST("/checkout", middleware.AuthMiddleware(), c.Checkout.Checkout)

	r.POST("/payments/webhook", c.Webhook.HandleWebhook)

	payments := r.Group("/payments")
	payments.Use(middleware.AdminAuthMiddleware(jwtSecret))
	payments.GET("/reference/:ref", c.Payment.GetByReference)
	payments.GET("/order/:orderId", c.Payment.GetByOrder)
	payments.GET("/verify/:ref", c.Payment.VerifyWithGateway)

	orders := r.Group("/orders")
	orders.Use(middleware.AdminAuthMiddleware(jwtSecret))
	orders.GET("/:id", c.Order.GetOrder)
	orders.PUT("/:id/status", c.Order.UpdateStatus)

	carts := r.Group("/carts")
	carts.Use(middleware.AuthMiddleware())
	carts.PUT("/:sessionId", c.Cart.SyncCart)
	carts.GET("/:sessionId", c.Cart.GetCart)

	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(internalToken))
	internal.GET("/abandoned-carts/sweep", c.Cart.Sweep)
}
