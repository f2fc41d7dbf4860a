package main

import (
	"context"
	"log"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/config"
	"github.com/BrianNzangi/workit-ecommerce-sub007/controllers"
	"github.com/BrianNzangi/workit-ecommerce-sub007/database"
	"github.com/BrianNzangi/workit-ecommerce-sub007/middleware"
	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	awspkg "github.com/BrianNzangi/workit-ecommerce-sub007/pkg/aws"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"
	"github.com/BrianNzangi/workit-ecommerce-sub007/routes"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Storefront] failed to load config:", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("[Storefront] failed to initialize logger:", err)
	}
	defer logger.Sync()

	db, err := database.ConnectPostgres(cfg, logger,
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.AbandonedCart{},
		&models.ShippingZone{},
		&models.ShippingCity{},
	)
	if err != nil {
		logger.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer database.Close(db)

	redisClient, err := database.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	// SNS is best-effort plumbing; boot continues without it.
	var snsPublisher awspkg.SNSPublisher
	if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err != nil {
		logger.Warn("AWS config unavailable, payment events disabled", zap.Error(err))
	} else {
		snsPublisher = awspkg.NewSNSClient(awsCfg)
	}

	paymentRepo := repository.NewGormPaymentRepo(db)
	orderRepo := repository.NewGormOrderRepo(db)
	cartRepo := repository.NewGormCartRepo(db)
	shippingRepo := repository.NewGormShippingRateRepo(db)
	checkoutStore := repository.NewGormCheckoutStore(db)
	reconcileStore := repository.NewGormReconcileStore(db)
	liveCartRepo := repository.NewLiveCartRepository(redisClient, cfg.CartTTL)

	gateway := services.NewPaystackClient(cfg.PaystackSecretKey, cfg.PaystackWebhookKey, cfg.PaystackBaseURL, cfg.GatewayTimeout)
	shippingSvc := services.NewShippingService(shippingRepo, logger)
	checkoutSvc := services.NewCheckoutService(checkoutStore, shippingSvc, gateway, cfg.Currency, cfg.TaxRateBps, logger)
	reconcileSvc := services.NewReconcileService(reconcileStore, orderRepo, snsPublisher, cfg.PaymentSNSTopicARN, logger)
	orderSvc := services.NewOrderService(orderRepo, logger)
	cartTracker := services.NewCartTracker(cartRepo, liveCartRepo, cfg.AbandonThreshold, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.NewRateLimiter(rate.Limit(50), 100, 10*time.Minute).Middleware())

	routes.Register(r, &routes.Controllers{
		Checkout: controllers.NewCheckoutController(checkoutSvc, logger),
		Payment:  controllers.NewPaymentController(paymentRepo, gateway, logger),
		Webhook:  controllers.NewWebhookController(gateway, paymentRepo, reconcileSvc, logger),
		Order:    controllers.NewOrderController(orderSvc, logger),
		Cart:     controllers.NewCartController(cartTracker, logger),
	}, cfg.JWTSecret, cfg.InternalAPIToken)

	logger.Info("storefront backend running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
