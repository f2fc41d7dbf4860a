package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"
	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SignatureHeader carries the provider's HMAC over the raw body.
const SignatureHeader = "X-Paystack-Signature"

// WebhookController receives gateway callbacks: verify the signature over
// the raw bytes first, parse second, then short-circuit duplicates before
// handing the event to the reconciler.
type WebhookController struct {
	Gateway    services.PaymentGateway
	Payments   repository.PaymentRepository
	Reconciler *services.ReconcileService
	Logger     *zap.Logger
}

func NewWebhookController(gateway services.PaymentGateway, payments repository.PaymentRepository, reconciler *services.ReconcileService, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		Gateway:    gateway,
		Payments:   payments,
		Reconciler: reconciler,
		Logger:     logger,
	}
}

type webhookEnvelope struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	} `json:"data"`
}

// HandleWebhook handles POST /payments/webhook.
func (wc *WebhookController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	// The body is never parsed before the signature checks out.
	if !wc.Gateway.VerifySignature(body, c.GetHeader(SignatureHeader)) {
		wc.Logger.Warn("webhook signature verification failed", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		wc.Logger.Warn("malformed webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}
	if envelope.Data.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing reference"})
		return
	}

	outcome := normalizeOutcome(envelope.Event, envelope.Data.Status)

	payment, err := wc.Payments.FindByReference(c.Request.Context(), envelope.Data.Reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A reference we never issued; retrying cannot fix it.
			wc.Logger.Warn("webhook for unknown reference, acknowledged",
				zap.String("reference", envelope.Data.Reference),
			)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		wc.Logger.Error("payment lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "temporary failure"})
		return
	}

	// Idempotency pre-check: replayed deliveries of an already-applied
	// outcome ack without touching the reconciler.
	if alreadyApplied(payment.Status, outcome) {
		wc.Logger.Info("duplicate webhook delivery, acknowledged",
			zap.String("reference", envelope.Data.Reference),
			zap.String("status", payment.Status),
		)
		c.JSON(http.StatusOK, gin.H{"status": "already processed"})
		return
	}

	if svcErr := wc.Reconciler.Apply(c.Request.Context(), payment, outcome, body); svcErr != nil {
		// Transient failure: non-2xx makes the provider redeliver.
		respondServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// normalizeOutcome maps the provider's event/status pair onto the internal
// outcome vocabulary.
func normalizeOutcome(event, status string) string {
	switch strings.ToLower(status) {
	case "success", "succeeded":
		return services.OutcomeSuccess
	case "failed", "declined", "abandoned":
		return services.OutcomeFailed
	}
	switch {
	case strings.HasSuffix(event, "success"):
		return services.OutcomeSuccess
	case strings.HasSuffix(event, "failed"):
		return services.OutcomeFailed
	}
	return strings.ToLower(status)
}

func alreadyApplied(paymentStatus, outcome string) bool {
	switch outcome {
	case services.OutcomeSuccess:
		return paymentStatus == models.PaymentStatusSettled
	case services.OutcomeFailed:
		return paymentStatus == models.PaymentStatusDeclined
	}
	return false
}
