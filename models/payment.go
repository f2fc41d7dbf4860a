package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status constants.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusSettled    = "settled"
	PaymentStatusDeclined   = "declined"
	PaymentStatusCancelled  = "cancelled"
	PaymentStatusError      = "error"
)

// Payment is one gateway transaction attempt tied to an order. An order may
// accumulate attempts across retries; at most one reaches settled.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount     int       `gorm:"not null" json:"amount"` // minor units
	Currency   string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`

	// Reference is the gateway transaction reference: the natural
	// idempotency key for webhook deliveries.
	Reference        *string `gorm:"uniqueIndex" json:"reference,omitempty"`
	AuthorizationURL *string `gorm:"type:varchar(1024)" json:"authorization_url,omitempty"`

	// GatewayPayload retains the raw provider event for audit and replay
	// investigation.
	GatewayPayload *string `gorm:"type:jsonb" json:"-"`

	SettledAt  *time.Time     `json:"settled_at,omitempty"`
	DeclinedAt *time.Time     `json:"declined_at,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
