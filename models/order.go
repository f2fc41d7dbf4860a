package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status constants.
const (
	OrderStatusCreated           = "created"
	OrderStatusPaymentPending    = "payment_pending"
	OrderStatusPaymentAuthorized = "payment_authorized"
	OrderStatusPaymentSettled    = "payment_settled"
	OrderStatusShipped           = "shipped"
	OrderStatusDelivered         = "delivered"
	OrderStatusCancelled         = "cancelled"
)

// Address is a delivery or billing address, stored on the order as JSON.
type Address struct {
	Name   string `json:"name" binding:"required"`
	Line1  string `json:"line1" binding:"required"`
	Line2  string `json:"line2,omitempty"`
	Town   string `json:"town" binding:"required"`
	County string `json:"county" binding:"required"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
}

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code       string    `gorm:"uniqueIndex;not null" json:"code"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status     string    `gorm:"type:varchar(24);not null;default:'created'" json:"status"`
	Currency   string    `gorm:"type:varchar(10);not null" json:"currency"`

	// All amounts are minor units, recomputed server-side at checkout.
	SubTotal     int `gorm:"not null" json:"sub_total"`
	ShippingCost int `gorm:"not null" json:"shipping_cost"`
	Tax          int `gorm:"not null" json:"tax"`
	Total        int `gorm:"not null" json:"total"`

	ShippingMethod      string `gorm:"type:varchar(16);not null" json:"shipping_method"`
	ShippingAddressJSON string `gorm:"type:jsonb" json:"-"`
	BillingAddressJSON  string `gorm:"type:jsonb" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// OrderItem is a line snapshot frozen at checkout time; later catalog price
// changes never touch it.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name      string    `gorm:"type:varchar(256);not null" json:"name"`
	UnitPrice int       `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}
