package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a live cart.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Name      string    `json:"name"`
	UnitPrice int       `json:"unit_price"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// Cart is the live cart mirrored into Redis by the cart-sync endpoint.
type Cart struct {
	SessionID  string     `json:"session_id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	Items      []CartItem `json:"items"`
	TotalValue int        `json:"total_value"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AbandonedCart is the durable row the tracker sweeps. is_converted and
// is_abandoned are mutually exclusive end states; once converted the row is
// never touched by a sweep again.
type AbandonedCart struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID   string     `gorm:"type:varchar(128);uniqueIndex;not null" json:"session_id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index" json:"customer_id"`
	ItemsJSON   string     `gorm:"type:jsonb" json:"-"`
	TotalValue  int        `gorm:"not null;default:0" json:"total_value"`
	LastUpdated time.Time  `gorm:"not null;index" json:"last_updated"`
	IsAbandoned bool       `gorm:"not null;default:false" json:"is_abandoned"`
	AbandonedAt *time.Time `json:"abandoned_at,omitempty"`
	IsConverted bool       `gorm:"not null;default:false" json:"is_converted"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
