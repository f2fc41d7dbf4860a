package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product carries the columns checkout needs: the current price and the
// on-hand stock. Catalog CRUD is owned by the storefront admin surface.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(256);not null" json:"name"`
	Price       int       `gorm:"not null" json:"price"` // minor units
	StockOnHand int       `gorm:"not null;default:0" json:"stock_on_hand"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
