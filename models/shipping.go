package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipping method constants.
const (
	ShippingMethodStandard = "standard"
	ShippingMethodExpress  = "express"
)

// ShippingZone groups towns under a county for delivery pricing.
type ShippingZone struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	County    string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"county"`
	Cities    []ShippingCity `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"cities"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ShippingCity is one town inside a zone. Name is stored normalized
// (lowercase, trimmed). ExpressPrice is nil where express delivery is not
// offered; that is a hard error at resolution time, never a fallback.
type ShippingCity struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ZoneID        uuid.UUID `gorm:"type:uuid;not null;index:idx_zone_city,unique" json:"zone_id"`
	Name          string    `gorm:"type:varchar(128);not null;index:idx_zone_city,unique" json:"name"`
	StandardPrice int       `gorm:"not null" json:"standard_price"`
	ExpressPrice  *int      `json:"express_price,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
