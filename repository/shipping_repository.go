package repository

import (
	"context"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingRateRepository reads the configured delivery pricing tables.
type ShippingRateRepository interface {
	FindZoneByCounty(ctx context.Context, county string) (*models.ShippingZone, error)
	// FindCity looks up a town within a zone by its normalized name.
	FindCity(ctx context.Context, zoneID uuid.UUID, name string) (*models.ShippingCity, error)
}

type gormShippingRateRepo struct {
	db *gorm.DB
}

func NewGormShippingRateRepo(db *gorm.DB) ShippingRateRepository {
	return &gormShippingRateRepo{db: db}
}

func (r *gormShippingRateRepo) FindZoneByCounty(ctx context.Context, county string) (*models.ShippingZone, error) {
	var zone models.ShippingZone
	if err := r.db.WithContext(ctx).Where("county = ?", county).First(&zone).Error; err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *gormShippingRateRepo) FindCity(ctx context.Context, zoneID uuid.UUID, name string) (*models.ShippingCity, error) {
	var city models.ShippingCity
	if err := r.db.WithContext(ctx).
		Where("zone_id = ? AND name = ?", zoneID, name).
		First(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}
