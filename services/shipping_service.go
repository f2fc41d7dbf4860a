package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BrianNzangi/workit-ecommerce-sub007/models"
	"github.com/BrianNzangi/workit-ecommerce-sub007/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShippingResolver resolves the delivery price for a county/town/method.
type ShippingResolver interface {
	ResolveCost(ctx context.Context, county, town, method string) (int, *ServiceError)
}

type shippingService struct {
	repo   repository.ShippingRateRepository
	logger *zap.Logger
}

func NewShippingService(repo repository.ShippingRateRepository, logger *zap.Logger) ShippingResolver {
	return &shippingService{repo: repo, logger: logger}
}

// ResolveCost looks up the configured zone by county, the town inside it by
// normalized name, and returns the method's price. Shipping price is a
// financial concern: an unconfigured zone, town or express option is a hard
// error, never a silent fallback to standard.
func (s *shippingService) ResolveCost(ctx context.Context, county, town, method string) (int, *ServiceError) {
	if method != models.ShippingMethodStandard && method != models.ShippingMethodExpress {
		return 0, NewValidationError(fmt.Sprintf("unknown shipping method %q", method))
	}

	zone, err := s.repo.FindZoneByCounty(ctx, strings.TrimSpace(county))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, NewValidationError(fmt.Sprintf("no shipping zone configured for county %q", county))
		}
		return 0, NewInternalError("failed to resolve shipping zone", err)
	}

	normalized := strings.ToLower(strings.TrimSpace(town))
	city, err := s.repo.FindCity(ctx, zone.ID, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, NewValidationError(fmt.Sprintf("no shipping rate configured for %q in %q", town, county))
		}
		return 0, NewInternalError("failed to resolve shipping rate", err)
	}

	if method == models.ShippingMethodExpress {
		if city.ExpressPrice == nil {
			return 0, NewValidationError(fmt.Sprintf("express delivery not available for %q", town))
		}
		return *city.ExpressPrice, nil
	}
	return city.StandardPrice, nil
}
