package catalog

import (
	"context"

	"barberbook/models"
)

// CatalogService exposes the service catalog, the barber roster and the
// shop settings. Empty collections are seeded with defaults on first read.
type CatalogService interface {
	GetServices(ctx context.Context) ([]models.Service, error)
	SaveService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id string) error

	GetBarbers(ctx context.Context) ([]models.Barber, error)

	GetShopSettings(ctx context.Context) (*models.ShopSettings, error)
	SaveShopSettings(ctx context.Context, s *models.ShopSettings) error
}
