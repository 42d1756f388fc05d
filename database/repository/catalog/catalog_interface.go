package catalogRepo

import "barberbook/models"

// CatalogRepository defines data access for the service catalog, the barber
// roster and the shop settings document.
type CatalogRepository interface {
	GetServices() ([]models.Service, error)
	// SaveService writes a service with merge semantics (create or update).
	SaveService(s *models.Service) error
	DeleteService(id string) error

	GetBarbers() ([]models.Barber, error)
	SaveBarber(b *models.Barber) error

	// GetShopSettings returns (nil, nil) when no settings document exists.
	GetShopSettings() (*models.ShopSettings, error)
	SaveShopSettings(s *models.ShopSettings) error
}
