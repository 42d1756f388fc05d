package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	catalogRepo "barberbook/database/repository/catalog"
	"barberbook/models"
	"barberbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	servicesCacheKey = "catalog:services"
	servicesCacheTTL = 5 * time.Minute
)

// DefaultCatalogService is the production implementation of CatalogService.
// Cache is optional; when nil, every read goes to the store.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache *redis.Client
}

// GetServices returns the catalog, seeding the defaults when it is empty.
// The read path is cached; writes invalidate.
func (s *DefaultCatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, servicesCacheKey).Result(); err == nil {
			var services []models.Service
			if err := json.Unmarshal([]byte(cached), &services); err == nil {
				return services, nil
			}
		}
	}

	services, err := s.Repo.GetServices()
	if err != nil {
		return nil, fmt.Errorf("failed to load service catalog: %w", err)
	}

	if len(services) == 0 {
		for i := range defaultServices {
			svc := defaultServices[i]
			if err := s.Repo.SaveService(&svc); err != nil {
				return nil, fmt.Errorf("failed to seed service catalog: %w", err)
			}
		}
		services = append(services, defaultServices...)
	}

	s.cacheServices(ctx, services)
	return services, nil
}

func (s *DefaultCatalogService) cacheServices(ctx context.Context, services []models.Service) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, servicesCacheKey, data, servicesCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache service catalog", zap.Error(err))
	}
}

func (s *DefaultCatalogService) invalidateServices(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, servicesCacheKey).Err(); err != nil {
		utils.GetLogger().Debug("failed to invalidate service catalog cache", zap.Error(err))
	}
}

// SaveService upserts a catalog entry and drops the cache.
func (s *DefaultCatalogService) SaveService(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" || svc.Name == "" {
		return fmt.Errorf("service id and name are required")
	}
	if err := s.Repo.SaveService(svc); err != nil {
		return err
	}
	s.invalidateServices(ctx)
	return nil
}

// DeleteService removes a catalog entry and drops the cache.
func (s *DefaultCatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.Repo.DeleteService(id); err != nil {
		return err
	}
	s.invalidateServices(ctx)
	return nil
}

// GetBarbers returns the roster, seeding the defaults when it is empty.
func (s *DefaultCatalogService) GetBarbers(ctx context.Context) ([]models.Barber, error) {
	barbers, err := s.Repo.GetBarbers()
	if err != nil {
		return nil, fmt.Errorf("failed to load barber roster: %w", err)
	}

	if len(barbers) == 0 {
		for i := range defaultBarbers {
			b := defaultBarbers[i]
			if err := s.Repo.SaveBarber(&b); err != nil {
				return nil, fmt.Errorf("failed to seed barber roster: %w", err)
			}
		}
		barbers = append(barbers, defaultBarbers...)
	}
	return barbers, nil
}

// GetShopSettings returns the working hours, writing the defaults when no
// settings document exists yet.
func (s *DefaultCatalogService) GetShopSettings(ctx context.Context) (*models.ShopSettings, error) {
	settings, err := s.Repo.GetShopSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load shop settings: %w", err)
	}
	if settings == nil {
		defaults := defaultShopSettings
		if err := s.Repo.SaveShopSettings(&defaults); err != nil {
			return nil, fmt.Errorf("failed to seed shop settings: %w", err)
		}
		return &defaults, nil
	}
	return settings, nil
}

// SaveShopSettings writes the working hours.
func (s *DefaultCatalogService) SaveShopSettings(ctx context.Context, settings *models.ShopSettings) error {
	return s.Repo.SaveShopSettings(settings)
}
