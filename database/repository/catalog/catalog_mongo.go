package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"barberbook/database"
	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services *mongo.Collection
	barbers  *mongo.Collection
	settings *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	return &MongoCatalogRepo{
		services: database.Collection("services"),
		barbers:  database.Collection("barbers"),
		settings: database.Collection("settings"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetServices retrieves the full service catalog.
func (r *MongoCatalogRepo) GetServices() ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, s)
	}
	return services, nil
}

// SaveService upserts a service document (merge semantics).
func (r *MongoCatalogRepo) SaveService(s *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": s.ID}
	update := bson.M{"$set": s}
	opts := options.Update().SetUpsert(true)

	if _, err := r.services.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save service %s: %w", s.ID, err)
	}
	return nil
}

// DeleteService removes a service document by its ID.
func (r *MongoCatalogRepo) DeleteService(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.services.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("service with id %s not found", id)
	}
	return nil
}

// GetBarbers retrieves the barber roster.
func (r *MongoCatalogRepo) GetBarbers() ([]models.Barber, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.barbers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve barbers: %w", err)
	}
	defer cursor.Close(ctx)

	var barbers []models.Barber
	for cursor.Next(ctx) {
		var b models.Barber
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode barber: %w", err)
		}
		barbers = append(barbers, b)
	}
	return barbers, nil
}

// SaveBarber upserts a barber document.
func (r *MongoCatalogRepo) SaveBarber(b *models.Barber) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": b.ID}
	update := bson.M{"$set": b}
	opts := options.Update().SetUpsert(true)

	if _, err := r.barbers.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save barber %s: %w", b.ID, err)
	}
	return nil
}

// GetShopSettings retrieves the shop working-hours document.
func (r *MongoCatalogRepo) GetShopSettings() (*models.ShopSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var settings models.ShopSettings
	if err := r.settings.FindOne(ctx, bson.M{"id": "shop"}).Decode(&settings); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shop settings: %w", err)
	}
	return &settings, nil
}

// SaveShopSettings writes the shop working-hours document.
func (r *MongoCatalogRepo) SaveShopSettings(s *models.ShopSettings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": "shop"}
	update := bson.M{"$set": bson.M{
		"open":        s.Open,
		"close":       s.Close,
		"lunch_start": s.LunchStart,
		"lunch_end":   s.LunchEnd,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.settings.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save shop settings: %w", err)
	}
	return nil
}
