package profileRepo

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

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	users    *mongo.Collection
	settings *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	repo := &MongoProfileRepo{
		users:    database.Collection("users"),
		settings: database.Collection("settings"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.users.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a profile document by uid.
func (r *MongoProfileRepo) GetByID(id string) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.UserProfile
	if err := r.users.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile with id %s: %w", id, err)
	}
	return &profile, nil
}

// Upsert writes a full profile document, creating it if absent.
func (r *MongoProfileRepo) Upsert(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	filter := bson.M{"id": profile.ID}
	update := bson.M{"$set": profile}
	opts := options.Update().SetUpsert(true)

	if _, err := r.users.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert profile with id %s: %w", profile.ID, err)
	}
	return nil
}

// Merge applies a partial update to an existing profile document.
func (r *MongoProfileRepo) Merge(id string, updates map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}

	result, err := r.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update profile with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile with id %s not found", id)
	}
	return nil
}

// ListClients retrieves every client-role profile, ordered by name.
func (r *MongoProfileRepo) ListClients() ([]models.UserProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.users.Find(ctx, bson.M{"role": models.RoleClient}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve client profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.UserProfile
	for cursor.Next(ctx) {
		var p models.UserProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode client profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// IncrementUserCounter bumps totalUsers on the settings/userCounter document.
func (r *MongoProfileRepo) IncrementUserCounter() error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": "userCounter"}
	update := bson.M{"$inc": bson.M{"total_users": 1}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.settings.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to increment user counter: %w", err)
	}
	return nil
}
