package notificationRepo

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

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo creates a new instance of NotificationRepository using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	coll := database.Collection("notifications")
	repo := &MongoNotificationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByRecipient retrieves every notification addressed to recipientID.
func (r *MongoNotificationRepo) GetByRecipient(recipientID string) ([]models.Notification, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"recipient_id": recipientID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifs []models.Notification
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, nil
}

// Create appends a new notification document.
func (r *MongoNotificationRepo) Create(n *models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// MarkRead sets read=true on one record owned by recipientID. The filter
// carries the recipient scope, so one session cannot flip another's record,
// and excludes already-read records, so a repeat call writes nothing.
func (r *MongoNotificationRepo) MarkRead(recipientID, id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "recipient_id": recipientID, "read": false}
	update := bson.M{"$set": bson.M{"read": true}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark notification %s as read: %w", id, err)
	}
	return nil
}

// MarkManyRead batches read=true over the given ids in one bulk write.
func (r *MongoNotificationRepo) MarkManyRead(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(ids))
	for _, id := range ids {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"id": id, "read": false}).
			SetUpdate(bson.M{"$set": bson.M{"read": true}}))
	}

	result, err := r.coll.BulkWrite(ctx, writes)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-mark notifications as read: %w", err)
	}
	return result.ModifiedCount, nil
}

// Watch opens a change stream scoped to recipientID and forwards one event
// per underlying change. Consumers re-query the full set on every event.
func (r *MongoNotificationRepo) Watch(ctx context.Context, recipientID string) (<-chan struct{}, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"fullDocument.recipient_id": recipientID,
		}}},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open notification change stream: %w", err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case events <- struct{}{}:
			case <-ctx.Done():
				return
			default:
				// Coalesce: the consumer re-queries the full set anyway.
			}
		}
	}()
	return events, nil
}
