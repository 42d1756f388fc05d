package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "barber_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// GetAll retrieves every appointment.
func (r *MongoAppointmentRepo) GetAll() ([]models.Appointment, error) {
	return r.find(bson.M{})
}

// GetByClient retrieves the appointments owned by a client.
func (r *MongoAppointmentRepo) GetByClient(clientID string) ([]models.Appointment, error) {
	return r.find(bson.M{"client_id": clientID})
}

func (r *MongoAppointmentRepo) find(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// UpdateStatus persists a status change for an existing document.
func (r *MongoAppointmentRepo) UpdateStatus(id string, status models.AppointmentStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// FindConflict reports whether a non-cancelled appointment already occupies
// the given barber/date/time slot.
func (r *MongoAppointmentRepo) FindConflict(barberID, date, timeOfDay string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"barber_id": barberID,
		"date":      date,
		"time":      timeOfDay,
		"status":    bson.M{"$ne": models.StatusCancelled},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check slot conflict: %w", err)
	}
	return count > 0, nil
}

// Watch opens a change stream scoped to clientID and forwards one event per
// underlying change. The channel closes when ctx is cancelled or the stream
// dies; consumers re-query the full set on every event.
func (r *MongoAppointmentRepo) Watch(ctx context.Context, clientID string) (<-chan struct{}, error) {
	pipeline := mongo.Pipeline{}
	if clientID != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"fullDocument.client_id": clientID,
		}}})
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open appointment change stream: %w", err)
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
				// An event is already pending; the consumer re-queries
				// the full set, so coalescing is safe.
			}
		}
	}()
	return events, nil
}
