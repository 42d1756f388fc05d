package appointmentRepo

import (
	"context"

	"barberbook/models"
)

// AppointmentRepository defines methods for appointment data access.
// Appointments are never deleted; cancellation is a status change.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID. Returns
	// (nil, nil) when no record matches.
	GetByID(id string) (*models.Appointment, error)
	// GetAll retrieves every appointment (admin agenda view).
	GetAll() ([]models.Appointment, error)
	// GetByClient retrieves the appointments owned by a client.
	GetByClient(clientID string) ([]models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// UpdateStatus persists a status change for an existing record.
	UpdateStatus(id string, status models.AppointmentStatus) error
	// FindConflict reports whether a non-cancelled appointment already
	// occupies the given barber/date/time slot.
	FindConflict(barberID, date, timeOfDay string) (bool, error)
	// Watch emits an event each time the appointment set visible to
	// clientID changes. An empty clientID watches every record. The
	// returned channel closes when ctx is cancelled.
	Watch(ctx context.Context, clientID string) (<-chan struct{}, error)
}
