package appointment

import (
	"context"

	"barberbook/models"
)

// CreateRequest carries the fields of a new booking. Names and price are
// denormalized snapshots taken at booking time.
type CreateRequest struct {
	ClientID     string  `json:"client_id"`
	ClientName   string  `json:"client_name"`
	BarberID     string  `json:"barber_id"`
	BarberName   string  `json:"barber_name"`
	ServiceID    string  `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Price        float64 `json:"price"`
	ClientAvatar string  `json:"client_avatar,omitempty"`
	BarberAvatar string  `json:"barber_avatar,omitempty"`
}

// Notifier is the slice of the notification dispatcher the state machine
// needs. Sends are best-effort: failures are logged by the dispatcher and
// never surface here.
type Notifier interface {
	SendBestEffort(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string)
}

// ReminderScheduler schedules a client reminder ahead of a confirmed slot.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// AppointmentService owns the appointment lifecycle: creation in pending,
// transitions along the legal edges, and the notification side effect of
// each.
type AppointmentService interface {
	// Create validates req, persists a new pending record and notifies the
	// admin feed. Returns ValidationError on missing fields and
	// SlotTakenError when double-booking prevention is on and the slot is
	// taken.
	Create(ctx context.Context, req CreateRequest) (*models.Appointment, error)
	// Transition moves an appointment to target along a legal edge and
	// notifies the record's client. Returns NotFoundError or
	// InvalidTransitionError; the notification is best-effort and never
	// rolls back the status change.
	Transition(ctx context.Context, id string, target models.AppointmentStatus) (*models.Appointment, error)
	// ListFor returns the appointments visible to user: admins see the
	// whole agenda, clients only their own records.
	ListFor(user models.User) ([]models.Appointment, error)
	// Subscribe opens a live view of the appointments visible to user.
	// The caller owns the handle and must Close it on every exit path.
	Subscribe(ctx context.Context, user models.User) (*Feed, error)
}
