package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment record.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents one scheduled service visit. Records are never
// physically deleted; cancellation is a status.
type Appointment struct {
	ID           string            `bson:"id" json:"id"`
	ClientID     string            `bson:"client_id" json:"client_id"`     // Owning identity, set at creation, never reassigned
	ClientName   string            `bson:"client_name" json:"client_name"` // Denormalized snapshot; may drift from the live profile
	BarberID     string            `bson:"barber_id" json:"barber_id"`
	BarberName   string            `bson:"barber_name" json:"barber_name"`
	ServiceID    string            `bson:"service_id" json:"service_id"`
	ServiceName  string            `bson:"service_name" json:"service_name"`
	Date         string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time         string            `bson:"time" json:"time"` // "HH:MM"
	Status       AppointmentStatus `bson:"status" json:"status"`
	Price        float64           `bson:"price" json:"price"` // Fixed at booking time, not re-derived from the catalog
	ClientAvatar string            `bson:"client_avatar,omitempty" json:"client_avatar,omitempty"`
	BarberAvatar string            `bson:"barber_avatar,omitempty" json:"barber_avatar,omitempty"`
	CreatedAt    time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}
