package appointment

import (
	"fmt"

	"barberbook/models"
)

// ValidationError signals missing or malformed input to Create or Transition.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing or invalid field %q", e.Field)
}

// InvalidTransitionError signals a request for an illegal state edge.
type InvalidTransitionError struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// NotFoundError signals that the referenced appointment does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("appointment %s not found", e.ID)
}

// SlotTakenError signals that the requested barber slot already holds a
// non-cancelled appointment. Only raised when double-booking prevention is
// enabled.
type SlotTakenError struct {
	BarberID string
	Date     string
	Time     string
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("barber %s already has an appointment on %s at %s", e.BarberID, e.Date, e.Time)
}
