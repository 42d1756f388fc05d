package appointment

import "barberbook/models"

// allowedTransitions is the full set of legal lifecycle edges. pending is
// the initial state; completed and cancelled are terminal.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether from→to is a legal edge.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus is the state every appointment is created in.
func InitialStatus() models.AppointmentStatus {
	return models.StatusPending
}

// IsTerminal reports whether no further transition is possible from s.
func IsTerminal(s models.AppointmentStatus) bool {
	return len(allowedTransitions[s]) == 0
}
