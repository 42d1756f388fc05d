package appointment

import (
	"context"
	"fmt"

	appointmentRepo "barberbook/database/repository/appointment"
	"barberbook/models"
	"barberbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation of
// AppointmentService.
type DefaultAppointmentService struct {
	Repo     appointmentRepo.AppointmentRepository
	Notifier Notifier
	// Reminders is optional; when nil, no reminder is scheduled on confirm.
	Reminders ReminderScheduler
	// PreventDoubleBooking rejects bookings for an occupied barber slot.
	PreventDoubleBooking bool
}

// Create validates the request, persists a new pending record and notifies
// the admin feed.
func (s *DefaultAppointmentService) Create(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if s.PreventDoubleBooking {
		taken, err := s.Repo.FindConflict(req.BarberID, req.Date, req.Time)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability: %w", err)
		}
		if taken {
			return nil, &SlotTakenError{BarberID: req.BarberID, Date: req.Date, Time: req.Time}
		}
	}

	appt := models.Appointment{
		ID:           uuid.New().String(),
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		BarberID:     req.BarberID,
		BarberName:   req.BarberName,
		ServiceID:    req.ServiceID,
		ServiceName:  req.ServiceName,
		Date:         req.Date,
		Time:         req.Time,
		Status:       InitialStatus(),
		Price:        req.Price,
		ClientAvatar: req.ClientAvatar,
		BarberAvatar: req.BarberAvatar,
	}

	if err := s.Repo.Create(&appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.Notifier.SendBestEffort(ctx,
		models.RecipientAdmin,
		"New Booking",
		fmt.Sprintf("%s requested %s on %s at %s.", appt.ClientName, appt.ServiceName, appt.Date, appt.Time),
		models.NotifInfo,
		appt.ID,
	)

	return &appt, nil
}

func validateCreate(req CreateRequest) error {
	switch {
	case req.ClientID == "":
		return &ValidationError{Field: "client_id"}
	case req.BarberID == "":
		return &ValidationError{Field: "barber_id"}
	case req.ServiceID == "":
		return &ValidationError{Field: "service_id"}
	case req.Date == "":
		return &ValidationError{Field: "date"}
	case req.Time == "":
		return &ValidationError{Field: "time"}
	case req.Price <= 0:
		return &ValidationError{Field: "price"}
	}
	return nil
}

// Transition moves an appointment along a legal edge, persists the new
// status, then fires the counter-party notification. The status change is
// never rolled back on notification failure.
func (s *DefaultAppointmentService) Transition(ctx context.Context, id string, target models.AppointmentStatus) (*models.Appointment, error) {
	if !target.Valid() {
		return nil, &ValidationError{Field: "status"}
	}

	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve appointment %s: %w", id, err)
	}
	if appt == nil {
		return nil, &NotFoundError{ID: id}
	}

	if !CanTransition(appt.Status, target) {
		return nil, &InvalidTransitionError{From: appt.Status, To: target}
	}

	if err := s.Repo.UpdateStatus(id, target); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}
	appt.Status = target

	s.notifyTransition(ctx, appt)

	if target == models.StatusConfirmed && s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *appt); err != nil {
			utils.GetLogger().Warn("failed to schedule appointment reminder",
				zap.String("appointment_id", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

// notifyTransition emits the single advisory message for a completed edge.
// The recipient is the record's client, falling back to the unknown-client
// sentinel when the record carries no client id.
func (s *DefaultAppointmentService) notifyTransition(ctx context.Context, appt *models.Appointment) {
	recipient := appt.ClientID
	if recipient == "" {
		recipient = models.RecipientUnknownClient
	}

	var (
		title string
		typ   models.NotificationType
	)
	switch appt.Status {
	case models.StatusConfirmed:
		title = "Appointment Confirmed"
		typ = models.NotifSuccess
	case models.StatusCancelled:
		title = "Appointment Cancelled"
		typ = models.NotifError
	case models.StatusCompleted:
		title = "Appointment Completed"
		typ = models.NotifInfo
	default:
		return
	}

	message := fmt.Sprintf("Your %s appointment for %s at %s is now %s.",
		appt.ServiceName, appt.Date, appt.Time, appt.Status)

	s.Notifier.SendBestEffort(ctx, recipient, title, message, typ, appt.ID)
}

// ListFor returns the appointments visible to user.
func (s *DefaultAppointmentService) ListFor(user models.User) ([]models.Appointment, error) {
	if user.Role == models.RoleAdmin {
		return s.Repo.GetAll()
	}
	return s.Repo.GetByClient(user.ID)
}
