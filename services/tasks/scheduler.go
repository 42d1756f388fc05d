package tasks

import (
	"context"
	"fmt"
	"time"

	"barberbook/models"

	"github.com/hibiken/asynq"
)

// reminderLead is how long before the slot the client gets reminded.
const reminderLead = time.Hour

// AsynqReminderScheduler enqueues appointment reminders on the Redis-backed
// task queue. It satisfies the appointment service's ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleReminder enqueues a reminder an hour ahead of the confirmed slot.
// Slots already inside the lead window get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	slot, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Time, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse appointment slot %s %s: %w", appt.Date, appt.Time, err)
	}

	fireAt := slot.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	recipient := appt.ClientID
	if recipient == "" {
		recipient = models.RecipientUnknownClient
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		RecipientID:   recipient,
		Title:         "Upcoming Appointment",
		Body:          fmt.Sprintf("Reminder: your %s appointment is today at %s.", appt.ServiceName, appt.Time),
		FireDate:      fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
