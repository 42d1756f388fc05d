package models

// ReminderPayload is the asynq task payload for a scheduled appointment
// reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointment_id"`
	RecipientID   string `json:"recipient_id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fire_date"`
}
