package models

// NotificationType is the severity of an advisory message.
type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
	NotifError   NotificationType = "error"
)

// Sentinel recipients. "admin" is the broadcast target for the shop;
// "unknown_client" is used when a record carries no client id.
const (
	RecipientAdmin         = "admin"
	RecipientUnknownClient = "unknown_client"
)

// Notification is an advisory message correlated with an appointment event.
// The read flag is monotonic: once true it never reverts.
type Notification struct {
	ID          string           `bson:"id" json:"id"`
	RecipientID string           `bson:"recipient_id" json:"recipient_id"`
	Title       string           `bson:"title" json:"title"`
	Message     string           `bson:"message" json:"message"`
	Read        bool             `bson:"read" json:"read"`
	CreatedAt   string           `bson:"created_at" json:"created_at"` // RFC3339; compare parsed, not lexically
	Type        NotificationType `bson:"type" json:"type"`
	// AppointmentID links back to the triggering appointment. The legacy
	// system correlated by message text only; keep this populated so
	// consumers can deep-link.
	AppointmentID string `bson:"appointment_id,omitempty" json:"appointment_id,omitempty"`
}
