package notificationRepo

import (
	"context"

	"barberbook/models"
)

// NotificationRepository defines methods for notification data access.
// Notifications are append-only; the only mutation is the read flag.
type NotificationRepository interface {
	// GetByRecipient retrieves every notification addressed to recipientID.
	GetByRecipient(recipientID string) ([]models.Notification, error)
	// Create appends a new notification record.
	Create(n *models.Notification) error
	// MarkRead sets read=true on one record owned by recipientID. Records
	// addressed to someone else never match; setting the flag on an
	// already-read record is a no-op in effect.
	MarkRead(recipientID, id string) error
	// MarkManyRead batches read=true over the given ids and returns the
	// number of records actually modified.
	MarkManyRead(ids []string) (int64, error)
	// Watch emits an event each time the notification set addressed to
	// recipientID changes. The returned channel closes when ctx is
	// cancelled.
	Watch(ctx context.Context, recipientID string) (<-chan struct{}, error)
}
