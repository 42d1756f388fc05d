package notification

import (
	"context"

	"barberbook/models"
)

// NotificationService maintains recipient-scoped, recency-ordered,
// size-bounded advisory feeds with idempotent read-state mutation.
type NotificationService interface {
	// Subscribe opens a live view for recipientKey ("admin" for the shop,
	// the user id for a client). The full current set is re-delivered,
	// newest first and truncated to the feed limit, on every change. The
	// caller owns the handle and must Close it on every exit path.
	Subscribe(ctx context.Context, recipientKey string) (*Subscription, error)
	// Snapshot returns the current feed one-shot, newest first, truncated.
	Snapshot(recipientKey string) ([]models.Notification, error)
	// Send appends a notification. Callers that may not fail on delivery
	// problems use SendBestEffort instead.
	Send(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string) error
	// SendBestEffort is the fire-and-forget variant: failure is logged and
	// swallowed, never propagated to the triggering operation.
	SendBestEffort(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string)
	// MarkRead sets read=true on one record of recipientKey's feed;
	// repeating the call changes nothing, and records addressed to another
	// recipient are out of reach.
	MarkRead(recipientKey, id string) error
	// MarkAllRead batches read=true over the unread records of the
	// caller-held snapshot. Records arriving after the snapshot was taken
	// are unaffected. Zero unread records means zero writes.
	MarkAllRead(snapshot []models.Notification) error
}

// UnreadCount derives the unread total from a feed snapshot. It is never
// stored.
func UnreadCount(snapshot []models.Notification) int {
	count := 0
	for _, n := range snapshot {
		if !n.Read {
			count++
		}
	}
	return count
}
