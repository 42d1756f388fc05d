package notification

import (
	"context"
	"fmt"
	"sort"
	"time"

	notificationRepo "barberbook/database/repository/notification"
	"barberbook/models"
	"barberbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFeedLimit bounds a recipient's feed when no limit is configured.
const DefaultFeedLimit = 20

// DefaultNotificationService is the production implementation of
// NotificationService.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
	// FeedLimit caps the delivered feed; zero means DefaultFeedLimit.
	FeedLimit int
}

func (s *DefaultNotificationService) limit() int {
	if s.FeedLimit > 0 {
		return s.FeedLimit
	}
	return DefaultFeedLimit
}

// Send appends a notification record.
func (s *DefaultNotificationService) Send(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string) error {
	if recipientID == "" {
		return fmt.Errorf("notification recipient is required")
	}
	if typ == "" {
		typ = models.NotifInfo
	}

	n := models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   recipientID,
		Title:         title,
		Message:       message,
		Read:          false,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
		Type:          typ,
		AppointmentID: appointmentID,
	}

	if err := s.Repo.Create(&n); err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", recipientID, err)
	}
	return nil
}

// SendBestEffort appends a notification and swallows any failure. The
// triggering operation (an appointment transition, a new booking) must not
// observe delivery problems.
func (s *DefaultNotificationService) SendBestEffort(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string) {
	if err := s.Send(ctx, recipientID, title, message, typ, appointmentID); err != nil {
		utils.GetLogger().Warn("best-effort notification dropped",
			zap.String("recipient_id", recipientID),
			zap.String("title", title),
			zap.Error(err))
	}
}

// Snapshot returns the current feed for recipientKey, newest first,
// truncated to the feed limit.
func (s *DefaultNotificationService) Snapshot(recipientKey string) ([]models.Notification, error) {
	notifs, err := s.Repo.GetByRecipient(recipientKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications for %s: %w", recipientKey, err)
	}
	return orderAndBound(notifs, s.limit()), nil
}

// MarkRead flips a single record of recipientKey's feed to read. Records
// belonging to another recipient are never touched, and already-read records
// are left as they are, so the call is idempotent.
func (s *DefaultNotificationService) MarkRead(recipientKey, id string) error {
	if err := s.Repo.MarkRead(recipientKey, id); err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllRead batches the read flag over the unread records of the given
// snapshot. The batch is built from the caller's locally held set, not a
// fresh query: a record arriving between snapshot and commit stays unread.
func (s *DefaultNotificationService) MarkAllRead(snapshot []models.Notification) error {
	var ids []string
	for _, n := range snapshot {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if _, err := s.Repo.MarkManyRead(ids); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

// orderAndBound sorts newest-first by CreatedAt and truncates to limit.
func orderAndBound(notifs []models.Notification, limit int) []models.Notification {
	sort.SliceStable(notifs, func(i, j int) bool {
		return createdAfter(notifs[i].CreatedAt, notifs[j].CreatedAt)
	})
	if len(notifs) > limit {
		notifs = notifs[:limit]
	}
	return notifs
}

// createdAfter reports whether a is chronologically after b. The timestamps
// must be parsed: RFC3339Nano trims trailing fractional zeros, so lexical
// comparison misorders records stamped within the same second. Unparseable
// values sort oldest.
func createdAfter(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA != nil || errB != nil {
		return errA == nil && errB != nil
	}
	return ta.After(tb)
}
