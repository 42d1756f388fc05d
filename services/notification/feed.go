package notification

import (
	"context"
	"sync"

	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// Subscription is a live view of one recipient's feed. The full current
// set is re-delivered on every underlying change; C closes on teardown.
// The owner must Close it on every exit path, including error paths — a
// leaked subscription keeps delivering against a stale recipient scope.
type Subscription struct {
	C <-chan []models.Notification

	cancel context.CancelFunc
	once   sync.Once
}

// Close tears down the live view. Safe to call more than once.
func (sub *Subscription) Close() {
	sub.once.Do(sub.cancel)
}

// Subscribe opens a live view for recipientKey. An initial snapshot is
// delivered immediately; every subsequent store change re-delivers the
// full bounded set.
func (s *DefaultNotificationService) Subscribe(ctx context.Context, recipientKey string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	events, err := s.Repo.Watch(ctx, recipientKey)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan []models.Notification, 1)
	sub := &Subscription{C: out, cancel: cancel}

	go func() {
		defer close(out)
		s.deliver(out, recipientKey)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				s.deliver(out, recipientKey)
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

// deliver re-queries the bounded feed and replaces any undelivered snapshot
// with the fresh one, so a slow consumer always sees the newest set.
func (s *DefaultNotificationService) deliver(out chan []models.Notification, recipientKey string) {
	feed, err := s.Snapshot(recipientKey)
	if err != nil {
		utils.GetLogger().Warn("notification feed snapshot failed",
			zap.String("recipient_id", recipientKey), zap.Error(err))
		return
	}

	select {
	case <-out:
	default:
	}
	out <- feed
}
