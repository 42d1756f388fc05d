package appointment

import (
	"context"
	"sort"
	"sync"

	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// Feed is a live view of the appointment set visible to one user. The full
// current set is re-delivered on every underlying change; C closes when the
// feed is torn down. The owner must call Close on every exit path.
type Feed struct {
	C <-chan []models.Appointment

	cancel context.CancelFunc
	once   sync.Once
}

// Close tears down the live view. Safe to call more than once.
func (f *Feed) Close() {
	f.once.Do(f.cancel)
}

// Subscribe opens a live view scoped to user: clients watch their own
// records, admins watch the whole agenda.
func (s *DefaultAppointmentService) Subscribe(ctx context.Context, user models.User) (*Feed, error) {
	scope := user.ID
	if user.Role == models.RoleAdmin {
		scope = ""
	}

	ctx, cancel := context.WithCancel(ctx)
	events, err := s.Repo.Watch(ctx, scope)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan []models.Appointment, 1)
	feed := &Feed{C: out, cancel: cancel}

	go func() {
		defer close(out)
		s.deliverSnapshot(out, user)
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				s.deliverSnapshot(out, user)
			case <-ctx.Done():
				return
			}
		}
	}()

	return feed, nil
}

// deliverSnapshot re-queries the visible set and replaces any undelivered
// snapshot with the fresh one.
func (s *DefaultAppointmentService) deliverSnapshot(out chan []models.Appointment, user models.User) {
	appts, err := s.ListFor(user)
	if err != nil {
		utils.GetLogger().Warn("appointment feed snapshot failed",
			zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	sortAgenda(appts)

	// Drain a stale pending snapshot so the channel always carries the
	// newest set.
	select {
	case <-out:
	default:
	}
	out <- appts
}

// sortAgenda orders appointments chronologically (date, then time).
func sortAgenda(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
