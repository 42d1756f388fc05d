package appointment

import (
	"context"
	"testing"
	"time"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvSnapshot(t *testing.T, feed *Feed) []models.Appointment {
	t.Helper()
	select {
	case appts, ok := <-feed.C:
		require.True(t, ok, "feed closed before delivering a snapshot")
		return appts
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a feed snapshot")
		return nil
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	feed, err := svc.Subscribe(context.Background(), models.User{ID: "client-1", Role: models.RoleClient})
	require.NoError(t, err)
	defer feed.Close()

	snapshot := recvSnapshot(t, feed)
	require.Len(t, snapshot, 1)
	assert.Equal(t, appt.ID, snapshot[0].ID)
}

func TestSubscribeRedeliversOnChange(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	feed, err := svc.Subscribe(context.Background(), models.User{ID: "client-1", Role: models.RoleClient})
	require.NoError(t, err)
	defer feed.Close()

	assert.Empty(t, recvSnapshot(t, feed))

	_, err = svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	repo.events <- struct{}{}

	snapshot := recvSnapshot(t, feed)
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.StatusPending, snapshot[0].Status)
}

func TestSubscribeSortsAgendaChronologically(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	slots := []struct{ date, timeOfDay string }{
		{"2026-09-12", "09:00"},
		{"2026-09-10", "16:00"},
		{"2026-09-10", "11:00"},
	}
	for _, slot := range slots {
		req := validCreateRequest()
		req.Date = slot.date
		req.Time = slot.timeOfDay
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	feed, err := svc.Subscribe(context.Background(), models.User{ID: "admin-1", Role: models.RoleAdmin})
	require.NoError(t, err)
	defer feed.Close()

	snapshot := recvSnapshot(t, feed)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "11:00", snapshot[0].Time)
	assert.Equal(t, "16:00", snapshot[1].Time)
	assert.Equal(t, "2026-09-12", snapshot[2].Date)
}

func TestFeedCloseIsIdempotentAndClosesChannel(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	feed, err := svc.Subscribe(context.Background(), models.User{ID: "client-1", Role: models.RoleClient})
	require.NoError(t, err)

	recvSnapshot(t, feed)

	feed.Close()
	feed.Close()

	select {
	case _, ok := <-feed.C:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("feed channel did not close after Close")
	}
}
