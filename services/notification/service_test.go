package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifs        map[string]*models.Notification
	createErr     error
	markReadCalls int
	bulkCalls     int
	bulkIDs       []string
	events        chan struct{}
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifs: make(map[string]*models.Notification),
		events: make(chan struct{}, 1),
	}
}

func (r *fakeNotificationRepo) GetByRecipient(recipientID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifs {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.notifs[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) MarkRead(recipientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markReadCalls++
	if n, ok := r.notifs[id]; ok && n.RecipientID == recipientID {
		n.Read = true
	}
	return nil
}

func (r *fakeNotificationRepo) MarkManyRead(ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkCalls++
	r.bulkIDs = append([]string(nil), ids...)
	var modified int64
	for _, id := range ids {
		if n, ok := r.notifs[id]; ok && !n.Read {
			n.Read = true
			modified++
		}
	}
	return modified, nil
}

func (r *fakeNotificationRepo) Watch(ctx context.Context, recipientID string) (<-chan struct{}, error) {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-r.events:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *fakeNotificationRepo) get(id string) models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.notifs[id]
}

func seedNotification(r *fakeNotificationRepo, recipientID string, read bool, createdAt string) string {
	id := fmt.Sprintf("n-%d", len(r.notifs)+1)
	r.notifs[id] = &models.Notification{
		ID:          id,
		RecipientID: recipientID,
		Title:       "Test",
		Read:        read,
		CreatedAt:   createdAt,
		Type:        models.NotifInfo,
	}
	return id
}

func TestSendAssignsIdentityAndTimestamp(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	err := svc.Send(context.Background(), "client-1", "Appointment Confirmed", "See you at 14:30.", "", "appt-1")
	require.NoError(t, err)

	require.Len(t, repo.notifs, 1)
	var stored models.Notification
	for _, n := range repo.notifs {
		stored = *n
	}

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "client-1", stored.RecipientID)
	assert.False(t, stored.Read)
	assert.Equal(t, models.NotifInfo, stored.Type, "empty type defaults to info")
	assert.Equal(t, "appt-1", stored.AppointmentID)

	created, err := time.Parse(time.RFC3339Nano, stored.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created.Location())
}

func TestSendRequiresRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	err := svc.Send(context.Background(), "", "Title", "Body", models.NotifInfo, "")
	require.Error(t, err)
	assert.Empty(t, repo.notifs)
}

func TestSendBestEffortSwallowsFailure(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.createErr = errors.New("write concern failed")
	svc := &DefaultNotificationService{Repo: repo}

	assert.NotPanics(t, func() {
		svc.SendBestEffort(context.Background(), "client-1", "Title", "Body", models.NotifInfo, "")
	})
	assert.Empty(t, repo.notifs)
}

func TestSnapshotOrdersNewestFirstAndBounds(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultFeedLimit+5; i++ {
		seedNotification(repo, "client-1", false, base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339Nano))
	}

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)
	require.Len(t, snapshot, DefaultFeedLimit)

	for i := 1; i < len(snapshot); i++ {
		assert.GreaterOrEqual(t, snapshot[i-1].CreatedAt, snapshot[i].CreatedAt)
	}
	// The 5 oldest fell off the end.
	newest := base.Add(time.Duration(DefaultFeedLimit+4) * time.Minute).Format(time.RFC3339Nano)
	assert.Equal(t, newest, snapshot[0].CreatedAt)
}

func TestSnapshotOrdersSubSecondTimestamps(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	// RFC3339Nano trims trailing fractional zeros, so "...05.5Z" sorts
	// lexically after "...05.51Z" even though it is older. The snapshot
	// must still come out newest first.
	older := seedNotification(repo, "client-1", false, "2026-08-01T10:00:05.5Z")
	newer := seedNotification(repo, "client-1", false, "2026-08-01T10:00:05.51Z")

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, newer, snapshot[0].ID)
	assert.Equal(t, older, snapshot[1].ID)
}

func TestSnapshotBoundNeverDropsNewestRecord(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo, FeedLimit: 1}

	seedNotification(repo, "client-1", false, "2026-08-01T10:00:05.5Z")
	newest := seedNotification(repo, "client-1", false, "2026-08-01T10:00:05.51Z")

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, newest, snapshot[0].ID)
}

func TestSnapshotScopesByRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	seedNotification(repo, models.RecipientAdmin, false, "2026-08-01T10:00:00Z")
	seedNotification(repo, "client-1", false, "2026-08-01T11:00:00Z")

	adminFeed, err := svc.Snapshot(models.RecipientAdmin)
	require.NoError(t, err)
	require.Len(t, adminFeed, 1)
	assert.Equal(t, models.RecipientAdmin, adminFeed[0].RecipientID)
}

func TestCustomFeedLimit(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo, FeedLimit: 3}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		seedNotification(repo, "client-1", false, base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339Nano))
	}

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)
	assert.Len(t, snapshot, 3)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	id := seedNotification(repo, "client-1", false, "2026-08-01T10:00:00Z")

	require.NoError(t, svc.MarkRead("client-1", id))
	assert.True(t, repo.get(id).Read)

	require.NoError(t, svc.MarkRead("client-1", id))
	assert.True(t, repo.get(id).Read)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	id := seedNotification(repo, "client-1", false, "2026-08-01T10:00:00Z")

	// Another session cannot flip a record it does not own.
	require.NoError(t, svc.MarkRead("client-2", id))
	assert.False(t, repo.get(id).Read)

	require.NoError(t, svc.MarkRead("client-1", id))
	assert.True(t, repo.get(id).Read)
}

func TestMarkAllReadFlipsOnlyUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	unread1 := seedNotification(repo, "client-1", false, "2026-08-01T10:00:00Z")
	alreadyRead := seedNotification(repo, "client-1", true, "2026-08-01T11:00:00Z")
	unread2 := seedNotification(repo, "client-1", false, "2026-08-01T12:00:00Z")

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkAllRead(snapshot))
	assert.Equal(t, 1, repo.bulkCalls)
	assert.ElementsMatch(t, []string{unread1, unread2}, repo.bulkIDs)
	assert.True(t, repo.get(unread1).Read)
	assert.True(t, repo.get(unread2).Read)
	assert.True(t, repo.get(alreadyRead).Read)
}

func TestMarkAllReadIssuesNoWritesWhenAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	seedNotification(repo, "client-1", true, "2026-08-01T10:00:00Z")
	seedNotification(repo, "client-1", true, "2026-08-01T11:00:00Z")

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkAllRead(snapshot))
	assert.Zero(t, repo.bulkCalls)
}

func TestMarkAllReadLeavesLaterArrivalsUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := &DefaultNotificationService{Repo: repo}

	seedNotification(repo, "client-1", false, "2026-08-01T10:00:00Z")

	snapshot, err := svc.Snapshot("client-1")
	require.NoError(t, err)

	// A record lands between the snapshot and the commit.
	late := seedNotification(repo, "client-1", false, "2026-08-01T10:05:00Z")

	require.NoError(t, svc.MarkAllRead(snapshot))
	assert.False(t, repo.get(late).Read)
}

func TestUnreadCountDerivedFromSnapshot(t *testing.T) {
	snapshot := []models.Notification{
		{ID: "a", Read: false},
		{ID: "b", Read: true},
		{ID: "c", Read: false},
	}
	assert.Equal(t, 2, UnreadCount(snapshot))
	assert.Zero(t, UnreadCount(nil))
}
