package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentRepo struct {
	mu        sync.Mutex
	appts     map[string]*models.Appointment
	conflict  bool
	createErr error
	updateErr error
	events    chan struct{}
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appts:  make(map[string]*models.Appointment),
		events: make(chan struct{}, 1),
	}
}

func (r *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeAppointmentRepo) GetAll() ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.appts))
	for _, appt := range r.appts {
		out = append(out, *appt)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetByClient(clientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.appts {
		if appt.ClientID == clientID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(id string, status models.AppointmentStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if appt, ok := r.appts[id]; ok {
		appt.Status = status
	}
	return nil
}

func (r *fakeAppointmentRepo) FindConflict(barberID, date, timeOfDay string) (bool, error) {
	return r.conflict, nil
}

func (r *fakeAppointmentRepo) Watch(ctx context.Context, clientID string) (<-chan struct{}, error) {
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

type sentNote struct {
	RecipientID   string
	Title         string
	Message       string
	Type          models.NotificationType
	AppointmentID string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNote
}

func (n *fakeNotifier) SendBestEffort(ctx context.Context, recipientID, title, message string, typ models.NotificationType, appointmentID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNote{recipientID, title, message, typ, appointmentID})
}

func (n *fakeNotifier) all() []sentNote {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentNote(nil), n.sent...)
}

type fakeScheduler struct {
	scheduled []models.Appointment
	err       error
}

func (s *fakeScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	s.scheduled = append(s.scheduled, appt)
	return s.err
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		ClientID:    "client-1",
		ClientName:  "Jordan",
		BarberID:    "barber-1",
		BarberName:  "Marco",
		ServiceID:   "service-1",
		ServiceName: "Haircut",
		Date:        "2026-09-10",
		Time:        "14:30",
		Price:       50,
	}
}

func TestCreateStartsPendingAndNotifiesAdmin(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := &DefaultAppointmentService{Repo: repo, Notifier: notifier}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, appt)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.StatusPending, appt.Status)

	stored, err := repo.GetByID(appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusPending, stored.Status)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.RecipientAdmin, sent[0].RecipientID)
	assert.Equal(t, "New Booking", sent[0].Title)
	assert.Equal(t, models.NotifInfo, sent[0].Type)
	assert.Equal(t, appt.ID, sent[0].AppointmentID)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CreateRequest)
	}{
		{"client_id", func(r *CreateRequest) { r.ClientID = "" }},
		{"barber_id", func(r *CreateRequest) { r.BarberID = "" }},
		{"service_id", func(r *CreateRequest) { r.ServiceID = "" }},
		{"date", func(r *CreateRequest) { r.Date = "" }},
		{"time", func(r *CreateRequest) { r.Time = "" }},
		{"price", func(r *CreateRequest) { r.Price = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			repo := newFakeAppointmentRepo()
			svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

			req := validCreateRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
			assert.Empty(t, repo.appts)
		})
	}
}

func TestCreateRejectsTakenSlotWhenPolicyOn(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.conflict = true
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}, PreventDoubleBooking: true}

	_, err := svc.Create(context.Background(), validCreateRequest())
	var slotErr *SlotTakenError
	require.ErrorAs(t, err, &slotErr)
	assert.Equal(t, "barber-1", slotErr.BarberID)
}

func TestCreateAllowsTakenSlotWhenPolicyOff(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.conflict = true
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestTransitionConfirmThenComplete(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := &DefaultAppointmentService{Repo: repo, Notifier: notifier}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.Transition(context.Background(), appt.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	completed, err := svc.Transition(context.Background(), appt.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	sent := notifier.all()
	require.Len(t, sent, 3)
	assert.Equal(t, "Appointment Confirmed", sent[1].Title)
	assert.Equal(t, models.NotifSuccess, sent[1].Type)
	assert.Equal(t, "client-1", sent[1].RecipientID)
	assert.Equal(t, "Appointment Completed", sent[2].Title)
	assert.Equal(t, models.NotifInfo, sent[2].Type)
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), appt.ID, models.StatusCompleted)
	var tErr *InvalidTransitionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, models.StatusPending, tErr.From)
	assert.Equal(t, models.StatusCompleted, tErr.To)

	stored, _ := repo.GetByID(appt.ID)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestCancelledIsTerminal(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), appt.ID, models.StatusCancelled)
	require.NoError(t, err)

	for _, target := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
	} {
		_, err := svc.Transition(context.Background(), appt.ID, target)
		var tErr *InvalidTransitionError
		assert.ErrorAs(t, err, &tErr, "cancelled -> %s", target)
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc := &DefaultAppointmentService{Repo: newFakeAppointmentRepo(), Notifier: &fakeNotifier{}}

	_, err := svc.Transition(context.Background(), "a1", models.AppointmentStatus("archived"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}

func TestTransitionMissingAppointment(t *testing.T) {
	svc := &DefaultAppointmentService{Repo: newFakeAppointmentRepo(), Notifier: &fakeNotifier{}}

	_, err := svc.Transition(context.Background(), "nope", models.StatusConfirmed)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "nope", nfErr.ID)
}

func TestTransitionFallsBackToUnknownClientRecipient(t *testing.T) {
	repo := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	svc := &DefaultAppointmentService{Repo: repo, Notifier: notifier}

	repo.appts["legacy"] = &models.Appointment{
		ID:          "legacy",
		ServiceName: "Haircut",
		Date:        "2026-09-10",
		Time:        "10:00",
		Status:      models.StatusPending,
	}

	appt, err := svc.Transition(context.Background(), "legacy", models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)

	sent := notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, models.RecipientUnknownClient, sent[0].RecipientID)
}

func TestReminderFailureNeverRollsBackConfirm(t *testing.T) {
	repo := newFakeAppointmentRepo()
	sched := &fakeScheduler{err: errors.New("queue down")}
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}, Reminders: sched}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.Transition(context.Background(), appt.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
	assert.Len(t, sched.scheduled, 1)

	stored, _ := repo.GetByID(appt.ID)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestReminderScheduledOnlyOnConfirm(t *testing.T) {
	repo := newFakeAppointmentRepo()
	sched := &fakeScheduler{}
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}, Reminders: sched}

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), appt.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Empty(t, sched.scheduled)
}

func TestListForScopesByRole(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := &DefaultAppointmentService{Repo: repo, Notifier: &fakeNotifier{}}

	for _, clientID := range []string{"client-1", "client-1", "client-2"} {
		req := validCreateRequest()
		req.ClientID = clientID
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	admin := models.User{ID: "admin-1", Role: models.RoleAdmin}
	all, err := svc.ListFor(admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	client := models.User{ID: "client-1", Role: models.RoleClient}
	own, err := svc.ListFor(client)
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, appt := range own {
		assert.Equal(t, "client-1", appt.ClientID)
	}
}
