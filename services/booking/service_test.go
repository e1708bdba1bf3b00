package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoardify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)

type serviceFixture struct {
	svc      *DefaultBookingService
	repo     *mockBookingRepo
	notifier *mockNotifier
	records  *mockRecorder
}

func newServiceFixture(policy StatusPolicy, seed ...models.Booking) serviceFixture {
	repo := new(mockBookingRepo)
	notifier := new(mockNotifier)
	records := new(mockRecorder)
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, mock.Anything).Return(&models.User{Name: "Customer"}, nil).Maybe()
	hoardings := new(mockHoardings)
	hoardings.On("FindByIDs", mock.Anything, mock.Anything).Return(nil, models.ErrNotFound).Maybe()

	enricher := &Enricher{Users: users, Hoardings: hoardings}
	view := NewView()
	if seed != nil {
		view.Replace(enricher.EnrichAll(context.Background(), seed))
	}

	return serviceFixture{
		svc: &DefaultBookingService{
			Repo:     repo,
			Enricher: enricher,
			Policy:   policy,
			View:     view,
			Records:  records,
			Notifier: notifier,
			Now:      func() time.Time { return fixedNow },
		},
		repo:     repo,
		notifier: notifier,
		records:  records,
	}
}

func TestUpdateStatus_ApprovesPending(t *testing.T) {
	f := newServiceFixture(PolicyOpen, models.Booking{ID: "b1", CustomerID: "u1", Status: models.BookingPending})

	f.repo.On("UpdateFields", mock.Anything, "b1", map[string]interface{}{
		"status":    "Approved",
		"updatedAt": fixedNow,
	}).Return(nil).Once()
	f.records.On("Create", mock.Anything, mock.MatchedBy(func(r models.ActivityRecord) bool {
		return r.Action == models.ActionBookingStatus && r.From == "Pending" && r.To == "Approved" && r.Actor == "admin-1"
	})).Return("rec-1", nil).Once()
	f.notifier.On("EnqueueStatusChange", mock.Anything, models.BookingStatusPayload{
		BookingID: "b1", CustomerID: "u1", Field: "status", From: "Pending", To: "Approved",
	}).Return(nil).Once()

	got, err := f.svc.UpdateStatus(context.Background(), "admin-1", "b1", models.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, got.Status)
	assert.Equal(t, fixedNow, got.UpdatedAt)

	inView, _ := f.svc.View.Get("b1")
	assert.Equal(t, models.BookingApproved, inView.Status)

	f.repo.AssertExpectations(t)
	f.records.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestUpdateStatus_SameValueIsNoOp(t *testing.T) {
	f := newServiceFixture(PolicyStrict, models.Booking{ID: "b1", CustomerID: "u1", Status: models.BookingApproved})

	f.repo.On("UpdateFields", mock.Anything, "b1", mock.Anything).Return(nil).Once()
	f.records.On("Create", mock.Anything, mock.Anything).Return("rec", nil)

	got, err := f.svc.UpdateStatus(context.Background(), "admin-1", "b1", models.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, got.Status)
	f.notifier.AssertNotCalled(t, "EnqueueStatusChange", mock.Anything, mock.Anything)
}

func TestUpdateStatus_RevertsOnWriteFailure(t *testing.T) {
	f := newServiceFixture(PolicyOpen, models.Booking{ID: "b1", CustomerID: "u1", Status: models.BookingPending})

	f.repo.On("UpdateFields", mock.Anything, "b1", mock.Anything).Return(errors.New("deadline exceeded")).Once()

	_, err := f.svc.UpdateStatus(context.Background(), "admin-1", "b1", models.BookingRejected)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrWriteFailed)

	inView, _ := f.svc.View.Get("b1")
	assert.Equal(t, models.BookingPending, inView.Status)
	assert.True(t, inView.UpdatedAt.IsZero())

	f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "EnqueueStatusChange", mock.Anything, mock.Anything)
}

func TestUpdateStatus_StrictPolicyRejects(t *testing.T) {
	f := newServiceFixture(PolicyStrict, models.Booking{ID: "b1", Status: models.BookingApproved})

	_, err := f.svc.UpdateStatus(context.Background(), "admin-1", "b1", models.BookingRejected)
	assert.ErrorIs(t, err, models.ErrTransitionNotAllowed)
	f.repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	f := newServiceFixture(PolicyOpen)

	_, err := f.svc.UpdateStatus(context.Background(), "admin-1", "b1", "Archived")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newServiceFixture(PolicyOpen)
	f.repo.On("GetByID", mock.Anything, "nope").Return(nil, models.ErrNotFound)

	_, err := f.svc.UpdateStatus(context.Background(), "admin-1", "nope", models.BookingApproved)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdatePaymentStatus_TogglesWithoutView(t *testing.T) {
	f := newServiceFixture(PolicyStrict)
	f.repo.On("GetByID", mock.Anything, "b9").
		Return(&models.Booking{ID: "b9", CustomerID: "u3", Status: models.BookingApproved, PaymentStatus: models.PaymentPaid}, nil)
	f.repo.On("UpdateFields", mock.Anything, "b9", map[string]interface{}{
		"paymentStatus": "Pending",
		"updatedAt":     fixedNow,
	}).Return(nil)
	f.records.On("Create", mock.Anything, mock.Anything).Return("rec", errors.New("mongo down"))
	f.notifier.On("EnqueueStatusChange", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	got, err := f.svc.UpdatePaymentStatus(context.Background(), "admin-1", "b9", models.PaymentPending)
	require.NoError(t, err, "audit and notification failures do not fail the write")
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	assert.Equal(t, models.BookingApproved, got.Status)
}

func TestUpdatePaymentStatus_InvalidValue(t *testing.T) {
	f := newServiceFixture(PolicyOpen)
	_, err := f.svc.UpdatePaymentStatus(context.Background(), "admin-1", "b1", "Refunded")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestListBookings_ReadFailure(t *testing.T) {
	f := newServiceFixture(PolicyOpen)
	f.repo.On("GetAll", mock.Anything).Return(nil, errors.New("unavailable"))

	_, err := f.svc.ListBookings(context.Background(), Filter{})
	assert.ErrorIs(t, err, models.ErrReadFailed)
}

func TestListCustomers_FromRepository(t *testing.T) {
	f := newServiceFixture(PolicyOpen)
	f.repo.On("GetAll", mock.Anything).Return([]models.Booking{
		{ID: "1", CustomerID: "u1", Amount: 1000, Status: models.BookingApproved},
		{ID: "2", CustomerID: "u1", Amount: 500, Status: models.BookingPending},
		{ID: "3", CustomerID: "u2", Amount: 2000, Status: models.BookingApproved},
	}, nil)

	aggs, err := f.svc.ListCustomers(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, 1500.0, aggs[0].TotalSpend)

	one, err := f.svc.GetCustomer(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, one.TotalSpend)

	_, err = f.svc.GetCustomer(context.Background(), "u404")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRun_ReplacesViewFromListener(t *testing.T) {
	f := newServiceFixture(PolicyOpen)
	updates := make(chan []models.Booking, 1)
	errs := make(chan error, 1)
	f.repo.On("Watch", mock.Anything).Return((<-chan []models.Booking)(updates), (<-chan error)(errs))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.svc.Run(ctx)
		close(done)
	}()

	sub := f.svc.Subscribe()
	defer sub.Unsubscribe()
	updates <- []models.Booking{{ID: "b1", CustomerID: "u1"}, {ID: "b2"}}

	snap := receive(t, sub)
	assert.Len(t, snap, 2)
	assert.True(t, f.svc.View.Synced())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func TestCalendarEvents_Window(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 7, d, 0, 0, 0, 0, time.UTC) }
	list := []models.EnrichedBooking{
		{Booking: models.Booking{ID: "in", StartDate: day(5), EndDate: day(10)}, HoardingTitle: "Board", CustomerName: "Ann"},
		{Booking: models.Booking{ID: "overlap", StartDate: day(1), EndDate: day(3)}},
		{Booking: models.Booking{ID: "after", StartDate: day(25), EndDate: day(28)}},
		{Booking: models.Booking{ID: "undated"}},
	}

	events := CalendarEvents(list, day(2), day(20))
	require.Len(t, events, 2)
	assert.Equal(t, "in", events[0].ID)
	assert.Equal(t, "Board - Ann", events[0].Title)
	assert.Equal(t, "overlap", events[1].ID)

	assert.Len(t, CalendarEvents(list, time.Time{}, time.Time{}), 3)
}

func TestCalendarEvents_UpperBoundExclusive(t *testing.T) {
	june1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	list := []models.EnrichedBooking{
		{Booking: models.Booking{ID: "may31", StartDate: june1.Add(-time.Hour), EndDate: june1.Add(48 * time.Hour)}},
		{Booking: models.Booking{ID: "june1", StartDate: june1, EndDate: june1.AddDate(0, 0, 3)}},
	}

	// to=2024-05-31 as a bare date arrives as June 1 midnight
	events := CalendarEvents(list, time.Time{}, june1)
	require.Len(t, events, 1)
	assert.Equal(t, "may31", events[0].ID)
}
