package booking

import (
	"context"

	"hoardify/models"

	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockBookingRepo) Watch(ctx context.Context) (<-chan []models.Booking, <-chan error) {
	args := m.Called(ctx)
	return args.Get(0).(<-chan []models.Booking), args.Get(1).(<-chan error)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockHoardings struct {
	mock.Mock
}

func (m *mockHoardings) FindByIDs(ctx context.Context, ids []string) (map[string]*models.Hoarding, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[string]*models.Hoarding)
	return found, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) EnqueueStatusChange(ctx context.Context, payload models.BookingStatusPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Create(ctx context.Context, record models.ActivityRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}
