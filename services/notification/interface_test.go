package notification

import (
	"context"
	"errors"
	"testing"

	"hoardify/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubUsers map[string]*models.User

func (s stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func TestNotifyBookingStatus_SendsToCustomerToken(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m *messaging.Message) bool {
		return m.Token == "tok-1" &&
			m.Notification.Title == "Booking approved" &&
			m.Data["bookingId"] == "b1" &&
			m.Data["role"] == models.RoleUser
	})).Return("msg-1", nil).Once()

	svc, err := NewDefaultNotificationService(stubUsers{"u1": {ID: "u1", FCMToken: "tok-1"}}, sender, nil)
	require.NoError(t, err)

	err = svc.NotifyBookingStatus(context.Background(), models.BookingStatusPayload{
		BookingID: "b1", CustomerID: "u1", Field: "status", From: "Pending", To: "Approved",
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendUserPushNotification_NoToken(t *testing.T) {
	sender := new(mockSender)
	svc, err := NewDefaultNotificationService(stubUsers{"u1": {ID: "u1"}}, sender, nil)
	require.NoError(t, err)

	err = svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil)
	assert.ErrorIs(t, err, ErrNoToken)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendUserPushNotification_Errors(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return("", errors.New("quota"))
	svc, _ := NewDefaultNotificationService(stubUsers{"u1": {FCMToken: "tok"}}, sender, nil)

	assert.ErrorIs(t, svc.SendUserPushNotification(context.Background(), "missing", "t", "b", nil), models.ErrNotFound)
	assert.Error(t, svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil))
}

func TestBookingStatusMessage(t *testing.T) {
	title, _ := BookingStatusMessage(models.BookingStatusPayload{Field: "status", To: "Rejected"})
	assert.Equal(t, "Booking rejected", title)
	title, _ = BookingStatusMessage(models.BookingStatusPayload{Field: "paymentStatus", To: "Paid"})
	assert.Equal(t, "Payment received", title)
	title, _ = BookingStatusMessage(models.BookingStatusPayload{Field: "paymentStatus", To: "Pending"})
	assert.Equal(t, "Payment pending", title)
}

func TestNewDefaultNotificationService_RequiresDeps(t *testing.T) {
	_, err := NewDefaultNotificationService(nil, new(mockSender), nil)
	assert.Error(t, err)
}
