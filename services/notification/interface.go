package notification

import (
	"context"
	"errors"
	"fmt"

	"hoardify/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyBookingStatus(ctx context.Context, p models.BookingStatusPayload) error
}

// UserLookup resolves the push token owner.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Sender is the part of the FCM client the service uses.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ErrNoToken is returned when the customer has never registered a device.
var ErrNoToken = errors.New("user has no FCM token")

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  UserLookup
	FCM    Sender
	Logger *zap.Logger
}

// NewDefaultNotificationService wires the service to its user store and FCM client.
func NewDefaultNotificationService(users UserLookup, fcm Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil || fcm == nil {
		return nil, fmt.Errorf("notification service initialization error: user lookup or FCM client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Users: users, FCM: fcm, Logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s: %w", userID, ErrNoToken)
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = models.RoleUser
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.FCM.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.Logger.Debug("Push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}

// NotifyBookingStatus tells a customer their booking was approved, rejected or marked paid.
func (s *DefaultNotificationService) NotifyBookingStatus(ctx context.Context, p models.BookingStatusPayload) error {
	title, body := BookingStatusMessage(p)
	data := map[string]string{
		"type":      "booking_status",
		"bookingId": p.BookingID,
		"field":     p.Field,
		"status":    p.To,
	}
	return s.SendUserPushNotification(ctx, p.CustomerID, title, body, data)
}

// BookingStatusMessage renders the push text for a status change.
func BookingStatusMessage(p models.BookingStatusPayload) (title, body string) {
	if p.Field == "paymentStatus" {
		if p.To == string(models.PaymentPaid) {
			return "Payment received", "We have recorded the payment for your hoarding booking. Thank you!"
		}
		return "Payment pending", "Payment for your hoarding booking is marked as pending."
	}
	switch models.BookingStatus(p.To) {
	case models.BookingApproved:
		return "Booking approved", "Good news! Your hoarding booking has been approved."
	case models.BookingRejected:
		return "Booking rejected", "Unfortunately your hoarding booking could not be approved."
	}
	return "Booking updated", fmt.Sprintf("Your hoarding booking is now %s.", p.To)
}
