package booking

import (
	"context"
	"time"

	"hoardify/models"
)

// BookingService exposes the booking views and the two status mutations to the handlers.
type BookingService interface {
	ListBookings(ctx context.Context, f Filter) ([]models.EnrichedBooking, error)
	GetBooking(ctx context.Context, id string) (*models.EnrichedBooking, error)
	ListCustomers(ctx context.Context, f Filter) ([]models.CustomerAggregate, error)
	GetCustomer(ctx context.Context, customerID string) (*models.CustomerAggregate, error)
	UpdateStatus(ctx context.Context, actor, id string, status models.BookingStatus) (*models.EnrichedBooking, error)
	UpdatePaymentStatus(ctx context.Context, actor, id string, status models.PaymentStatus) (*models.EnrichedBooking, error)
	CalendarEvents(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error)
	Subscribe() *Subscription
}

// StatusNotifier queues the customer push that follows a status change.
type StatusNotifier interface {
	EnqueueStatusChange(ctx context.Context, payload models.BookingStatusPayload) error
}

// ActivityRecorder stores an audit entry for an admin write.
type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}
