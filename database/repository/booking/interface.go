package bookingRepo

import (
	"context"

	"hoardify/models"
)

// BookingRepository defines data access for the bookings collection.
type BookingRepository interface {
	// GetAll returns every booking, newest first.
	GetAll(ctx context.Context) ([]models.Booking, error)
	// GetByID returns one booking or models.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateFields writes the given fields of one booking.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// Watch streams the full booking list every time it changes, until ctx ends.
	Watch(ctx context.Context) (<-chan []models.Booking, <-chan error)
}
