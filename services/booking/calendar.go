package booking

import (
	"context"
	"fmt"
	"time"

	"hoardify/models"
)

// CalendarEvents returns the bookings overlapping [from, to). A zero bound is open.
func (s *DefaultBookingService) CalendarEvents(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return CalendarEvents(list, from, to), nil
}

// CalendarEvents shapes bookings into calendar entries, skipping those without dates.
func CalendarEvents(bookings []models.EnrichedBooking, from, to time.Time) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, len(bookings))
	for _, b := range bookings {
		if b.StartDate.IsZero() {
			continue
		}
		end := b.EndDate
		if end.IsZero() {
			end = b.StartDate
		}
		if !to.IsZero() && !b.StartDate.Before(to) {
			continue
		}
		if !from.IsZero() && end.Before(from) {
			continue
		}
		events = append(events, models.CalendarEvent{
			ID:            b.ID,
			Title:         fmt.Sprintf("%s - %s", b.HoardingTitle, b.CustomerName),
			Start:         b.StartDate,
			End:           end,
			Status:        b.Status,
			PaymentStatus: b.PaymentStatus,
			CustomerID:    b.CustomerID,
			HoardingID:    b.HoardingID,
		})
	}
	return events
}
