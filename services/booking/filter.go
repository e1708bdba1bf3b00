package booking

import (
	"strings"
	"time"

	"hoardify/models"
)

const (
	WhenUpcoming = "upcoming"
	WhenPast     = "past"
)

// Filter narrows booking and customer lists. Zero-valued fields match everything;
// set fields combine with AND.
type Filter struct {
	Search string
	Status models.BookingStatus
	When   string
	// Now is the reference time for When; zero means time.Now().
	Now time.Time
}

func (f Filter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

// MatchBooking applies every set criterion to a single booking.
func (f Filter) MatchBooking(b models.EnrichedBooking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	switch f.When {
	case WhenUpcoming:
		if !b.StartDate.After(f.now()) {
			return false
		}
	case WhenPast:
		if b.EndDate.IsZero() || !b.EndDate.Before(f.now()) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return containsAny(q, b.CustomerName, b.HoardingTitle, b.CustomerEmail, b.ID, b.CustomerID)
	}
	return true
}

// FilterBookings returns the bookings matching f, keeping their order.
func FilterBookings(bookings []models.EnrichedBooking, f Filter) []models.EnrichedBooking {
	out := make([]models.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		if f.MatchBooking(b) {
			out = append(out, b)
		}
	}
	return out
}

// FilterCustomers keeps aggregates whose display fields match the search, that hold at
// least one booking with the requested status, and, for When, at least one booking
// on the requested side of now.
func FilterCustomers(aggs []models.CustomerAggregate, f Filter) []models.CustomerAggregate {
	out := make([]models.CustomerAggregate, 0, len(aggs))
	q := strings.ToLower(strings.TrimSpace(f.Search))
	for _, a := range aggs {
		if f.Status != "" && a.StatusCounts[f.Status] == 0 {
			continue
		}
		if q != "" && !containsAny(q, a.Name, a.Email, a.CustomerID, a.Phone) {
			continue
		}
		if f.When != "" {
			dateOnly := Filter{When: f.When, Now: f.now()}
			if len(FilterBookings(a.Bookings, dateOnly)) == 0 {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func containsAny(q string, fields ...string) bool {
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
