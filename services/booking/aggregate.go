package booking

import (
	"sort"

	"hoardify/models"

	"github.com/shopspring/decimal"
)

// UnknownCustomerKey groups bookings that carry no customer reference.
const UnknownCustomerKey = "unknown"

// Aggregate groups enriched bookings by customer. Aggregates come back most recently
// active first; equal timestamps keep first-seen order.
func Aggregate(bookings []models.EnrichedBooking) []models.CustomerAggregate {
	index := make(map[string]int)
	aggs := make([]models.CustomerAggregate, 0)
	totals := make([]decimal.Decimal, 0)

	for _, b := range bookings {
		key := b.CustomerID
		if key == "" {
			key = UnknownCustomerKey
		}

		i, ok := index[key]
		if !ok {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, models.CustomerAggregate{
				CustomerID:   key,
				Name:         b.CustomerName,
				Email:        b.CustomerEmail,
				Phone:        b.CustomerPhone,
				Bookings:     []models.EnrichedBooking{},
				StatusCounts: make(map[models.BookingStatus]int),
			})
			totals = append(totals, decimal.Zero)
		}

		agg := &aggs[i]
		agg.Bookings = append(agg.Bookings, b)
		totals[i] = totals[i].Add(decimal.NewFromFloat(b.Amount))
		agg.StatusCounts[b.Status]++
		if t := b.ActivityTime(); t.After(agg.LastBookingAt) {
			agg.LastBookingAt = t
		}
	}

	for i := range aggs {
		aggs[i].TotalSpend = totals[i].InexactFloat64()
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].LastBookingAt.After(aggs[j].LastBookingAt)
	})
	return aggs
}
