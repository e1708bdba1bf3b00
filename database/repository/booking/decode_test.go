package bookingRepo

import (
	"testing"
	"time"

	"hoardify/models"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBookingCurrentShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	b := DecodeBooking("b1", map[string]interface{}{
		"customerId":    "u1",
		"hoardingId":    "h1",
		"categoryId":    "Downtown",
		"amount":        int64(1200),
		"startDate":     created.AddDate(0, 0, 5),
		"endDate":       created.AddDate(0, 1, 5),
		"status":        "Approved",
		"paymentStatus": "Paid",
		"createdAt":     created,
	})

	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "u1", b.CustomerID)
	assert.Equal(t, "Downtown", b.CategoryID)
	assert.Equal(t, 1200.0, b.Amount)
	assert.Equal(t, models.BookingApproved, b.Status)
	assert.Equal(t, models.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, created, b.CreatedAt)
}

func TestDecodeBookingLegacyShape(t *testing.T) {
	b := DecodeBooking("b2", map[string]interface{}{
		"userId":     "u9",
		"hoardingId": "h3",
		"totalPrice": "450.50",
		"startDate":  "2024-05-01",
		"endDate":    "2024-05-31T00:00:00Z",
	})

	assert.Equal(t, "u9", b.CustomerID)
	assert.Equal(t, 450.5, b.Amount)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), b.StartDate)
	assert.Equal(t, 31, b.EndDate.Day())
	assert.True(t, b.CreatedAt.IsZero())
}

func TestDecodeBookingMissingCustomer(t *testing.T) {
	b := DecodeBooking("b3", map[string]interface{}{"hoardingId": "h1", "amount": 10.0})
	assert.Empty(t, b.CustomerID)
	assert.Equal(t, 10.0, b.Amount)
}

func TestSortNewestFirst(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []models.Booking{
		{ID: "old", CreatedAt: t0},
		{ID: "new", CreatedAt: t0.Add(48 * time.Hour)},
		{ID: "mid", CreatedAt: t0.Add(24 * time.Hour)},
	}
	SortNewestFirst(list)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
