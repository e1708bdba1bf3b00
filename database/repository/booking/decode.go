package bookingRepo

import (
	"strconv"
	"strings"
	"time"

	"hoardify/models"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// DecodeBooking maps a raw booking document onto models.Booking. Older documents
// used userId and totalPrice, and some carry no status at all (treated as Pending).
func DecodeBooking(id string, data map[string]interface{}) models.Booking {
	b := models.Booking{
		ID:         id,
		CustomerID: firstString(data, "customerId", "userId"),
		HoardingID: asString(data["hoardingId"]),
		CategoryID: firstString(data, "categoryId", "category"),
		Notes:      asString(data["notes"]),
		StartDate:  asTime(data["startDate"]),
		EndDate:    asTime(data["endDate"]),
		CreatedAt:  asTime(data["createdAt"]),
		UpdatedAt:  asTime(data["updatedAt"]),
	}

	if v, ok := data["amount"]; ok {
		b.Amount = asFloat(v)
	} else {
		b.Amount = asFloat(data["totalPrice"])
	}

	b.Status = models.BookingStatus(asString(data["status"]))
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	b.PaymentStatus = models.PaymentStatus(asString(data["paymentStatus"]))
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}
	return b
}

func firstString(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := asString(data[k]); s != "" {
			return s
		}
	}
	return ""
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func asTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case int64:
		return time.UnixMilli(t)
	}
	return time.Time{}
}
