package models

// BookingStatusPayload is queued when an admin changes a booking so the customer gets a push.
type BookingStatusPayload struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	Field      string `json:"field"`
	From       string `json:"from"`
	To         string `json:"to"`
}
