package models

import "time"

// BookingStatus is the approval axis of a booking.
type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingApproved BookingStatus = "Approved"
	BookingRejected BookingStatus = "Rejected"
)

// BookingStatuses lists every approval status in display order.
var BookingStatuses = []BookingStatus{BookingPending, BookingApproved, BookingRejected}

// Valid reports whether s is a known approval status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingApproved, BookingRejected:
		return true
	}
	return false
}

// PaymentStatus is the payment axis of a booking. It is independent from BookingStatus.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Booking is a reservation of a hoarding by a customer. Bookings are created outside
// the admin backend; here they are read and their two status fields are changed.
type Booking struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	HoardingID    string        `json:"hoardingId"`
	CategoryID    string        `json:"categoryId,omitempty"`
	Amount        float64       `json:"amount"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt,omitempty"`
}

// ActivityTime is the timestamp used to rank customers by recent activity.
func (b Booking) ActivityTime() time.Time {
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	return b.StartDate
}

// EnrichedBooking is a booking with display fields resolved from its references.
type EnrichedBooking struct {
	Booking
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	HoardingTitle   string `json:"hoardingTitle"`
	HoardingAddress string `json:"hoardingAddress"`
}

// CustomerAggregate is a derived, non-persisted summary of one customer's bookings.
type CustomerAggregate struct {
	CustomerID    string                `json:"customerId"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	Bookings      []EnrichedBooking     `json:"bookings"`
	TotalSpend    float64               `json:"totalSpend"`
	LastBookingAt time.Time             `json:"lastBookingAt"`
	StatusCounts  map[BookingStatus]int `json:"statusCounts"`
}

// StatusUpdateRequest is the body of a status or payment-status change.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// CalendarEvent is a booking shaped for the admin calendar.
type CalendarEvent struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CustomerID    string        `json:"customerId"`
	HoardingID    string        `json:"hoardingId"`
}
