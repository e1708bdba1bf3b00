package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoardify_booking_transitions_total",
			Help: "Booking status and payment-status writes by field and target value.",
		},
		[]string{"field", "to"},
	)

	transitionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoardify_booking_transition_failures_total",
			Help: "Booking status writes that failed and were rolled back.",
		},
		[]string{"field"},
	)

	liveBookings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hoardify_live_bookings",
		Help: "Bookings held by the live booking view.",
	})
)
