package handlers

import (
	"net/http"
	"time"

	"hoardify/models"
	"hoardify/services/booking"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamKeepAlive is how often an idle event stream sends a ping.
const streamKeepAlive = 25 * time.Second

// BookingHandler serves the bookings, customers and calendar screens.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

func filterFromQuery(c *gin.Context) (booking.Filter, bool) {
	f := booking.Filter{
		Search: c.Query("search"),
		When:   c.Query("when"),
	}
	if st := c.Query("status"); st != "" {
		f.Status = models.BookingStatus(st)
		if !f.Status.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", "unknown status "+st)
			c.Abort()
			return f, false
		}
	}
	if f.When != "" && f.When != booking.WhenUpcoming && f.When != booking.WhenPast {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", "when must be upcoming or past")
		c.Abort()
		return f, false
	}
	return f, true
}

// ListBookingsHandler handles GET /api/admin/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		return
	}
	list, err := h.Bookings.ListBookings(c.Request.Context(), f)
	if err != nil {
		respondError(c, "Failed to load bookings", err)
		return
	}
	respondPage(c, list)
}

// GetBookingHandler handles GET /api/admin/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateStatusHandler handles PATCH /api/admin/bookings/:id/status.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdateStatus(c.Request.Context(), adminID(c), c.Param("id"), models.BookingStatus(req.Status))
	if err != nil {
		respondError(c, "Failed to update booking status", err)
		return
	}
	getLogger(c).Info("Booking status updated",
		zap.String("bookingID", b.ID), zap.String("status", string(b.Status)), zap.String("adminID", adminID(c)))
	c.JSON(http.StatusOK, b)
}

// UpdatePaymentStatusHandler handles PATCH /api/admin/bookings/:id/payment.
func (h *BookingHandler) UpdatePaymentStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.Bookings.UpdatePaymentStatus(c.Request.Context(), adminID(c), c.Param("id"), models.PaymentStatus(req.Status))
	if err != nil {
		respondError(c, "Failed to update payment status", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CalendarHandler handles GET /api/admin/bookings/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *BookingHandler) CalendarHandler(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	// a bare date includes the whole day
	if len(c.Query("to")) == len("2006-01-02") {
		to = to.AddDate(0, 0, 1)
	}
	events, err := h.Bookings.CalendarEvents(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "Failed to load calendar", err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// StreamBookingsHandler handles GET /api/admin/bookings/stream as Server-Sent Events.
// Every change of the booking list is pushed as a full "bookings" event.
func (h *BookingHandler) StreamBookingsHandler(c *gin.Context) {
	sub := h.Bookings.Subscribe()
	defer sub.Unsubscribe()

	streamHeaders(c)
	ping := time.NewTicker(streamKeepAlive)
	defer ping.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case list, ok := <-sub.C:
			if !ok {
				return
			}
			c.SSEvent("bookings", list)
		case <-ping.C:
			c.SSEvent("ping", time.Now().Unix())
		}
		c.Writer.Flush()
	}
}

// ListCustomersHandler handles GET /api/admin/customers.
func (h *BookingHandler) ListCustomersHandler(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		return
	}
	aggs, err := h.Bookings.ListCustomers(c.Request.Context(), f)
	if err != nil {
		respondError(c, "Failed to load customers", err)
		return
	}
	respondPage(c, aggs)
}

// GetCustomerHandler handles GET /api/admin/customers/:id.
func (h *BookingHandler) GetCustomerHandler(c *gin.Context) {
	agg, err := h.Bookings.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load customer", err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

func streamHeaders(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()
}

func parseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid query parameter", key+" must be YYYY-MM-DD or RFC3339")
			c.Abort()
			return time.Time{}, false
		}
	}
	return t, true
}
