package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"hoardify/models"
	"hoardify/services/booking"
	"hoardify/services/hoarding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func eb(id, cat string, amount float64, st models.BookingStatus, pay models.PaymentStatus, created time.Time) models.EnrichedBooking {
	return models.EnrichedBooking{
		Booking: models.Booking{
			ID: id, CustomerID: "c-" + id, CategoryID: cat, Amount: amount,
			Status: st, PaymentStatus: pay, CreatedAt: created,
			StartDate: created.AddDate(0, 0, 7), EndDate: created.AddDate(0, 1, 7),
		},
		CustomerName:  "Customer " + id,
		HoardingTitle: "Hoarding " + id,
	}
}

func sample() []models.EnrichedBooking {
	return []models.EnrichedBooking{
		eb("b1", "Downtown", 1000.10, models.BookingApproved, models.PaymentPaid, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		eb("b2", "Downtown", 500.20, models.BookingPending, models.PaymentPending, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)),
		eb("b3", "Highway", 700, models.BookingRejected, models.PaymentPending, time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)),
		eb("b4", "", 300, models.BookingApproved, models.PaymentPending, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

type fakeSources struct {
	bookings  []models.EnrichedBooking
	failUsers bool
	records   []models.ActivityRecord
	gotLimit  int64
}

func (f *fakeSources) ListBookings(ctx context.Context, _ booking.Filter) ([]models.EnrichedBooking, error) {
	return f.bookings, nil
}

func (f *fakeSources) ListCustomers(ctx context.Context, _ booking.Filter) ([]models.CustomerAggregate, error) {
	return booking.Aggregate(f.bookings), nil
}

func (f *fakeSources) CountUsers(ctx context.Context) (int, int, error) {
	if f.failUsers {
		return 0, 0, errors.New("firestore unavailable")
	}
	return 10, 8, nil
}

func (f *fakeSources) ListWorkers(ctx context.Context, _ string, _ bool) ([]models.Worker, error) {
	return []models.Worker{{ID: "w1"}, {ID: "w2"}}, nil
}

func (f *fakeSources) ListHoardings(ctx context.Context, _ hoarding.Query) ([]models.Hoarding, error) {
	return []models.Hoarding{{ID: "h1", Available: true}, {ID: "h2"}, {ID: "h3", Available: true}}, nil
}

func (f *fakeSources) UnreadCount(ctx context.Context) (int, error) { return 4, nil }

func (f *fakeSources) ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error) {
	f.gotLimit = limit
	return f.records, nil
}

func (f *fakeSources) ListByEntity(ctx context.Context, entity, id string) ([]models.ActivityRecord, error) {
	return f.records, nil
}

func (f *fakeSources) CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	return []models.ActionCount{{Action: models.ActionBookingStatus, Count: 3}}, nil
}

func newService(src *fakeSources) *DefaultReportService {
	return &DefaultReportService{
		Bookings: src, Users: src, Workers: src, Hoardings: src, Messages: src, Records: src,
		Now: func() time.Time { return now },
	}
}

func TestDashboard(t *testing.T) {
	stats, err := newService(&fakeSources{bookings: sample()}).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Users)
	assert.Equal(t, 8, stats.Customers)
	assert.Equal(t, 2, stats.Workers)
	assert.Equal(t, 3, stats.Hoardings)
	assert.Equal(t, 2, stats.Available)
	assert.Equal(t, 4, stats.Bookings)
	assert.Equal(t, 4, stats.UnreadMessages)
	assert.Equal(t, 2, stats.BookingsStatus[models.BookingApproved])
	assert.Equal(t, 1, stats.BookingsStatus[models.BookingRejected])
	assert.Equal(t, 1000.10, stats.RevenuePaid)
	assert.Equal(t, 800.20, stats.RevenuePending)
}

func TestDashboard_SourceFailure(t *testing.T) {
	_, err := newService(&fakeSources{failUsers: true}).Dashboard(context.Background())
	assert.Error(t, err)
}

func TestMonthlySeries(t *testing.T) {
	series := MonthlySeries(sample(), now, 3)
	require.Len(t, series, 3)

	assert.Equal(t, "2024-01", series[0].Month)
	assert.Zero(t, series[0].Bookings)

	assert.Equal(t, "2024-02", series[1].Month)
	assert.Equal(t, 2, series[1].Bookings)
	assert.Equal(t, 500.20, series[1].Revenue)
	assert.Zero(t, series[1].Paid)

	assert.Equal(t, "2024-03", series[2].Month)
	assert.Equal(t, 1000.10, series[2].Paid)
}

func TestMonthlySeries_DefaultsToYear(t *testing.T) {
	series := MonthlySeries(nil, now, 0)
	require.Len(t, series, 12)
	assert.Equal(t, "2023-04", series[0].Month)
	assert.Equal(t, "2024-03", series[11].Month)
}

func TestCategoryCounts(t *testing.T) {
	counts := CategoryCounts(sample())
	require.Len(t, counts, 3)
	assert.Equal(t, models.CategoryCount{CategoryID: "Downtown", Bookings: 2, Revenue: 1500.30}, counts[0])
	assert.Equal(t, "Highway", counts[1].CategoryID)
	assert.Zero(t, counts[1].Revenue)
	assert.Equal(t, "uncategorized", counts[2].CategoryID)
}

func TestActivity_ClampsLimit(t *testing.T) {
	src := &fakeSources{records: []models.ActivityRecord{{ID: "r1"}}}
	svc := newService(src)

	recs, err := svc.Activity(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.EqualValues(t, 100, src.gotLimit)

	_, err = svc.Activity(context.Background(), 20)
	require.NoError(t, err)
	assert.EqualValues(t, 20, src.gotLimit)
}

func TestExport_CSV(t *testing.T) {
	doc, err := newService(&fakeSources{bookings: sample()}).Export(context.Background(), DatasetBookings, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "bookings-20240315.csv", doc.Filename)
	assert.Equal(t, "text/csv", doc.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(doc.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Booking ID", rows[0][0])
	assert.Equal(t, []string{"b1", "Customer b1"}, rows[1][:2])
	assert.Equal(t, "1000.10", rows[1][8])
}

func TestExport_XLSX(t *testing.T) {
	doc, err := newService(&fakeSources{bookings: sample()}).Export(context.Background(), DatasetCustomers, FormatXLSX)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Customer ID", rows[0][0])
}

func TestExport_PDF(t *testing.T) {
	doc, err := newService(&fakeSources{bookings: sample()}).Export(context.Background(), DatasetBookings, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
}

func TestExport_Unknown(t *testing.T) {
	svc := newService(&fakeSources{})
	_, err := svc.Export(context.Background(), "invoices", FormatCSV)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Export(context.Background(), DatasetBookings, "docx")
	assert.ErrorIs(t, err, models.ErrValidation)
}
