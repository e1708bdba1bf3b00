package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hoardify/models"
	"hoardify/services/booking"
	"hoardify/services/hoarding"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService produces the dashboard figures, charts, activity log and exports.
type ReportService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	MonthlyRevenue(ctx context.Context, months int) ([]models.MonthlyRevenue, error)
	CategoryBreakdown(ctx context.Context) ([]models.CategoryCount, error)
	Activity(ctx context.Context, limit int64) ([]models.ActivityRecord, error)
	ActivityCounts(ctx context.Context, since time.Time) ([]models.ActionCount, error)
	EntityHistory(ctx context.Context, entity, entityID string) ([]models.ActivityRecord, error)
	Export(ctx context.Context, dataset Dataset, format Format) (*Document, error)
}

// The narrow views of other services that reports read from.
type (
	BookingSource interface {
		ListBookings(ctx context.Context, f booking.Filter) ([]models.EnrichedBooking, error)
		ListCustomers(ctx context.Context, f booking.Filter) ([]models.CustomerAggregate, error)
	}
	UserCounter interface {
		CountUsers(ctx context.Context) (total, customers int, err error)
	}
	WorkerLister interface {
		ListWorkers(ctx context.Context, search string, activeOnly bool) ([]models.Worker, error)
	}
	HoardingLister interface {
		ListHoardings(ctx context.Context, q hoarding.Query) ([]models.Hoarding, error)
	}
	UnreadCounter interface {
		UnreadCount(ctx context.Context) (int, error)
	}
	ActivitySource interface {
		ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error)
		ListByEntity(ctx context.Context, entity, entityID string) ([]models.ActivityRecord, error)
		CountByAction(ctx context.Context, since time.Time) ([]models.ActionCount, error)
	}
)

type DefaultReportService struct {
	Bookings  BookingSource
	Users     UserCounter
	Workers   WorkerLister
	Hoardings HoardingLister
	Messages  UnreadCounter
	Records   ActivitySource
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Dashboard gathers every card concurrently; any failing source fails the dashboard.
func (s *DefaultReportService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var (
		stats     models.DashboardStats
		bookings  []models.EnrichedBooking
		hoardings []models.Hoarding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = s.Bookings.ListBookings(gctx, booking.Filter{})
		return err
	})
	g.Go(func() (err error) {
		stats.Users, stats.Customers, err = s.Users.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		workers, err := s.Workers.ListWorkers(gctx, "", false)
		stats.Workers = len(workers)
		return err
	})
	g.Go(func() (err error) {
		hoardings, err = s.Hoardings.ListHoardings(gctx, hoarding.Query{})
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadMessages, err = s.Messages.UnreadCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	stats.Hoardings = len(hoardings)
	for _, h := range hoardings {
		if h.Available {
			stats.Available++
		}
	}
	stats.Bookings = len(bookings)
	stats.BookingsStatus = make(map[models.BookingStatus]int, len(models.BookingStatuses))
	for _, st := range models.BookingStatuses {
		stats.BookingsStatus[st] = 0
	}
	paid, pending := decimal.Zero, decimal.Zero
	for _, b := range bookings {
		stats.BookingsStatus[b.Status]++
		if b.Status == models.BookingRejected {
			continue
		}
		amt := decimal.NewFromFloat(b.Amount)
		if b.PaymentStatus == models.PaymentPaid {
			paid = paid.Add(amt)
		} else {
			pending = pending.Add(amt)
		}
	}
	stats.RevenuePaid = paid.InexactFloat64()
	stats.RevenuePending = pending.InexactFloat64()
	return &stats, nil
}

func (s *DefaultReportService) MonthlyRevenue(ctx context.Context, months int) ([]models.MonthlyRevenue, error) {
	list, err := s.Bookings.ListBookings(ctx, booking.Filter{})
	if err != nil {
		return nil, err
	}
	return MonthlySeries(list, s.now(), months), nil
}

// MonthlySeries buckets bookings by the month of their activity time into the
// last months calendar months ending with now's month, oldest first. Rejected
// bookings count towards Bookings but not towards revenue.
func MonthlySeries(list []models.EnrichedBooking, now time.Time, months int) []models.MonthlyRevenue {
	if months <= 0 {
		months = 12
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	type bucket struct {
		count         int
		revenue, paid decimal.Decimal
	}
	buckets := make([]bucket, months)
	for _, b := range list {
		at := b.ActivityTime().In(now.Location())
		idx := (at.Year()-first.Year())*12 + int(at.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		buckets[idx].count++
		if b.Status == models.BookingRejected {
			continue
		}
		amt := decimal.NewFromFloat(b.Amount)
		buckets[idx].revenue = buckets[idx].revenue.Add(amt)
		if b.PaymentStatus == models.PaymentPaid {
			buckets[idx].paid = buckets[idx].paid.Add(amt)
		}
	}

	out := make([]models.MonthlyRevenue, months)
	for i, bk := range buckets {
		out[i] = models.MonthlyRevenue{
			Month:    first.AddDate(0, i, 0).Format("2006-01"),
			Bookings: bk.count,
			Revenue:  bk.revenue.InexactFloat64(),
			Paid:     bk.paid.InexactFloat64(),
		}
	}
	return out
}

func (s *DefaultReportService) CategoryBreakdown(ctx context.Context) ([]models.CategoryCount, error) {
	list, err := s.Bookings.ListBookings(ctx, booking.Filter{})
	if err != nil {
		return nil, err
	}
	return CategoryCounts(list), nil
}

// CategoryCounts groups bookings by category, most booked first. Bookings
// without a category are grouped under "uncategorized".
func CategoryCounts(list []models.EnrichedBooking) []models.CategoryCount {
	type acc struct {
		count   int
		revenue decimal.Decimal
	}
	byCat := make(map[string]*acc)
	for _, b := range list {
		cat := b.CategoryID
		if cat == "" {
			cat = "uncategorized"
		}
		a, ok := byCat[cat]
		if !ok {
			a = &acc{}
			byCat[cat] = a
		}
		a.count++
		if b.Status != models.BookingRejected {
			a.revenue = a.revenue.Add(decimal.NewFromFloat(b.Amount))
		}
	}

	out := make([]models.CategoryCount, 0, len(byCat))
	for cat, a := range byCat {
		out = append(out, models.CategoryCount{CategoryID: cat, Bookings: a.count, Revenue: a.revenue.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

func (s *DefaultReportService) Activity(ctx context.Context, limit int64) ([]models.ActivityRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	recs, err := s.Records.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return recs, nil
}

func (s *DefaultReportService) ActivityCounts(ctx context.Context, since time.Time) ([]models.ActionCount, error) {
	if since.IsZero() {
		since = s.now().AddDate(0, 0, -30)
	}
	counts, err := s.Records.CountByAction(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return counts, nil
}

func (s *DefaultReportService) EntityHistory(ctx context.Context, entity, entityID string) ([]models.ActivityRecord, error) {
	recs, err := s.Records.ListByEntity(ctx, entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return recs, nil
}
