package booking

import (
	"context"
	"sync"

	"hoardify/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Display fallbacks for references that cannot be resolved.
const (
	UnknownUser     = "Unknown User"
	UnknownHoarding = "Unknown Hoarding"
	NotAvailable    = "N/A"
)

const defaultLookupConcurrency = 8

// UserLookup resolves a customer by identifier.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// HoardingLookup resolves hoardings across every category partition, keyed by id.
type HoardingLookup interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]*models.Hoarding, error)
}

// Enricher attaches customer and hoarding display fields to bookings.
type Enricher struct {
	Users       UserLookup
	Hoardings   HoardingLookup
	Logger      *zap.Logger
	Concurrency int
}

// Enrich resolves the references of a single booking.
func (e *Enricher) Enrich(ctx context.Context, b models.Booking) models.EnrichedBooking {
	return e.EnrichAll(ctx, []models.Booking{b})[0]
}

// EnrichAll resolves every distinct customer once and all hoardings in a single
// batched lookup. Lookup failures are logged and rendered as fallbacks; they never
// fail the read.
func (e *Enricher) EnrichAll(ctx context.Context, bookings []models.Booking) []models.EnrichedBooking {
	users := make(map[string]*models.User)
	var hoardings map[string]*models.Hoarding
	var mu sync.Mutex

	limit := e.Concurrency
	if limit <= 0 {
		limit = defaultLookupConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	seenUsers := make(map[string]bool)
	seenHoardings := make(map[string]bool)
	var hoardingIDs []string
	for _, b := range bookings {
		if id := b.HoardingID; id != "" && !seenHoardings[id] {
			seenHoardings[id] = true
			hoardingIDs = append(hoardingIDs, id)
		}
	}
	if len(hoardingIDs) > 0 && e.Hoardings != nil {
		g.Go(func() error {
			found, err := e.Hoardings.FindByIDs(gctx, hoardingIDs)
			if err != nil {
				e.logger().Debug("Hoarding lookup failed", zap.Int("hoardings", len(hoardingIDs)), zap.Error(err))
				return nil
			}
			mu.Lock()
			hoardings = found
			mu.Unlock()
			return nil
		})
	}
	for _, b := range bookings {
		if id := b.CustomerID; id != "" && !seenUsers[id] && e.Users != nil {
			seenUsers[id] = true
			g.Go(func() error {
				u, err := e.Users.GetByID(gctx, id)
				if err != nil {
					e.logger().Debug("Customer lookup failed", zap.String("customerID", id), zap.Error(err))
					return nil
				}
				mu.Lock()
				users[id] = u
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	out := make([]models.EnrichedBooking, len(bookings))
	for i, b := range bookings {
		out[i] = Compose(b, users[b.CustomerID], hoardings[b.HoardingID])
	}
	return out
}

// Compose builds an enriched booking from already-resolved references; nil means unresolved.
func Compose(b models.Booking, u *models.User, h *models.Hoarding) models.EnrichedBooking {
	eb := models.EnrichedBooking{
		Booking:         b,
		CustomerName:    UnknownUser,
		CustomerEmail:   NotAvailable,
		CustomerPhone:   NotAvailable,
		HoardingTitle:   UnknownHoarding,
		HoardingAddress: NotAvailable,
	}
	if u != nil {
		eb.CustomerName = orDefault(u.Name, UnknownUser)
		eb.CustomerEmail = orDefault(u.Email, NotAvailable)
		eb.CustomerPhone = orDefault(u.Phone, NotAvailable)
	}
	if h != nil {
		eb.HoardingTitle = orDefault(h.Title, UnknownHoarding)
		eb.HoardingAddress = orDefault(h.Location, NotAvailable)
		if eb.CategoryID == "" {
			eb.CategoryID = h.CategoryID
		}
	}
	return eb
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (e *Enricher) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
