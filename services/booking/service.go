package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "hoardify/database/repository/booking"
	"hoardify/models"

	"go.uber.org/zap"
)

const (
	fieldStatus        = "status"
	fieldPaymentStatus = "paymentStatus"
	watchRetryDelay    = 5 * time.Second
)

// DefaultBookingService implements BookingService on top of the bookings repository and
// a live View kept current by Run.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Enricher *Enricher
	Policy   StatusPolicy
	View     *View
	Records  ActivityRecorder
	Notifier StatusNotifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Run keeps the view in sync with the bookings collection until ctx ends, reopening
// the listener after failures.
func (s *DefaultBookingService) Run(ctx context.Context) {
	for {
		err := s.watch(ctx)
		if ctx.Err() != nil {
			return
		}
		s.logger().Warn("Booking listener stopped, retrying", zap.Error(err), zap.Duration("delay", watchRetryDelay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
	}
}

func (s *DefaultBookingService) watch(ctx context.Context) error {
	updates, errs := s.Repo.Watch(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case list, ok := <-updates:
			if !ok {
				if err, ok := <-errs; ok && err != nil {
					return err
				}
				return errors.New("booking listener closed")
			}
			s.View.Replace(s.Enricher.EnrichAll(ctx, list))
			liveBookings.Set(float64(len(list)))
			s.logger().Debug("Booking snapshot applied", zap.Int("count", len(list)))
		}
	}
}

// Subscribe registers a consumer of live booking snapshots.
func (s *DefaultBookingService) Subscribe() *Subscription {
	return s.View.Subscribe()
}

// load returns the enriched list, from the live view when it is synced.
func (s *DefaultBookingService) load(ctx context.Context) ([]models.EnrichedBooking, error) {
	if s.View != nil {
		if list, synced := s.View.Snapshot(); synced {
			return list, nil
		}
	}
	raw, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return s.Enricher.EnrichAll(ctx, raw), nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, f Filter) ([]models.EnrichedBooking, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	return FilterBookings(list, f), nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.EnrichedBooking, error) {
	if s.View != nil {
		if b, ok := s.View.Get(id); ok {
			return &b, nil
		}
	}
	raw, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	eb := s.Enricher.Enrich(ctx, *raw)
	return &eb, nil
}

func (s *DefaultBookingService) ListCustomers(ctx context.Context, f Filter) ([]models.CustomerAggregate, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	return FilterCustomers(Aggregate(list), f), nil
}

func (s *DefaultBookingService) GetCustomer(ctx context.Context, customerID string) (*models.CustomerAggregate, error) {
	aggs, err := s.ListCustomers(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	for i := range aggs {
		if aggs[i].CustomerID == customerID {
			return &aggs[i], nil
		}
	}
	return nil, fmt.Errorf("customer %s: %w", customerID, models.ErrNotFound)
}

// UpdateStatus changes the approval status of a booking, subject to the status policy.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, actor, id string, status models.BookingStatus) (*models.EnrichedBooking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	return s.transition(ctx, transition{
		actor:  actor,
		id:     id,
		field:  fieldStatus,
		action: models.ActionBookingStatus,
		to:     string(status),
		current: func(b models.EnrichedBooking) string {
			return string(b.Status)
		},
		check: func(from string) error {
			return s.Policy.Allow(models.BookingStatus(from), status)
		},
		apply: func(b *models.EnrichedBooking) {
			b.Status = status
		},
	})
}

// UpdatePaymentStatus toggles the payment status; any valid value may follow any other.
func (s *DefaultBookingService) UpdatePaymentStatus(ctx context.Context, actor, id string, status models.PaymentStatus) (*models.EnrichedBooking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	return s.transition(ctx, transition{
		actor:  actor,
		id:     id,
		field:  fieldPaymentStatus,
		action: models.ActionBookingPayment,
		to:     string(status),
		current: func(b models.EnrichedBooking) string {
			return string(b.PaymentStatus)
		},
		apply: func(b *models.EnrichedBooking) {
			b.PaymentStatus = status
		},
	})
}

type transition struct {
	actor, id     string
	field, action string
	to            string
	current       func(models.EnrichedBooking) string
	check         func(from string) error
	apply         func(*models.EnrichedBooking)
}

func (s *DefaultBookingService) transition(ctx context.Context, t transition) (*models.EnrichedBooking, error) {
	log := s.logger().With(zap.String("bookingID", t.id), zap.String("field", t.field), zap.String("to", t.to))

	existing, err := s.GetBooking(ctx, t.id)
	if err != nil {
		return nil, err
	}
	from := t.current(*existing)
	if t.check != nil {
		if err := t.check(from); err != nil {
			return nil, err
		}
	}

	now := s.now()
	mutate := func(b *models.EnrichedBooking) {
		t.apply(b)
		b.UpdatedAt = now
	}
	revert := func() {}
	if s.View != nil {
		revert, _ = s.View.Apply(t.id, mutate)
	}

	err = s.Repo.UpdateFields(ctx, t.id, map[string]interface{}{
		t.field:     t.to,
		"updatedAt": now,
	})
	if err != nil {
		revert()
		transitionFailures.WithLabelValues(t.field).Inc()
		log.Error("Booking update failed, view reverted", zap.Error(err))
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
	}
	transitionsTotal.WithLabelValues(t.field, t.to).Inc()
	log.Info("Booking updated", zap.String("from", from), zap.String("actor", t.actor))

	updated := *existing
	mutate(&updated)

	if s.Records != nil {
		if _, err := s.Records.Create(ctx, models.ActivityRecord{
			Actor:    t.actor,
			Action:   t.action,
			Entity:   "booking",
			EntityID: t.id,
			From:     from,
			To:       t.to,
			At:       now,
		}); err != nil {
			log.Warn("Failed to record booking activity", zap.Error(err))
		}
	}

	if s.Notifier != nil && from != t.to && updated.CustomerID != "" {
		payload := models.BookingStatusPayload{
			BookingID:  t.id,
			CustomerID: updated.CustomerID,
			Field:      t.field,
			From:       from,
			To:         t.to,
		}
		if err := s.Notifier.EnqueueStatusChange(ctx, payload); err != nil {
			log.Warn("Failed to enqueue status notification", zap.Error(err))
		}
	}
	return &updated, nil
}
