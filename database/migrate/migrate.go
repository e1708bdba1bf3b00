// Package migrate moves legacy Firestore documents into the current layout.
// Every step is idempotent and can be re-run after a partial failure.
package migrate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// DefaultCategory receives flat hoardings that never had a category.
const DefaultCategory = "Uncategorized"

// Report counts what a run did, or would do in dry-run mode.
type Report struct {
	HoardingsMoved     int
	CategoriesCreated  int
	BookingsBackfilled int
	Failed             int
}

// Migrator runs the migration steps against one Firestore project.
type Migrator struct {
	Client *firestore.Client
	DryRun bool
	Logger *zap.Logger
	Now    func() time.Time
}

func (m *Migrator) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Run executes every step and returns the combined report.
func (m *Migrator) Run(ctx context.Context) (Report, error) {
	var rep Report
	if err := m.MoveFlatHoardings(ctx, &rep); err != nil {
		return rep, err
	}
	if err := m.BackfillBookings(ctx, &rep); err != nil {
		return rep, err
	}
	return rep, nil
}

// HoardingCategory picks the category a flat hoarding document belongs to.
func HoardingCategory(data map[string]interface{}) string {
	for _, key := range []string{"category", "categoryId", "categoryName"} {
		if s, ok := data[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" && !strings.Contains(s, "/") {
				return s
			}
		}
	}
	return DefaultCategory
}

// NestedHoarding returns the document stored under the category: category keys
// are dropped, "address" becomes "location" and availability defaults to true.
func NestedHoarding(data map[string]interface{}, now time.Time) map[string]interface{} {
	out := make(map[string]interface{}, len(data)+2)
	for k, v := range data {
		switch k {
		case "category", "categoryId", "categoryName":
			continue
		}
		out[k] = v
	}
	if _, ok := out["location"]; !ok {
		if addr, ok := out["address"]; ok {
			out["location"] = addr
		}
	}
	if _, ok := out["available"]; !ok {
		out["available"] = true
	}
	if _, ok := out["createdAt"]; !ok {
		out["createdAt"] = now
	}
	out["updatedAt"] = now
	return out
}

// BookingBackfill returns the fields a booking document is missing, or nil.
func BookingBackfill(data map[string]interface{}, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{}
	if s, _ := data["paymentStatus"].(string); s == "" {
		fields["paymentStatus"] = string(models.PaymentPending)
	}
	if s, _ := data["status"].(string); s == "" {
		fields["status"] = string(models.BookingPending)
	}
	if _, ok := data["updatedAt"]; !ok {
		if created, ok := data["createdAt"]; ok {
			fields["updatedAt"] = created
		} else {
			fields["updatedAt"] = now
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// MoveFlatHoardings moves hoardings/{id} to categories/{category}/hoardings/{id},
// creating missing category documents.
func (m *Migrator) MoveFlatHoardings(ctx context.Context, rep *Report) error {
	flat := m.Client.Collection(database.HoardingsCollection)
	categories := m.Client.Collection(database.CategoriesCollection)
	known := map[string]bool{}

	it := flat.Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list flat hoardings: %w", err)
		}

		cat := HoardingCategory(doc.Data())
		log := m.Logger.With(zap.String("hoardingID", doc.Ref.ID), zap.String("category", cat))
		if m.DryRun {
			log.Info("Would move hoarding")
			rep.HoardingsMoved++
			continue
		}

		now := m.now()
		created := false
		err = m.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			created = false
			catRef := categories.Doc(cat)
			if !known[cat] {
				if _, err := tx.Get(catRef); err != nil {
					if !database.IsNotFound(err) {
						return err
					}
					created = true
				}
			}
			if created {
				if err := tx.Create(catRef, map[string]interface{}{"name": cat, "createdAt": now}); err != nil {
					return err
				}
			}
			if err := tx.Set(catRef.Collection(database.HoardingsCollection).Doc(doc.Ref.ID), NestedHoarding(doc.Data(), now)); err != nil {
				return err
			}
			return tx.Delete(doc.Ref)
		})
		if err != nil {
			log.Error("Failed to move hoarding", zap.Error(err))
			rep.Failed++
			continue
		}
		known[cat] = true
		if created {
			rep.CategoriesCreated++
		}
		rep.HoardingsMoved++
		log.Info("Moved hoarding")
	}
	return nil
}

// BackfillBookings adds paymentStatus, status and updatedAt where missing.
func (m *Migrator) BackfillBookings(ctx context.Context, rep *Report) error {
	it := m.Client.Collection(database.BookingsCollection).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		fields := BookingBackfill(doc.Data(), m.now())
		if fields == nil {
			continue
		}
		log := m.Logger.With(zap.String("bookingID", doc.Ref.ID))
		if m.DryRun {
			log.Info("Would backfill booking", zap.Any("fields", fields))
			rep.BookingsBackfilled++
			continue
		}
		if _, err := doc.Ref.Update(ctx, database.UpdatesFromMap(fields)); err != nil {
			log.Error("Failed to backfill booking", zap.Error(err))
			rep.Failed++
			continue
		}
		rep.BookingsBackfilled++
	}
}
