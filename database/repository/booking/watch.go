package bookingRepo

import (
	"context"

	"hoardify/database"
	"hoardify/models"
)

// Watch opens a snapshot listener on the bookings collection. Each value sent is the
// complete current list; consumers replace their copy rather than merge. Both channels
// close when ctx ends or the listener fails.
func (r *FirestoreBookingRepo) Watch(ctx context.Context) (<-chan []models.Booking, <-chan error) {
	out := make(chan []models.Booking, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		it := r.coll().Snapshots(ctx)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if !database.IsCanceled(err) && ctx.Err() == nil {
					errs <- err
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- err
				return
			}
			bookings := make([]models.Booking, 0, len(docs))
			for _, doc := range docs {
				bookings = append(bookings, DecodeBooking(doc.Ref.ID, doc.Data()))
			}
			SortNewestFirst(bookings)

			select {
			case out <- bookings:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errs
}
