package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreBookingRepo implements BookingRepository on Firestore.
type FirestoreBookingRepo struct {
	client *firestore.Client
}

// NewFirestoreBookingRepo creates a BookingRepository backed by the bookings collection.
func NewFirestoreBookingRepo(client *firestore.Client) BookingRepository {
	return &FirestoreBookingRepo{client: client}
}

func (r *FirestoreBookingRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.BookingsCollection)
}

func (r *FirestoreBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	iter := r.coll().Documents(ctx)
	defer iter.Stop()

	bookings, err := readAll(iter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *FirestoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	b := DecodeBooking(doc.Ref.ID, doc.Data())
	return &b, nil
}

func (r *FirestoreBookingRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Update(ctx, database.UpdatesFromMap(fields)); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return nil
}

func readAll(iter *firestore.DocumentIterator) ([]models.Booking, error) {
	var bookings []models.Booking
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, DecodeBooking(doc.Ref.ID, doc.Data()))
	}
	SortNewestFirst(bookings)
	return bookings, nil
}

// SortNewestFirst orders bookings by creation time, most recent first.
func SortNewestFirst(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
