package database

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore collection names.
const (
	BookingsCollection   = "bookings"
	UsersCollection      = "users"
	WorkersCollection    = "workers"
	CategoriesCollection = "categories"
	HoardingsCollection  = "hoardings"
	MessagesCollection   = "contactMessages"
	HeroCollection       = "hero_section"
)

// NewContext creates a context with the given timeout.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// IsNotFound reports whether a Firestore call failed because the document does not exist.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsCanceled reports whether a listener stopped because its context ended.
func IsCanceled(err error) bool {
	c := status.Code(err)
	return c == codes.Canceled || c == codes.DeadlineExceeded || err == context.Canceled || err == context.DeadlineExceeded
}

// UpdatesFromMap turns a field map into Firestore updates, ordered by path.
func UpdatesFromMap(fields map[string]interface{}) []firestore.Update {
	paths := make([]string, 0, len(fields))
	for p := range fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	updates := make([]firestore.Update, 0, len(paths))
	for _, p := range paths {
		updates = append(updates, firestore.Update{Path: p, Value: fields[p]})
	}
	return updates
}
