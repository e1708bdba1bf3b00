package messageRepo

import (
	"context"
	"fmt"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
)

// MessageRepository defines access to contact-form messages.
type MessageRepository interface {
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
	// Watch streams the full message list, newest first, whenever it changes.
	Watch(ctx context.Context) (<-chan []models.ContactMessage, <-chan error)
}

type firestoreMessageRepo struct {
	client *firestore.Client
}

func NewFirestoreMessageRepo(client *firestore.Client) MessageRepository {
	return &firestoreMessageRepo{client: client}
}

func (r *firestoreMessageRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.MessagesCollection)
}

func (r *firestoreMessageRepo) newest() firestore.Query {
	return r.coll().OrderBy("createdAt", firestore.Desc)
}

func decodeMessages(docs []*firestore.DocumentSnapshot) ([]models.ContactMessage, error) {
	out := make([]models.ContactMessage, 0, len(docs))
	for _, doc := range docs {
		var m models.ContactMessage
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("failed to decode message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

func (r *firestoreMessageRepo) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.newest().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return decodeMessages(docs)
}

func (r *firestoreMessageRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("message %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}
	list, err := decodeMessages([]*firestore.DocumentSnapshot{doc})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *firestoreMessageRepo) SetRead(ctx context.Context, id string, read bool) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Update(ctx, []firestore.Update{{Path: "read", Value: read}}); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("message %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update message %s: %w", id, err)
	}
	return nil
}

func (r *firestoreMessageRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("message %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	return nil
}

func (r *firestoreMessageRepo) CountUnread(ctx context.Context) (int, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.coll().Where("read", "==", false).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return len(docs), nil
}

func (r *firestoreMessageRepo) Watch(ctx context.Context) (<-chan []models.ContactMessage, <-chan error) {
	out := make(chan []models.ContactMessage, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		it := r.newest().Snapshots(ctx)
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
			msgs, err := decodeMessages(docs)
			if err != nil {
				errs <- err
				return
			}
			select {
			case out <- msgs:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errs
}
