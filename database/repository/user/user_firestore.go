package userRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
)

// FirestoreUserRepo implements UserRepository on the users collection.
type FirestoreUserRepo struct {
	client *firestore.Client
}

// NewFirestoreUserRepo creates a new instance of UserRepository using Firestore.
func NewFirestoreUserRepo(client *firestore.Client) UserRepository {
	return &FirestoreUserRepo{client: client}
}

func (r *FirestoreUserRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.UsersCollection)
}

func (r *FirestoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.coll().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		var u models.User
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", doc.Ref.ID, err)
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

func (r *FirestoreUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	if _, err := r.coll().Doc(id).Update(ctx, database.UpdatesFromMap(fields)); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreUserRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	return nil
}
