package hoardingRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
)

type firestoreHoardingRepo struct {
	client *firestore.Client
}

// NewFirestoreHoardingRepo returns a HoardingRepository over categories/{category}/hoardings.
func NewFirestoreHoardingRepo(client *firestore.Client) HoardingRepository {
	return &firestoreHoardingRepo{client: client}
}

func (r *firestoreHoardingRepo) categories() *firestore.CollectionRef {
	return r.client.Collection(database.CategoriesCollection)
}

func (r *firestoreHoardingRepo) hoardings(categoryID string) *firestore.CollectionRef {
	return r.categories().Doc(categoryID).Collection(database.HoardingsCollection)
}

func (r *firestoreHoardingRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.categories().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	cats := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		var c models.Category
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", doc.Ref.ID, err)
		}
		c.ID = doc.Ref.ID
		if c.Name == "" {
			c.Name = c.ID
		}
		cats = append(cats, c)
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

// CreateCategory stores the category under its name, which doubles as its ID.
func (r *firestoreHoardingRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = c.Name
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if _, err := r.categories().Doc(c.ID).Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create category %s: %w", c.ID, err)
	}
	return nil
}

func (r *firestoreHoardingRepo) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	remaining, err := r.hoardings(id).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("failed to inspect category %s: %w", id, err)
	}
	if len(remaining) > 0 {
		return models.NewValidationError(map[string]string{"category": "category still contains hoardings"})
	}
	if _, err := r.categories().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("category %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
