package hoardingRepo

import (
	"context"
	"fmt"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

func decodeHoarding(doc *firestore.DocumentSnapshot) (models.Hoarding, error) {
	var h models.Hoarding
	if err := doc.DataTo(&h); err != nil {
		return h, fmt.Errorf("failed to decode hoarding %s: %w", doc.Ref.ID, err)
	}
	h.ID = doc.Ref.ID
	if parent := doc.Ref.Parent; parent != nil && parent.Parent != nil {
		h.CategoryID = parent.Parent.ID
	}
	// Early documents stored the location under "address".
	if h.Location == "" {
		if addr, ok := doc.Data()["address"].(string); ok {
			h.Location = addr
		}
	}
	return h, nil
}

func decodeHoardings(docs []*firestore.DocumentSnapshot) ([]models.Hoarding, error) {
	out := make([]models.Hoarding, 0, len(docs))
	for _, doc := range docs {
		h, err := decodeHoarding(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *firestoreHoardingRepo) GetAll(ctx context.Context) ([]models.Hoarding, error) {
	ctx, cancel := database.NewContext(ctx, 15*time.Second)
	defer cancel()

	docs, err := r.client.CollectionGroup(database.HoardingsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list hoardings: %w", err)
	}
	return decodeHoardings(docs)
}

func (r *firestoreHoardingRepo) ListByCategory(ctx context.Context, categoryID string) ([]models.Hoarding, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.hoardings(categoryID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list hoardings in %s: %w", categoryID, err)
	}
	return decodeHoardings(docs)
}

// FindByID resolves a hoarding through the hoardings collection group.
func (r *firestoreHoardingRepo) FindByID(ctx context.Context, id string) (*models.Hoarding, error) {
	found, err := r.FindByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	h, ok := found[id]
	if !ok {
		return nil, fmt.Errorf("hoarding %s: %w", id, models.ErrNotFound)
	}
	return h, nil
}

// FindByIDs resolves many hoardings in one collection-group scan that stops once
// every id is found. Ids that match nothing are absent from the result.
func (r *firestoreHoardingRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*models.Hoarding, error) {
	out := make(map[string]*models.Hoarding, len(ids))
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			want[id] = true
		}
	}
	if len(want) == 0 {
		return out, nil
	}

	ctx, cancel := database.NewContext(ctx, 15*time.Second)
	defer cancel()

	iter := r.client.CollectionGroup(database.HoardingsCollection).Documents(ctx)
	defer iter.Stop()
	for len(want) > 0 {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan hoardings: %w", err)
		}
		if !claim(want, doc.Ref) {
			continue
		}
		h, err := decodeHoarding(doc)
		if err != nil {
			return nil, err
		}
		out[h.ID] = &h
	}
	return out, nil
}

// claim reports whether ref is a hoarding still in want and marks it found.
// Only the ref's own path is inspected, never the category document, so a
// hoarding under a category without a document still resolves. The first
// match wins when an id repeats across categories.
func claim(want map[string]bool, ref *firestore.DocumentRef) bool {
	if ref == nil || ref.Parent == nil || ref.Parent.ID != database.HoardingsCollection {
		return false
	}
	if !want[ref.ID] {
		return false
	}
	delete(want, ref.ID)
	return true
}

func (r *firestoreHoardingRepo) Create(ctx context.Context, h *models.Hoarding) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now

	if _, err := r.categories().Doc(h.CategoryID).Get(ctx); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("category %s: %w", h.CategoryID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to load category %s: %w", h.CategoryID, err)
	}
	if _, err := r.hoardings(h.CategoryID).Doc(h.ID).Create(ctx, h); err != nil {
		return fmt.Errorf("failed to create hoarding: %w", err)
	}
	return nil
}

func (r *firestoreHoardingRepo) Update(ctx context.Context, h *models.Hoarding) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	ref := r.hoardings(h.CategoryID).Doc(h.ID)
	existing, err := ref.Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("hoarding %s: %w", h.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to load hoarding %s: %w", h.ID, err)
	}
	if created, ok := existing.Data()["createdAt"].(time.Time); ok {
		h.CreatedAt = created
	}
	h.UpdatedAt = time.Now()
	if _, err := ref.Set(ctx, h); err != nil {
		return fmt.Errorf("failed to update hoarding %s: %w", h.ID, err)
	}
	return nil
}

func (r *firestoreHoardingRepo) UpdateFields(ctx context.Context, categoryID, id string, fields map[string]interface{}) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	if _, err := r.hoardings(categoryID).Doc(id).Update(ctx, database.UpdatesFromMap(fields)); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("hoarding %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to update hoarding %s: %w", id, err)
	}
	return nil
}

func (r *firestoreHoardingRepo) Delete(ctx context.Context, categoryID, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.hoardings(categoryID).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("hoarding %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete hoarding %s: %w", id, err)
	}
	return nil
}
