package heroRepo

import (
	"context"
	"fmt"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

// HeroRepository stores the landing page hero slides.
type HeroRepository interface {
	GetAll(ctx context.Context) ([]models.HeroSlide, error)
	GetByID(ctx context.Context, id string) (*models.HeroSlide, error)
	Create(ctx context.Context, s *models.HeroSlide) error
	Update(ctx context.Context, s *models.HeroSlide) error
	Delete(ctx context.Context, id string) error
	// Reorder sets order = position for every listed slide in one transaction.
	Reorder(ctx context.Context, ids []string) error
}

type firestoreHeroRepo struct {
	client *firestore.Client
}

func NewFirestoreHeroRepo(client *firestore.Client) HeroRepository {
	return &firestoreHeroRepo{client: client}
}

func (r *firestoreHeroRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.HeroCollection)
}

func (r *firestoreHeroRepo) GetAll(ctx context.Context) ([]models.HeroSlide, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.coll().OrderBy("order", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list hero slides: %w", err)
	}
	slides := make([]models.HeroSlide, 0, len(docs))
	for _, doc := range docs {
		var s models.HeroSlide
		if err := doc.DataTo(&s); err != nil {
			return nil, fmt.Errorf("failed to decode hero slide %s: %w", doc.Ref.ID, err)
		}
		s.ID = doc.Ref.ID
		slides = append(slides, s)
	}
	return slides, nil
}

func (r *firestoreHeroRepo) GetByID(ctx context.Context, id string) (*models.HeroSlide, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("hero slide %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get hero slide %s: %w", id, err)
	}
	var s models.HeroSlide
	if err := doc.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode hero slide %s: %w", id, err)
	}
	s.ID = doc.Ref.ID
	return &s, nil
}

func (r *firestoreHeroRepo) Create(ctx context.Context, s *models.HeroSlide) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.UpdatedAt = time.Now()
	if _, err := r.coll().Doc(s.ID).Create(ctx, s); err != nil {
		return fmt.Errorf("failed to create hero slide: %w", err)
	}
	return nil
}

func (r *firestoreHeroRepo) Update(ctx context.Context, s *models.HeroSlide) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	ref := r.coll().Doc(s.ID)
	if _, err := ref.Get(ctx); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("hero slide %s: %w", s.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to load hero slide %s: %w", s.ID, err)
	}
	s.UpdatedAt = time.Now()
	if _, err := ref.Set(ctx, s); err != nil {
		return fmt.Errorf("failed to update hero slide %s: %w", s.ID, err)
	}
	return nil
}

func (r *firestoreHeroRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("hero slide %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete hero slide %s: %w", id, err)
	}
	return nil
}

func (r *firestoreHeroRepo) Reorder(ctx context.Context, ids []string) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		refs := make([]*firestore.DocumentRef, len(ids))
		for i, id := range ids {
			refs[i] = r.coll().Doc(id)
			// Reads must precede writes inside a Firestore transaction.
			if _, err := tx.Get(refs[i]); err != nil {
				if database.IsNotFound(err) {
					return fmt.Errorf("hero slide %s: %w", id, models.ErrNotFound)
				}
				return err
			}
		}
		for i, ref := range refs {
			if err := tx.Update(ref, []firestore.Update{
				{Path: "order", Value: i},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder hero slides: %w", err)
	}
	return nil
}
