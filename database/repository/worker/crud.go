package workerRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hoardify/database"
	"hoardify/models"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
)

type firestoreWorkerRepo struct {
	client *firestore.Client
}

// NewFirestoreWorkerRepo returns a WorkerRepository backed by the workers collection.
func NewFirestoreWorkerRepo(client *firestore.Client) WorkerRepository {
	return &firestoreWorkerRepo{client: client}
}

func (r *firestoreWorkerRepo) coll() *firestore.CollectionRef {
	return r.client.Collection(database.WorkersCollection)
}

// GetAll returns workers ordered by name.
func (r *firestoreWorkerRepo) GetAll(ctx context.Context) ([]models.Worker, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	docs, err := r.coll().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	workers := make([]models.Worker, 0, len(docs))
	for _, doc := range docs {
		var w models.Worker
		if err := doc.DataTo(&w); err != nil {
			return nil, fmt.Errorf("failed to decode worker %s: %w", doc.Ref.ID, err)
		}
		w.ID = doc.Ref.ID
		workers = append(workers, w)
	}
	sort.SliceStable(workers, func(i, j int) bool {
		return strings.ToLower(workers[i].Name) < strings.ToLower(workers[j].Name)
	})
	return workers, nil
}

func (r *firestoreWorkerRepo) GetByID(ctx context.Context, id string) (*models.Worker, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := r.coll().Doc(id).Get(ctx)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, fmt.Errorf("worker %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	var w models.Worker
	if err := doc.DataTo(&w); err != nil {
		return nil, fmt.Errorf("failed to decode worker %s: %w", id, err)
	}
	w.ID = doc.Ref.ID
	return &w, nil
}

// Create assigns an ID when none is set and inserts the worker.
func (r *firestoreWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	if w.JoinedAt.IsZero() {
		w.JoinedAt = now
	}
	w.UpdatedAt = now

	if _, err := r.coll().Doc(w.ID).Create(ctx, w); err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Update replaces an existing worker document.
func (r *firestoreWorkerRepo) Update(ctx context.Context, w *models.Worker) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	ref := r.coll().Doc(w.ID)
	if _, err := ref.Get(ctx); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("worker %s: %w", w.ID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to load worker %s: %w", w.ID, err)
	}
	w.UpdatedAt = time.Now()
	if _, err := ref.Set(ctx, w); err != nil {
		return fmt.Errorf("failed to update worker %s: %w", w.ID, err)
	}
	return nil
}

func (r *firestoreWorkerRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if database.IsNotFound(err) {
			return fmt.Errorf("worker %s: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to delete worker %s: %w", id, err)
	}
	return nil
}
