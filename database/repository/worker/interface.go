package workerRepo

import (
	"context"

	"hoardify/models"
)

type WorkerRepository interface {
	GetAll(ctx context.Context) ([]models.Worker, error)
	GetByID(ctx context.Context, id string) (*models.Worker, error)
	Create(ctx context.Context, w *models.Worker) error
	Update(ctx context.Context, w *models.Worker) error
	Delete(ctx context.Context, id string) error
}
