package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	workerRepo "hoardify/database/repository/worker"
	"hoardify/models"
	"hoardify/utils"

	"go.uber.org/zap"
)

// WorkerService manages staff records.
type WorkerService interface {
	ListWorkers(ctx context.Context, search string, activeOnly bool) ([]models.Worker, error)
	GetWorker(ctx context.Context, id string) (*models.Worker, error)
	CreateWorker(ctx context.Context, actor string, in models.WorkerInput) (*models.Worker, error)
	UpdateWorker(ctx context.Context, actor, id string, in models.WorkerInput) (*models.Worker, error)
	SetActive(ctx context.Context, actor, id string, active bool) (*models.Worker, error)
	DeleteWorker(ctx context.Context, actor, id string) error
}

// ActivityRecorder stores an audit entry for an admin write.
type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}

// DefaultWorkerService is the production implementation.
type DefaultWorkerService struct {
	Repo    workerRepo.WorkerRepository
	Records ActivityRecorder
	Logger  *zap.Logger
}

func (s *DefaultWorkerService) ListWorkers(ctx context.Context, search string, activeOnly bool) ([]models.Worker, error) {
	all, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Worker, 0, len(all))
	for _, w := range all {
		if activeOnly && !w.Active {
			continue
		}
		if q != "" && !containsAny(q, w.Name, w.Email, w.Phone, w.Designation) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *DefaultWorkerService) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultWorkerService) CreateWorker(ctx context.Context, actor string, in models.WorkerInput) (*models.Worker, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	w := fromInput(in)
	w.Active = in.Active == nil || *in.Active
	if err := s.Repo.Create(ctx, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
	}
	s.record(ctx, actor, models.ActionWorkerWrite, w.ID)
	return &w, nil
}

func (s *DefaultWorkerService) UpdateWorker(ctx context.Context, actor, id string, in models.WorkerInput) (*models.Worker, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w := fromInput(in)
	w.ID = id
	w.JoinedAt = existing.JoinedAt
	w.Active = existing.Active
	if in.Active != nil {
		w.Active = *in.Active
	}
	if err := s.Repo.Update(ctx, &w); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, models.ActionWorkerWrite, id)
	return &w, nil
}

func (s *DefaultWorkerService) SetActive(ctx context.Context, actor, id string, active bool) (*models.Worker, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Active = active
	if err := s.Repo.Update(ctx, w); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, models.ActionWorkerWrite, id)
	return w, nil
}

func (s *DefaultWorkerService) DeleteWorker(ctx context.Context, actor, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, models.ActionWorkerDelete, id)
	return nil
}

func fromInput(in models.WorkerInput) models.Worker {
	return models.Worker{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		Designation: strings.TrimSpace(in.Designation),
		PhotoURL:    in.PhotoURL,
	}
}

func (s *DefaultWorkerService) record(ctx context.Context, actor, action, id string) {
	if s.Records == nil {
		return
	}
	if _, err := s.Records.Create(ctx, models.ActivityRecord{Actor: actor, Action: action, Entity: "worker", EntityID: id}); err != nil && s.Logger != nil {
		s.Logger.Warn("Failed to record worker activity", zap.String("workerID", id), zap.Error(err))
	}
}

func writeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
