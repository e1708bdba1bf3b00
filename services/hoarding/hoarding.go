package hoarding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	hoardingRepo "hoardify/database/repository/hoarding"
	"hoardify/models"
	"hoardify/utils"

	"go.uber.org/zap"
)

// HoardingService manages the billboard inventory and its categories.
type HoardingService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, actor string, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, actor, id string) error

	ListHoardings(ctx context.Context, q Query) ([]models.Hoarding, error)
	GetHoarding(ctx context.Context, id string) (*models.Hoarding, error)
	CreateHoarding(ctx context.Context, actor, categoryID string, in models.HoardingInput) (*models.Hoarding, error)
	UpdateHoarding(ctx context.Context, actor, categoryID, id string, in models.HoardingInput) (*models.Hoarding, error)
	SetAvailability(ctx context.Context, actor, categoryID, id string, available bool) error
	DeleteHoarding(ctx context.Context, actor, categoryID, id string) error
}

// Query narrows the hoarding list.
type Query struct {
	CategoryID string
	Search     string
	// Available filters on availability when non-nil.
	Available *bool
}

// ActivityRecorder stores an audit entry for an admin write.
type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}

// DefaultHoardingService is the production implementation.
type DefaultHoardingService struct {
	Repo    hoardingRepo.HoardingRepository
	Records ActivityRecorder
	Logger  *zap.Logger
}

func (s *DefaultHoardingService) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return cats, nil
}

func (s *DefaultHoardingService) CreateCategory(ctx context.Context, actor string, in models.CategoryInput) (*models.Category, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	name := strings.TrimSpace(in.Name)
	if strings.Contains(name, "/") {
		return nil, models.NewValidationError(map[string]string{"name": "category name cannot contain '/'"})
	}
	c := &models.Category{ID: name, Name: name, Description: strings.TrimSpace(in.Description)}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
	}
	s.record(ctx, actor, models.ActionHoardingWrite, "category", c.ID)
	return c, nil
}

func (s *DefaultHoardingService) DeleteCategory(ctx context.Context, actor, id string) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, models.ActionHoardingDelete, "category", id)
	return nil
}

func (s *DefaultHoardingService) ListHoardings(ctx context.Context, q Query) ([]models.Hoarding, error) {
	var (
		list []models.Hoarding
		err  error
	)
	if q.CategoryID != "" {
		list, err = s.Repo.ListByCategory(ctx, q.CategoryID)
	} else {
		list, err = s.Repo.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Hoarding, 0, len(list))
	for _, h := range list {
		if q.Available != nil && h.Available != *q.Available {
			continue
		}
		if search != "" && !matches(search, h) {
			continue
		}
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out, nil
}

func (s *DefaultHoardingService) GetHoarding(ctx context.Context, id string) (*models.Hoarding, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *DefaultHoardingService) CreateHoarding(ctx context.Context, actor, categoryID string, in models.HoardingInput) (*models.Hoarding, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	h := fromInput(in)
	h.CategoryID = categoryID
	h.Available = in.Available == nil || *in.Available
	if err := s.Repo.Create(ctx, &h); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, models.ActionHoardingWrite, "hoarding", h.ID)
	return &h, nil
}

// UpdateHoarding replaces the editable fields; views are carried over.
func (s *DefaultHoardingService) UpdateHoarding(ctx context.Context, actor, categoryID, id string, in models.HoardingInput) (*models.Hoarding, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CategoryID != categoryID {
		return nil, fmt.Errorf("hoarding %s in %s: %w", id, categoryID, models.ErrNotFound)
	}

	h := fromInput(in)
	h.ID = id
	h.CategoryID = categoryID
	h.Views = existing.Views
	h.Available = existing.Available
	if in.Available != nil {
		h.Available = *in.Available
	}
	if err := s.Repo.Update(ctx, &h); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, models.ActionHoardingWrite, "hoarding", id)
	return &h, nil
}

func (s *DefaultHoardingService) SetAvailability(ctx context.Context, actor, categoryID, id string, available bool) error {
	if err := s.Repo.UpdateFields(ctx, categoryID, id, map[string]interface{}{"available": available}); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, models.ActionHoardingWrite, "hoarding", id)
	return nil
}

func (s *DefaultHoardingService) DeleteHoarding(ctx context.Context, actor, categoryID, id string) error {
	if err := s.Repo.Delete(ctx, categoryID, id); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, models.ActionHoardingDelete, "hoarding", id)
	return nil
}

func fromInput(in models.HoardingInput) models.Hoarding {
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return models.Hoarding{
		Title:     strings.TrimSpace(in.Title),
		Location:  strings.TrimSpace(in.Location),
		City:      strings.TrimSpace(in.City),
		Size:      strings.TrimSpace(in.Size),
		Price:     in.Price,
		ImageURLs: in.ImageURLs,
		Rating:    in.Rating,
		Tags:      tags,
		Trending:  in.Trending,
	}
}

func matches(q string, h models.Hoarding) bool {
	for _, f := range append([]string{h.Title, h.Location, h.City, h.CategoryID, h.ID}, h.Tags...) {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *DefaultHoardingService) record(ctx context.Context, actor, action, entity, id string) {
	if s.Records == nil {
		return
	}
	if _, err := s.Records.Create(ctx, models.ActivityRecord{Actor: actor, Action: action, Entity: entity, EntityID: id}); err != nil && s.Logger != nil {
		s.Logger.Warn("Failed to record hoarding activity", zap.String("id", id), zap.Error(err))
	}
}

func writeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
}
