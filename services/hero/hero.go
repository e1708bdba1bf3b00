package hero

import (
	"context"
	"errors"
	"fmt"
	"strings"

	heroRepo "hoardify/database/repository/hero"
	"hoardify/models"
	"hoardify/utils"

	"go.uber.org/zap"
)

// HeroService manages the landing page hero banner.
type HeroService interface {
	ListSlides(ctx context.Context) ([]models.HeroSlide, error)
	CreateSlide(ctx context.Context, actor string, in models.HeroSlideInput) (*models.HeroSlide, error)
	UpdateSlide(ctx context.Context, actor, id string, in models.HeroSlideInput) (*models.HeroSlide, error)
	DeleteSlide(ctx context.Context, actor, id string) error
	Reorder(ctx context.Context, actor string, ids []string) error
}

type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}

type DefaultHeroService struct {
	Repo    heroRepo.HeroRepository
	Records ActivityRecorder
	Logger  *zap.Logger
}

func (s *DefaultHeroService) ListSlides(ctx context.Context) ([]models.HeroSlide, error) {
	slides, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	return slides, nil
}

// CreateSlide appends the slide after the last one unless an order is given.
func (s *DefaultHeroService) CreateSlide(ctx context.Context, actor string, in models.HeroSlideInput) (*models.HeroSlide, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	slide := fromInput(in)
	slide.Active = in.Active == nil || *in.Active
	if in.Order == 0 {
		existing, err := s.Repo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
		}
		for _, e := range existing {
			if e.Order >= slide.Order {
				slide.Order = e.Order + 1
			}
		}
	}
	if err := s.Repo.Create(ctx, &slide); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, slide.ID)
	return &slide, nil
}

func (s *DefaultHeroService) UpdateSlide(ctx context.Context, actor, id string, in models.HeroSlideInput) (*models.HeroSlide, error) {
	if fields := utils.ValidateStruct(in); fields != nil {
		return nil, models.NewValidationError(fields)
	}
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slide := fromInput(in)
	slide.ID = id
	slide.Active = existing.Active
	if in.Active != nil {
		slide.Active = *in.Active
	}
	if err := s.Repo.Update(ctx, &slide); err != nil {
		return nil, writeErr(err)
	}
	s.record(ctx, actor, id)
	return &slide, nil
}

func (s *DefaultHeroService) DeleteSlide(ctx context.Context, actor, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, id)
	return nil
}

// Reorder requires every current slide to appear exactly once.
func (s *DefaultHeroService) Reorder(ctx context.Context, actor string, ids []string) error {
	if fields := utils.ValidateStruct(models.HeroReorderRequest{IDs: ids}); fields != nil {
		return models.NewValidationError(fields)
	}
	existing, err := s.Repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[e.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return models.NewValidationError(map[string]string{"ids": fmt.Sprintf("unknown or repeated slide %q", id)})
		}
		seen[id] = true
	}
	if len(seen) != len(known) {
		return models.NewValidationError(map[string]string{"ids": "every slide must be listed"})
	}
	if err := s.Repo.Reorder(ctx, ids); err != nil {
		return writeErr(err)
	}
	s.record(ctx, actor, strings.Join(ids, ","))
	return nil
}

func fromInput(in models.HeroSlideInput) models.HeroSlide {
	return models.HeroSlide{
		Title:     strings.TrimSpace(in.Title),
		Subtitle:  strings.TrimSpace(in.Subtitle),
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		CTAText:   strings.TrimSpace(in.CTAText),
		CTALink:   in.CTALink,
		Order:     in.Order,
	}
}

func (s *DefaultHeroService) record(ctx context.Context, actor, id string) {
	if s.Records == nil {
		return
	}
	if _, err := s.Records.Create(ctx, models.ActivityRecord{Actor: actor, Action: models.ActionHeroWrite, Entity: "hero", EntityID: id}); err != nil && s.Logger != nil {
		s.Logger.Warn("Failed to record hero activity", zap.Error(err))
	}
}

func writeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
}
