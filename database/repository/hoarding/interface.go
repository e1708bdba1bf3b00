package hoardingRepo

import (
	"context"

	"hoardify/models"
)

// HoardingRepository covers categories and the hoardings partitioned under them.
type HoardingRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	// DeleteCategory removes an empty category; it fails with ErrValidation while hoardings remain.
	DeleteCategory(ctx context.Context, id string) error

	// GetAll reads every hoarding across all categories.
	GetAll(ctx context.Context) ([]models.Hoarding, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.Hoarding, error)
	// FindByID locates a hoarding without knowing its category.
	FindByID(ctx context.Context, id string) (*models.Hoarding, error)
	// FindByIDs locates many hoardings at once, keyed by id; unknown ids are left out.
	FindByIDs(ctx context.Context, ids []string) (map[string]*models.Hoarding, error)
	Create(ctx context.Context, h *models.Hoarding) error
	Update(ctx context.Context, h *models.Hoarding) error
	UpdateFields(ctx context.Context, categoryID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, categoryID, id string) error
}
