package userRepo

import (
	"context"

	"hoardify/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetAll returns every user, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateFields modifies selected fields of a user.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes a user document by its ID.
	Delete(ctx context.Context, id string) error
}
