package user

import (
	"context"

	"hoardify/models"
)

// UserService defines the admin operations on platform accounts.
type UserService interface {
	// ListUsers returns users matching role ("admin", "user" or empty for all) and search.
	ListUsers(ctx context.Context, role, search string) ([]models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, actor, userID string, req models.UserUpdateRequest) (*models.User, error)
	// SetDisabled blocks or restores sign-in for the account. Disabling ends its sessions.
	SetDisabled(ctx context.Context, actor, userID string, disabled bool) (*models.User, error)
	// DeleteUser removes the profile document and the sign-in account.
	DeleteUser(ctx context.Context, actor, userID string) error
	CountUsers(ctx context.Context) (total, customers int, err error)
}

// AccountAdmin is the part of the Firebase auth client used to mirror profile changes.
type AccountAdmin interface {
	UpdateUser(ctx context.Context, uid string, user *UserToUpdate) error
	DeleteUser(ctx context.Context, uid string) error
}

// SessionRevoker ends every signed-in session of an account.
type SessionRevoker interface {
	RevokeSessions(ctx context.Context, uid string) error
}

// ActivityRecorder stores an audit entry for an admin write.
type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}
