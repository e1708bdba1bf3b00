package account

import (
	"context"

	"hoardify/models"

	"firebase.google.com/go/v4/auth"
)

// AuthClient is the part of the Firebase auth client the account service uses.
type AuthClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// RoleLookup reads the users document that may grant the admin role.
type RoleLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordVerifier re-checks an email/password pair against the sign-in provider.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) error
}

// ActivityRecorder stores an audit entry for an admin write.
type ActivityRecorder interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
}

// AccountService covers the signed-in administrator: token checks and settings.
type AccountService interface {
	// VerifyAdmin checks an ID token, including revocation and disabled accounts,
	// and returns the admin's uid.
	VerifyAdmin(ctx context.Context, idToken string) (string, error)
	// RevokeSessions revokes refresh tokens and drops cached token verifications.
	RevokeSessions(ctx context.Context, uid string) error
	Profile(ctx context.Context, uid string) (*models.AdminProfile, error)
	ChangePassword(ctx context.Context, uid string, req models.PasswordChangeRequest) error
}
