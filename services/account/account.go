package account

import (
	"context"
	"errors"
	"fmt"

	"hoardify/models"
	"hoardify/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Auth      AuthClient
	Roles     RoleLookup
	Passwords PasswordVerifier
	Records   ActivityRecorder
	// Cache holds verified admin tokens; nil when Redis is unavailable.
	Cache  redis.Cmdable
	Logger *zap.Logger
}

// VerifyAdmin accepts tokens carrying the custom claim admin=true, or whose users
// document has role admin.
func (s *DefaultAccountService) VerifyAdmin(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}
	token, err := s.Auth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	if isAdmin, _ := token.Claims["admin"].(bool); isAdmin {
		return token.UID, nil
	}
	if s.Roles != nil {
		u, err := s.Roles.GetByID(ctx, token.UID)
		switch {
		case err == nil && u.Role == models.RoleAdmin:
			return token.UID, nil
		case err != nil && !errors.Is(err, models.ErrNotFound):
			return "", fmt.Errorf("failed to load role for %s: %w", token.UID, err)
		}
	}
	return "", fmt.Errorf("%w: %s is not an administrator", models.ErrForbidden, token.UID)
}

func (s *DefaultAccountService) Profile(ctx context.Context, uid string) (*models.AdminProfile, error) {
	rec, err := s.Auth.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, fmt.Errorf("account %s: %w", uid, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	p := &models.AdminProfile{
		UID:           rec.UID,
		Email:         rec.Email,
		DisplayName:   rec.DisplayName,
		PhotoURL:      rec.PhotoURL,
		EmailVerified: rec.EmailVerified,
	}
	if rec.UserMetadata != nil {
		p.LastSignIn = rec.UserMetadata.LastLogInTimestamp
	}
	return p, nil
}

func (s *DefaultAccountService) RevokeSessions(ctx context.Context, uid string) error {
	if err := s.Auth.RevokeRefreshTokens(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return fmt.Errorf("failed to revoke refresh tokens for %s: %w", uid, err)
	}
	if s.Cache != nil {
		if err := utils.EvictAdminTokens(ctx, s.Cache, uid); err != nil {
			return fmt.Errorf("failed to evict cached tokens for %s: %w", uid, err)
		}
	}
	return nil
}

// ChangePassword re-verifies the current password before setting the new one, then
// ends every session of the account, the current one included.
func (s *DefaultAccountService) ChangePassword(ctx context.Context, uid string, req models.PasswordChangeRequest) error {
	if fields := utils.ValidateStruct(req); fields != nil {
		return models.NewValidationError(fields)
	}
	if err := VerifyPasswordComplexity(req.NewPassword); err != nil {
		return models.NewValidationError(map[string]string{"newPassword": err.Error()})
	}
	if req.NewPassword == req.CurrentPassword {
		return models.NewValidationError(map[string]string{"newPassword": "new password must differ from the current one"})
	}

	rec, err := s.Auth.GetUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	if err := s.Passwords.VerifyPassword(ctx, rec.Email, req.CurrentPassword); err != nil {
		return err
	}

	if _, err := s.Auth.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(req.NewPassword)); err != nil {
		return fmt.Errorf("%w: failed to update password: %w", models.ErrWriteFailed, err)
	}
	if err := s.RevokeSessions(ctx, uid); err != nil {
		s.logger().Warn("Failed to revoke sessions", zap.String("uid", uid), zap.Error(err))
	}

	if s.Records != nil {
		rec := models.ActivityRecord{Actor: uid, Action: models.ActionPasswordChange, Entity: "account", EntityID: uid}
		if _, err := s.Records.Create(ctx, rec); err != nil {
			s.logger().Warn("Failed to record password change", zap.Error(err))
		}
	}
	s.logger().Info("Admin password changed", zap.String("uid", uid))
	return nil
}

func (s *DefaultAccountService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
