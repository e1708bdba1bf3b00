package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "hoardify/database/repository/user"
	"hoardify/models"
	"hoardify/utils"

	"go.uber.org/zap"
)

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Accounts AccountAdmin
	Sessions SessionRevoker
	Records  ActivityRecorder
	Logger   *zap.Logger
}

func (s *DefaultUserService) ListUsers(ctx context.Context, role, search string) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch users: %w", models.ErrReadFailed, err)
	}

	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		switch role {
		case models.RoleAdmin:
			if u.Role != models.RoleAdmin {
				continue
			}
		case models.RoleUser:
			if !u.IsCustomer() {
				continue
			}
		}
		if q != "" && !matches(q, u.Name, u.Email, u.Phone, u.ID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, actor, userID string, req models.UserUpdateRequest) (*models.User, error) {
	if fields := utils.ValidateStruct(req); fields != nil {
		return nil, models.NewValidationError(fields)
	}

	updates := map[string]interface{}{}
	mirror := &UserToUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		updates["name"] = name
		mirror.DisplayName = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		updates["email"] = email
		mirror.Email = &email
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Role != nil {
		updates["role"] = *req.Role
		mirror.Role = req.Role
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError(map[string]string{"body": "no fields to update"})
	}

	current, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateFields(ctx, userID, updates); err != nil {
		return nil, writeErr(err)
	}
	if s.Accounts != nil && !mirror.empty() {
		if err := s.Accounts.UpdateUser(ctx, userID, mirror); err != nil {
			s.restore(ctx, current, updates)
			return nil, fmt.Errorf("%w: failed to update sign-in account: %w", models.ErrWriteFailed, err)
		}
	}
	if req.Role != nil && *req.Role != current.Role {
		s.revokeSessions(ctx, userID)
	}
	s.record(ctx, actor, models.ActionUserUpdate, userID, "", "")
	return s.Repo.GetByID(ctx, userID)
}

// SetDisabled writes the profile flag and then the sign-in account. When the
// account update fails the profile flag is put back.
func (s *DefaultUserService) SetDisabled(ctx context.Context, actor, userID string, disabled bool) (*models.User, error) {
	if actor == userID {
		return nil, models.NewValidationError(map[string]string{"id": "you cannot disable your own account"})
	}
	current, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"disabled": disabled}
	if err := s.Repo.UpdateFields(ctx, userID, updates); err != nil {
		return nil, writeErr(err)
	}
	if s.Accounts != nil {
		if err := s.Accounts.UpdateUser(ctx, userID, &UserToUpdate{Disabled: &disabled}); err != nil {
			s.restore(ctx, current, updates)
			return nil, fmt.Errorf("%w: failed to update sign-in account: %w", models.ErrWriteFailed, err)
		}
	}
	if disabled {
		s.revokeSessions(ctx, userID)
	}
	s.record(ctx, actor, models.ActionUserDisable, userID, fmt.Sprintf("%t", current.Disabled), fmt.Sprintf("%t", disabled))
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, actor, userID string) error {
	if actor == userID {
		return models.NewValidationError(map[string]string{"id": "you cannot delete your own account"})
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return writeErr(err)
	}
	if s.Accounts != nil {
		if err := s.Accounts.DeleteUser(ctx, userID); err != nil {
			s.logger().Warn("Profile deleted but auth account remains", zap.String("userID", userID), zap.Error(err))
		}
	}
	s.record(ctx, actor, models.ActionUserDelete, userID, "", "")
	return nil
}

func (s *DefaultUserService) CountUsers(ctx context.Context) (total, customers int, err error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", models.ErrReadFailed, err)
	}
	for _, u := range users {
		if u.IsCustomer() {
			customers++
		}
	}
	return len(users), customers, nil
}

func (s *DefaultUserService) record(ctx context.Context, actor, action, userID, from, to string) {
	if s.Records == nil {
		return
	}
	rec := models.ActivityRecord{Actor: actor, Action: action, Entity: "user", EntityID: userID, From: from, To: to}
	if _, err := s.Records.Create(ctx, rec); err != nil {
		s.logger().Warn("Failed to record user activity", zap.String("userID", userID), zap.Error(err))
	}
}

// restore writes back the profile values that updates overwrote.
func (s *DefaultUserService) restore(ctx context.Context, old *models.User, updates map[string]interface{}) {
	prev := make(map[string]interface{}, len(updates))
	for field := range updates {
		switch field {
		case "name":
			prev[field] = old.Name
		case "email":
			prev[field] = old.Email
		case "phone":
			prev[field] = old.Phone
		case "role":
			prev[field] = old.Role
		case "disabled":
			prev[field] = old.Disabled
		}
	}
	if err := s.Repo.UpdateFields(ctx, old.ID, prev); err != nil {
		s.logger().Error("Failed to restore profile after sign-in account update failed",
			zap.String("userID", old.ID), zap.Error(err))
	}
}

func (s *DefaultUserService) revokeSessions(ctx context.Context, userID string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.RevokeSessions(ctx, userID); err != nil {
		s.logger().Error("Failed to revoke sessions", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultUserService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func writeErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrWriteFailed, err)
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
