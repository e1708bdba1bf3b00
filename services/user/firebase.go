package user

import (
	"context"

	"hoardify/models"

	"firebase.google.com/go/v4/auth"
)

// UserToUpdate lists the sign-in account fields mirrored from the profile.
type UserToUpdate struct {
	Email       *string
	DisplayName *string
	Disabled    *bool
	// Role is mirrored as the admin custom claim.
	Role *string
}

func (u *UserToUpdate) empty() bool {
	return u.Email == nil && u.DisplayName == nil && u.Disabled == nil && u.Role == nil
}

// FirebaseAccounts adapts *auth.Client to AccountAdmin.
type FirebaseAccounts struct {
	Client *auth.Client
}

func (f FirebaseAccounts) UpdateUser(ctx context.Context, uid string, u *UserToUpdate) error {
	params := &auth.UserToUpdate{}
	if u.Email != nil {
		params = params.Email(*u.Email)
	}
	if u.DisplayName != nil {
		params = params.DisplayName(*u.DisplayName)
	}
	if u.Disabled != nil {
		params = params.Disabled(*u.Disabled)
	}
	if u.Role != nil {
		rec, err := f.Client.GetUser(ctx, uid)
		if auth.IsUserNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		params = params.CustomClaims(withAdminClaim(rec.CustomClaims, *u.Role))
	}
	_, err := f.Client.UpdateUser(ctx, uid, params)
	if auth.IsUserNotFound(err) {
		// profile-only users (seeded data) have no sign-in account
		return nil
	}
	return err
}

func (f FirebaseAccounts) DeleteUser(ctx context.Context, uid string) error {
	err := f.Client.DeleteUser(ctx, uid)
	if auth.IsUserNotFound(err) {
		return nil
	}
	return err
}

// withAdminClaim copies claims and sets "admin" to match role.
func withAdminClaim(claims map[string]interface{}, role string) map[string]interface{} {
	out := make(map[string]interface{}, len(claims)+1)
	for k, v := range claims {
		out[k] = v
	}
	out["admin"] = role == models.RoleAdmin
	return out
}
