// models/user.go
package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a platform account. Customers are users whose role is not admin.
type User struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Phone     string    `firestore:"phone" json:"phone"`
	Role      string    `firestore:"role" json:"role"`
	FCMToken  string    `firestore:"fcmToken" json:"-"`
	Disabled  bool      `firestore:"disabled" json:"disabled"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}

// IsCustomer reports whether the user books hoardings rather than administers them.
func (u User) IsCustomer() bool {
	return u.Role != RoleAdmin
}

// UserUpdateRequest is a partial update of a user; nil fields are left untouched.
type UserUpdateRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Role  *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

// UserDisableRequest toggles sign-in for an account.
type UserDisableRequest struct {
	Disabled bool `json:"disabled"`
}
