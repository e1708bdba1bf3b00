package models

import "time"

// Worker is a field or office staff member of the hoarding business.
type Worker struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Email       string    `firestore:"email" json:"email"`
	Phone       string    `firestore:"phone" json:"phone"`
	Designation string    `firestore:"designation" json:"designation"`
	PhotoURL    string    `firestore:"photoUrl" json:"photoUrl,omitempty"`
	Active      bool      `firestore:"active" json:"active"`
	JoinedAt    time.Time `firestore:"joinedAt" json:"joinedAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}

// WorkerInput is the admin form for creating or replacing a worker.
type WorkerInput struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=7,max=20"`
	Designation string `json:"designation" validate:"required,max=80"`
	PhotoURL    string `json:"photoUrl" validate:"omitempty,url"`
	Active      *bool  `json:"active,omitempty"`
}
