package models

import "time"

// ContactMessage is an enquiry submitted through the public contact form.
type ContactMessage struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Phone     string    `firestore:"phone" json:"phone,omitempty"`
	Subject   string    `firestore:"subject" json:"subject,omitempty"`
	Message   string    `firestore:"message" json:"message"`
	Read      bool      `firestore:"read" json:"read"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// MarkReadRequest flips the read flag of a message.
type MarkReadRequest struct {
	Read bool `json:"read"`
}
