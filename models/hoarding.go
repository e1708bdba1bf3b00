package models

import "time"

// Category partitions hoardings, e.g. "Downtown Billboard".
type Category struct {
	ID          string    `firestore:"-" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Description string    `firestore:"description" json:"description,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// CategoryInput is the admin form for a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"max=500"`
}

// Hoarding is a billboard stored under categories/{category}/hoardings/{id}.
type Hoarding struct {
	ID         string    `firestore:"-" json:"id"`
	CategoryID string    `firestore:"-" json:"categoryId"`
	Title      string    `firestore:"title" json:"title"`
	Location   string    `firestore:"location" json:"location"`
	City       string    `firestore:"city" json:"city,omitempty"`
	Size       string    `firestore:"size" json:"size,omitempty"`
	Price      float64   `firestore:"price" json:"price"`
	Available  bool      `firestore:"available" json:"available"`
	ImageURLs  []string  `firestore:"imageUrls" json:"imageUrls,omitempty"`
	Rating     float64   `firestore:"rating" json:"rating"`
	Views      int       `firestore:"views" json:"views"`
	Tags       []string  `firestore:"tags" json:"tags,omitempty"`
	Trending   bool      `firestore:"trending" json:"trending"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt,omitempty"`
}

// HoardingInput is the admin form for creating or replacing a hoarding.
type HoardingInput struct {
	Title     string   `json:"title" validate:"required,min=2,max=160"`
	Location  string   `json:"location" validate:"required,max=300"`
	City      string   `json:"city" validate:"max=80"`
	Size      string   `json:"size" validate:"max=40"`
	Price     float64  `json:"price" validate:"gte=0"`
	Available *bool    `json:"available,omitempty"`
	ImageURLs []string `json:"imageUrls" validate:"omitempty,dive,url"`
	Rating    float64  `json:"rating" validate:"gte=0,max=5"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=40"`
	Trending  bool     `json:"trending"`
}

// AvailabilityRequest toggles whether a hoarding can be booked.
type AvailabilityRequest struct {
	Available bool `json:"available"`
}
