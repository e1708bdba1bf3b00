package models

import "time"

// HeroSlide is one entry of the landing page hero banner.
type HeroSlide struct {
	ID        string    `firestore:"-" json:"id"`
	Title     string    `firestore:"title" json:"title"`
	Subtitle  string    `firestore:"subtitle" json:"subtitle,omitempty"`
	MediaURL  string    `firestore:"mediaUrl" json:"mediaUrl"`
	MediaType string    `firestore:"mediaType" json:"mediaType"`
	CTAText   string    `firestore:"ctaText" json:"ctaText,omitempty"`
	CTALink   string    `firestore:"ctaLink" json:"ctaLink,omitempty"`
	Order     int       `firestore:"order" json:"order"`
	Active    bool      `firestore:"active" json:"active"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// HeroSlideInput is the admin form for a hero slide.
type HeroSlideInput struct {
	Title     string `json:"title" validate:"required,max=120"`
	Subtitle  string `json:"subtitle" validate:"max=240"`
	MediaURL  string `json:"mediaUrl" validate:"required,url"`
	MediaType string `json:"mediaType" validate:"required,oneof=image video"`
	CTAText   string `json:"ctaText" validate:"max=40"`
	CTALink   string `json:"ctaLink" validate:"omitempty,url"`
	Order     int    `json:"order" validate:"gte=0"`
	Active    *bool  `json:"active,omitempty"`
}

// HeroReorderRequest lists slide IDs in their new display order.
type HeroReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
