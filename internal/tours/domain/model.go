package domain

import (
	"errors"
	"time"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Categories the client offers. Advisory only: the API stores whatever
// category it is given.
var Categories = []string{"priroda", "kulturno", "avantura", "gastronomija"}

var (
	ErrTourNotFound  = errors.New("tour not found")
	ErrNotOwner      = errors.New("caller does not own this tour")
	ErrTitleRequired = errors.New("title is required")
)

// Tour is a published point of interest. visitors is a store-side atomic
// counter; rating and reviewCount are derived from the tour's review set and
// rewritten on every review.
type Tour struct {
	ID             string     `json:"id" firestore:"-"`
	Title          string     `json:"title" firestore:"title"`
	Description    string     `json:"description" firestore:"description"`
	Location       string     `json:"location" firestore:"location"`
	Category       string     `json:"category" firestore:"category"`
	ImageURL       string     `json:"imageUrl" firestore:"imageUrl"`
	YoutubeURL     string     `json:"youtubeUrl,omitempty" firestore:"youtubeUrl"`
	CreatedBy      string     `json:"createdBy" firestore:"createdBy"`
	CreatedByEmail string     `json:"createdByEmail,omitempty" firestore:"createdByEmail"`
	Visitors       int64      `json:"visitors" firestore:"visitors"`
	Rating         float64    `json:"rating" firestore:"rating"`
	ReviewCount    int64      `json:"reviewCount" firestore:"reviewCount"`
	Status         string     `json:"status" firestore:"status"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty" firestore:"deletedAt,omitempty"`
}
