package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrAlreadyReviewed = errors.New("tour already reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")
	ErrTourIDRequired  = errors.New("tourId is required")
)

// MaxCommentLen caps the stored comment. Longer submissions are truncated,
// never rejected, matching the client's own textarea limit.
const MaxCommentLen = 500

// Review is one user's rating of one tour. At most one review exists per
// (tourId, userId) pair; the repository enforces this inside the same
// transaction that recomputes the tour's aggregates.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	TourID    string    `json:"tourId" firestore:"tourId"`
	UserID    string    `json:"userId" firestore:"userId"`
	Rating    int       `json:"rating" firestore:"rating"`
	Comment   string    `json:"comment,omitempty" firestore:"comment"`
	UserEmail string    `json:"userEmail,omitempty" firestore:"userEmail"`
	Helpful   int64     `json:"helpful" firestore:"helpful"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// ValidRating reports whether r is an acceptable star value.
func ValidRating(r int) bool { return r >= 1 && r <= 5 }

// AverageRating is the tour-level aggregate: mean of all ratings, rounded to
// one decimal. Zero for an empty set.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}
