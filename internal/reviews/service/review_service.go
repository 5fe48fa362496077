package service

import (
	"context"
	"log"
	"strings"

	"github.com/visithercegovina/tours-backend/internal/api/http/middleware"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/reviews/domain"
)

// ReviewStore is the persistence surface the review service needs. AddAtomic
// carries the one-review-per-user check and the tour aggregate rewrite in a
// single unit.
type ReviewStore interface {
	ListByTour(ctx context.Context, tourID string) ([]domain.Review, error)
	AddAtomic(ctx context.Context, review *domain.Review) (rating float64, reviewCount int64, err error)
}

// UserCounter bumps the reviewer's denormalized counter.
type UserCounter interface {
	IncrementReviewCount(ctx context.Context, uid string, delta int64) error
}

// Invalidator drops the cached tour listing after an aggregate change.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type ReviewService struct {
	reviews ReviewStore
	users   UserCounter
	cache   Invalidator
}

// NewReviewService creates the review service. cache may be nil.
func NewReviewService(reviews ReviewStore, users UserCounter, cache Invalidator) *ReviewService {
	return &ReviewService{reviews: reviews, users: users, cache: cache}
}

// ListByTour returns a tour's reviews, newest first.
func (s *ReviewService) ListByTour(ctx context.Context, tourID string) ([]domain.Review, error) {
	return s.reviews.ListByTour(ctx, tourID)
}

// Add records the caller's review of a tour and synchronously updates the
// tour's rating and reviewCount. The reviewer's own counter bump happens
// after the transaction; a failure there leaves an understated counter for
// the reconciliation pass.
func (s *ReviewService) Add(ctx context.Context, caller auth.Caller, tourID string, rating int, comment string) error {
	if strings.TrimSpace(tourID) == "" {
		return domain.ErrTourIDRequired
	}
	if !domain.ValidRating(rating) {
		return domain.ErrInvalidRating
	}
	if runes := []rune(comment); len(runes) > domain.MaxCommentLen {
		comment = string(runes[:domain.MaxCommentLen])
	}

	review := &domain.Review{
		TourID:    tourID,
		UserID:    caller.UID,
		UserEmail: caller.Email,
		Rating:    rating,
		Comment:   comment,
		Helpful:   0,
	}

	newRating, newCount, err := s.reviews.AddAtomic(ctx, review)
	if err != nil {
		return err
	}

	rid := middleware.GetRequestID(ctx)
	if err := s.users.IncrementReviewCount(ctx, caller.UID, 1); err != nil {
		log.Printf("[reviews] rid=%s reviewCount increment failed uid=%s: %v", rid, caller.UID, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	log.Printf("[reviews] rid=%s tour=%s rating=%.1f count=%d", rid, tourID, newRating, newCount)
	return nil
}
