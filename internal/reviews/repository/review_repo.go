package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/visithercegovina/tours-backend/internal/reviews/domain"
	toursdomain "github.com/visithercegovina/tours-backend/internal/tours/domain"
)

const (
	reviewsCollection = "reviews"
	toursCollection   = "tours"
)

// ReviewRepository persists reviews and owns the transactional review write
// that keeps the tour aggregates consistent.
type ReviewRepository struct {
	fs *firestore.Client
}

func NewReviewRepository(fs *firestore.Client) *ReviewRepository {
	return &ReviewRepository{fs: fs}
}

func (r *ReviewRepository) col() *firestore.CollectionRef {
	return r.fs.Collection(reviewsCollection)
}

// ListByTour returns all reviews for a tour, newest first.
func (r *ReviewRepository) ListByTour(ctx context.Context, tourID string) ([]domain.Review, error) {
	return r.list(ctx, r.col().Where("tourId", "==", tourID))
}

// ListAll returns every review. Used by the reconciliation pass.
func (r *ReviewRepository) ListAll(ctx context.Context) ([]domain.Review, error) {
	return r.list(ctx, r.col().Query)
}

func (r *ReviewRepository) list(ctx context.Context, q firestore.Query) ([]domain.Review, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Review, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var review domain.Review
		if err := snap.DataTo(&review); err != nil {
			return nil, err
		}
		review.ID = snap.Ref.ID
		out = append(out, review)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// AddAtomic inserts a review and rewrites the tour's rating and reviewCount
// in one Firestore transaction. The duplicate check, the aggregate
// recomputation and both writes either all commit or none do, so concurrent
// submissions cannot produce a second review for the same (tour, user) pair
// or clobber each other's aggregates. Returns the new aggregates.
func (r *ReviewRepository) AddAtomic(ctx context.Context, review *domain.Review) (float64, int64, error) {
	var (
		newRating float64
		newCount  int64
	)

	err := r.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		tourRef := r.fs.Collection(toursCollection).Doc(review.TourID)

		// All reads must precede writes inside a Firestore transaction.
		if _, err := tx.Get(tourRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return toursdomain.ErrTourNotFound
			}
			return err
		}

		dup := r.col().
			Where("tourId", "==", review.TourID).
			Where("userId", "==", review.UserID)
		existing, err := tx.Documents(dup).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.ErrAlreadyReviewed
		}

		all, err := tx.Documents(r.col().Where("tourId", "==", review.TourID)).GetAll()
		if err != nil {
			return err
		}

		ratings := make([]int, 0, len(all)+1)
		for _, snap := range all {
			var prev domain.Review
			if err := snap.DataTo(&prev); err != nil {
				return err
			}
			ratings = append(ratings, prev.Rating)
		}
		ratings = append(ratings, review.Rating)

		newRating = domain.AverageRating(ratings)
		newCount = int64(len(ratings))

		if err := tx.Create(r.col().NewDoc(), review); err != nil {
			return err
		}

		return tx.Update(tourRef, []firestore.Update{
			{Path: "rating", Value: newRating},
			{Path: "reviewCount", Value: newCount},
		})
	})
	if err != nil {
		return 0, 0, err
	}

	return newRating, newCount, nil
}
