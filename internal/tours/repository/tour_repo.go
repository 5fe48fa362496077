package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/visithercegovina/tours-backend/internal/tours/domain"
)

const toursCollection = "tours"

// TourRepository persists tours in the tours collection.
type TourRepository struct {
	fs *firestore.Client
}

func NewTourRepository(fs *firestore.Client) *TourRepository {
	return &TourRepository{fs: fs}
}

func (r *TourRepository) col() *firestore.CollectionRef {
	return r.fs.Collection(toursCollection)
}

// Create inserts a tour and returns its generated document ID. createdAt is
// the server timestamp.
func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Create(ctx, tour); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Get retrieves a single tour by ID, regardless of status.
func (r *TourRepository) Get(ctx context.Context, id string) (*domain.Tour, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrTourNotFound
	}
	if err != nil {
		return nil, err
	}

	var tour domain.Tour
	if err := snap.DataTo(&tour); err != nil {
		return nil, err
	}
	tour.ID = snap.Ref.ID

	return &tour, nil
}

// Patch merges the given fields into the tour document.
func (r *TourRepository) Patch(ctx context.Context, id string, fields map[string]any) error {
	_, err := r.col().Doc(id).Set(ctx, fields, firestore.MergeAll)
	if status.Code(err) == codes.NotFound {
		return domain.ErrTourNotFound
	}
	return err
}

// SoftDelete flips the tour to deleted and stamps deletedAt. The document is
// never removed.
func (r *TourRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: domain.StatusDeleted},
		{Path: "deletedAt", Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrTourNotFound
	}
	return err
}

// IncrementVisitors adds one to the visitor counter, atomically on the store
// side.
func (r *TourRepository) IncrementVisitors(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "visitors", Value: firestore.Increment(1)},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrTourNotFound
	}
	return err
}

// SetAggregates overwrites the derived rating fields. Used by the
// reconciliation pass.
func (r *TourRepository) SetAggregates(ctx context.Context, id string, rating float64, reviewCount int64) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "reviewCount", Value: reviewCount},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrTourNotFound
	}
	return err
}

// ListActive returns all active tours, newest first.
func (r *TourRepository) ListActive(ctx context.Context) ([]domain.Tour, error) {
	return r.list(ctx, r.col().Where("status", "==", domain.StatusActive))
}

// ListByOwner returns the active tours created by the given user, newest
// first.
func (r *TourRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Tour, error) {
	q := r.col().
		Where("createdBy", "==", userID).
		Where("status", "==", domain.StatusActive)
	return r.list(ctx, q)
}

// ListAll returns every tour regardless of status.
func (r *TourRepository) ListAll(ctx context.Context) ([]domain.Tour, error) {
	return r.list(ctx, r.col().Query)
}

func (r *TourRepository) list(ctx context.Context, q firestore.Query) ([]domain.Tour, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Tour, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var tour domain.Tour
		if err := snap.DataTo(&tour); err != nil {
			return nil, err
		}
		tour.ID = snap.Ref.ID
		out = append(out, tour)
	}

	// Sorted in memory so the equality filters need no composite index.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}
