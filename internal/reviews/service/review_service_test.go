package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/reviews/domain"
)

// fakeReviewStore mirrors the AddAtomic contract in memory: duplicate check
// and aggregate recomputation behave as one unit.
type fakeReviewStore struct {
	reviews []domain.Review

	rating float64
	count  int64
}

func (f *fakeReviewStore) ListByTour(_ context.Context, tourID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range f.reviews {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewStore) AddAtomic(_ context.Context, review *domain.Review) (float64, int64, error) {
	ratings := []int{}
	for _, r := range f.reviews {
		if r.TourID == review.TourID && r.UserID == review.UserID {
			return 0, 0, domain.ErrAlreadyReviewed
		}
		if r.TourID == review.TourID {
			ratings = append(ratings, r.Rating)
		}
	}

	f.reviews = append(f.reviews, *review)
	ratings = append(ratings, review.Rating)

	f.rating = domain.AverageRating(ratings)
	f.count = int64(len(ratings))
	return f.rating, f.count, nil
}

type fakeCounter struct {
	calls map[string]int64
	err   error
}

func (f *fakeCounter) IncrementReviewCount(_ context.Context, uid string, delta int64) error {
	if f.err != nil {
		return f.err
	}
	if f.calls == nil {
		f.calls = map[string]int64{}
	}
	f.calls[uid] += delta
	return nil
}

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate(context.Context) { f.calls++ }

var caller = auth.Caller{UID: "user-1", Email: "user@example.com"}

func TestAdd_RecomputesAggregates(t *testing.T) {
	store := &fakeReviewStore{}
	counter := &fakeCounter{}
	svc := NewReviewService(store, counter, nil)

	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, auth.Caller{UID: "a"}, "tour-1", 5, ""))
	require.NoError(t, svc.Add(ctx, auth.Caller{UID: "b"}, "tour-1", 4, "lijepo"))
	require.NoError(t, svc.Add(ctx, auth.Caller{UID: "c"}, "tour-1", 3, ""))

	assert.Equal(t, 4.0, store.rating)
	assert.Equal(t, int64(3), store.count)

	require.NoError(t, svc.Add(ctx, auth.Caller{UID: "d"}, "tour-1", 2, ""))
	assert.Equal(t, 3.5, store.rating)
	assert.Equal(t, int64(4), store.count)
}

func TestAdd_SecondReviewBySameUserConflicts(t *testing.T) {
	store := &fakeReviewStore{}
	counter := &fakeCounter{}
	svc := NewReviewService(store, counter, nil)

	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, caller, "tour-1", 5, ""))
	err := svc.Add(ctx, caller, "tour-1", 1, "changed my mind")
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	// Only the first review counts.
	assert.Equal(t, int64(1), store.count)
	assert.Equal(t, 5.0, store.rating)
	assert.Equal(t, int64(1), counter.calls[caller.UID])
}

func TestAdd_Validation(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{}, &fakeCounter{}, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, caller, "tour-1", 0, ""), domain.ErrInvalidRating)
	assert.ErrorIs(t, svc.Add(ctx, caller, "tour-1", 6, ""), domain.ErrInvalidRating)
	assert.ErrorIs(t, svc.Add(ctx, caller, "", 3, ""), domain.ErrTourIDRequired)
}

func TestAdd_CounterFailureIsNonFatal(t *testing.T) {
	store := &fakeReviewStore{}
	counter := &fakeCounter{err: errors.New("store down")}
	svc := NewReviewService(store, counter, nil)

	// The review itself commits; the drifted counter is left to the
	// reconciliation pass.
	require.NoError(t, svc.Add(context.Background(), caller, "tour-1", 4, ""))
	assert.Equal(t, int64(1), store.count)
}

func TestAdd_InvalidatesListingCache(t *testing.T) {
	inv := &fakeInvalidator{}
	svc := NewReviewService(&fakeReviewStore{}, &fakeCounter{}, inv)

	require.NoError(t, svc.Add(context.Background(), caller, "tour-1", 4, ""))
	assert.Equal(t, 1, inv.calls)
}

func TestAdd_TruncatesOversizedComment(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCounter{}, nil)

	long := strings.Repeat("ž", domain.MaxCommentLen+50)
	require.NoError(t, svc.Add(context.Background(), caller, "tour-1", 4, long))

	require.Len(t, store.reviews, 1)
	got := []rune(store.reviews[0].Comment)
	assert.Len(t, got, domain.MaxCommentLen)
	assert.Equal(t, 'ž', got[0], "truncation must not split runes")
}

func TestAdd_ShortCommentKeptVerbatim(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCounter{}, nil)

	require.NoError(t, svc.Add(context.Background(), caller, "tour-1", 4, "predivno"))
	require.Len(t, store.reviews, 1)
	assert.Equal(t, "predivno", store.reviews[0].Comment)
}

func TestAdd_StampsCallerIdentity(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeCounter{}, nil)

	require.NoError(t, svc.Add(context.Background(), caller, "tour-1", 4, "ok"))

	require.Len(t, store.reviews, 1)
	got := store.reviews[0]
	assert.Equal(t, caller.UID, got.UserID)
	assert.Equal(t, caller.Email, got.UserEmail)
	assert.Equal(t, int64(0), got.Helpful)
}
