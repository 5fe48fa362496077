package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reviewsdomain "github.com/visithercegovina/tours-backend/internal/reviews/domain"
	toursdomain "github.com/visithercegovina/tours-backend/internal/tours/domain"
	usersdomain "github.com/visithercegovina/tours-backend/internal/users/domain"
)

type fakeTours struct {
	tours []toursdomain.Tour
}

func (f *fakeTours) ListAll(context.Context) ([]toursdomain.Tour, error) { return f.tours, nil }

func (f *fakeTours) SetAggregates(_ context.Context, id string, rating float64, count int64) error {
	for i := range f.tours {
		if f.tours[i].ID == id {
			f.tours[i].Rating = rating
			f.tours[i].ReviewCount = count
			return nil
		}
	}
	return toursdomain.ErrTourNotFound
}

type fakeUsers struct {
	users []usersdomain.User
}

func (f *fakeUsers) ListAll(context.Context) ([]usersdomain.User, error) { return f.users, nil }

func (f *fakeUsers) SetCounts(_ context.Context, uid string, tourCount, reviewCount int64) error {
	for i := range f.users {
		if f.users[i].UID == uid {
			f.users[i].TourCount = tourCount
			f.users[i].ReviewCount = reviewCount
			return nil
		}
	}
	return usersdomain.ErrUserNotFound
}

func (f *fakeUsers) SetRole(_ context.Context, uid, role string) error {
	for i := range f.users {
		if f.users[i].UID == uid {
			f.users[i].Role = role
			return nil
		}
	}
	return usersdomain.ErrUserNotFound
}

type fakeReviews struct {
	reviews []reviewsdomain.Review
}

func (f *fakeReviews) ListAll(context.Context) ([]reviewsdomain.Review, error) {
	return f.reviews, nil
}

func TestAggregate_EmptySet(t *testing.T) {
	svc := NewAdminService(&fakeTours{}, &fakeUsers{}, &fakeReviews{})

	stats, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalTours)
	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.Equal(t, int64(0), stats.TotalReviews)
	assert.Equal(t, 0.0, stats.AverageRating)
}

func TestAggregate_CountsEveryStatusAndAverages(t *testing.T) {
	tours := &fakeTours{tours: []toursdomain.Tour{
		{ID: "t1", Status: toursdomain.StatusActive, Rating: 4.0, ReviewCount: 3},
		{ID: "t2", Status: toursdomain.StatusDeleted, Rating: 3.0, ReviewCount: 2},
		{ID: "t3", Status: toursdomain.StatusActive, Rating: 0, ReviewCount: 0},
	}}
	users := &fakeUsers{users: []usersdomain.User{
		{UID: "u1"}, {UID: "u2"},
	}}

	svc := NewAdminService(tours, users, &fakeReviews{})

	stats, err := svc.Aggregate(context.Background())
	require.NoError(t, err)

	// Deleted tours still count toward the totals.
	assert.Equal(t, int64(3), stats.TotalTours)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(5), stats.TotalReviews)
	assert.Equal(t, 2.3, stats.AverageRating) // (4+3+0)/3 rounded
}

func TestReconcile_RepairsDriftedCounters(t *testing.T) {
	// t1's aggregates and u1's counters have drifted from the source data.
	tours := &fakeTours{tours: []toursdomain.Tour{
		{ID: "t1", CreatedBy: "u1", Rating: 0, ReviewCount: 0},
		{ID: "t2", CreatedBy: "u1", Rating: 0, ReviewCount: 0, Status: toursdomain.StatusDeleted},
	}}
	users := &fakeUsers{users: []usersdomain.User{
		{UID: "u1", TourCount: 1, ReviewCount: 0},
		{UID: "u2", TourCount: 0, ReviewCount: 2},
	}}
	reviews := &fakeReviews{reviews: []reviewsdomain.Review{
		{TourID: "t1", UserID: "u2", Rating: 5},
		{TourID: "t1", UserID: "u1", Rating: 4},
	}}

	svc := NewAdminService(tours, users, reviews)

	report, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ToursRepaired)
	assert.Equal(t, 2, report.UsersRepaired)

	assert.Equal(t, 4.5, tours.tours[0].Rating)
	assert.Equal(t, int64(2), tours.tours[0].ReviewCount)

	// tourCount counts deleted tours too: the fast path only ever
	// increments on create.
	assert.Equal(t, int64(2), users.users[0].TourCount)
	assert.Equal(t, int64(1), users.users[0].ReviewCount)
	assert.Equal(t, int64(1), users.users[1].ReviewCount)

	// A second pass finds nothing to repair.
	report, err = svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.ToursRepaired)
	assert.Equal(t, 0, report.UsersRepaired)
}

func TestPromote(t *testing.T) {
	users := &fakeUsers{users: []usersdomain.User{{UID: "u1", Role: usersdomain.RoleUser}}}
	svc := NewAdminService(&fakeTours{}, users, &fakeReviews{})

	require.NoError(t, svc.Promote(context.Background(), "u1"))
	assert.Equal(t, usersdomain.RoleAdmin, users.users[0].Role)

	assert.ErrorIs(t, svc.Promote(context.Background(), "ghost"), usersdomain.ErrUserNotFound)
}
