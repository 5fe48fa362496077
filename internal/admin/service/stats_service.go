package service

import (
	"context"
	"math"

	reviewsdomain "github.com/visithercegovina/tours-backend/internal/reviews/domain"
	toursdomain "github.com/visithercegovina/tours-backend/internal/tours/domain"
	usersdomain "github.com/visithercegovina/tours-backend/internal/users/domain"
)

// Store interfaces: the admin surface reads whole collections and rewrites
// only the denormalized fields.

type TourStore interface {
	ListAll(ctx context.Context) ([]toursdomain.Tour, error)
	SetAggregates(ctx context.Context, id string, rating float64, reviewCount int64) error
}

type UserStore interface {
	ListAll(ctx context.Context) ([]usersdomain.User, error)
	SetCounts(ctx context.Context, uid string, tourCount, reviewCount int64) error
	SetRole(ctx context.Context, uid, role string) error
}

type ReviewStore interface {
	ListAll(ctx context.Context) ([]reviewsdomain.Review, error)
}

// Stats is the admin dashboard fold. Computed on every call, never stored.
type Stats struct {
	TotalTours    int64   `json:"totalTours"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalReviews  int64   `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
}

// ReconcileReport counts the documents whose denormalized fields had
// drifted and were rewritten.
type ReconcileReport struct {
	ToursRepaired int `json:"toursRepaired"`
	UsersRepaired int `json:"usersRepaired"`
}

type AdminService struct {
	tours   TourStore
	users   UserStore
	reviews ReviewStore
}

func NewAdminService(tours TourStore, users UserStore, reviews ReviewStore) *AdminService {
	return &AdminService{tours: tours, users: users, reviews: reviews}
}

// Aggregate folds the current tour and user sets into dashboard totals.
// totalTours counts every tour regardless of status; totalReviews sums the
// denormalized reviewCount; averageRating is the mean of tour ratings
// rounded to one decimal, zero on an empty set.
func (s *AdminService) Aggregate(ctx context.Context) (*Stats, error) {
	tours, err := s.tours.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalTours: int64(len(tours)),
		TotalUsers: int64(len(users)),
	}

	ratingSum := 0.0
	for _, t := range tours {
		stats.TotalReviews += t.ReviewCount
		ratingSum += t.Rating
	}
	if len(tours) > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(len(tours))*10) / 10
	}

	return stats, nil
}

// Reconcile recomputes every denormalized field from the source collections
// and writes back only the values that drifted: tour rating/reviewCount from
// the review set, user tourCount from authored tours (deleted ones included,
// matching the create-only increment), user reviewCount from authored
// reviews.
func (s *AdminService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	tours, err := s.tours.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ratingsByTour := make(map[string][]int)
	reviewsByUser := make(map[string]int64)
	for _, r := range reviews {
		ratingsByTour[r.TourID] = append(ratingsByTour[r.TourID], r.Rating)
		reviewsByUser[r.UserID]++
	}

	toursByUser := make(map[string]int64)
	report := &ReconcileReport{}

	for _, t := range tours {
		toursByUser[t.CreatedBy]++

		wantRating := reviewsdomain.AverageRating(ratingsByTour[t.ID])
		wantCount := int64(len(ratingsByTour[t.ID]))
		if t.Rating != wantRating || t.ReviewCount != wantCount {
			if err := s.tours.SetAggregates(ctx, t.ID, wantRating, wantCount); err != nil {
				return nil, err
			}
			report.ToursRepaired++
		}
	}

	for _, u := range users {
		wantTours := toursByUser[u.UID]
		wantReviews := reviewsByUser[u.UID]
		if u.TourCount != wantTours || u.ReviewCount != wantReviews {
			if err := s.users.SetCounts(ctx, u.UID, wantTours, wantReviews); err != nil {
				return nil, err
			}
			report.UsersRepaired++
		}
	}

	return report, nil
}

// Promote grants the admin role to the target user.
func (s *AdminService) Promote(ctx context.Context, uid string) error {
	return s.users.SetRole(ctx, uid, usersdomain.RoleAdmin)
}
