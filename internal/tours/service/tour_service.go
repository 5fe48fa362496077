package service

import (
	"context"
	"log"
	"strings"

	"github.com/visithercegovina/tours-backend/internal/api/http/middleware"
	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/tours/domain"
	usersdomain "github.com/visithercegovina/tours-backend/internal/users/domain"
)

// TourStore is the persistence surface the tour service needs.
type TourStore interface {
	Create(ctx context.Context, tour *domain.Tour) (string, error)
	Get(ctx context.Context, id string) (*domain.Tour, error)
	Patch(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) error
	IncrementVisitors(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]domain.Tour, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Tour, error)
}

// UserStore covers the profile lookups and the denormalized tour counter.
type UserStore interface {
	GetByUID(ctx context.Context, uid string) (*usersdomain.User, error)
	IncrementTourCount(ctx context.Context, uid string, delta int64) error
}

// ListingCache is an optional read cache for the public tour listing.
type ListingCache interface {
	GetTours(ctx context.Context) ([]domain.Tour, bool)
	SetTours(ctx context.Context, tours []domain.Tour)
	Invalidate(ctx context.Context)
}

type TourService struct {
	tours TourStore
	users UserStore
	cache ListingCache
}

// NewTourService creates the tour service. cache may be nil when Redis is not
// configured.
func NewTourService(tours TourStore, users UserStore, cache ListingCache) *TourService {
	return &TourService{tours: tours, users: users, cache: cache}
}

// ListActive returns all active tours, newest first, through the listing
// cache when one is configured.
func (s *TourService) ListActive(ctx context.Context) ([]domain.Tour, error) {
	if s.cache != nil {
		if tours, ok := s.cache.GetTours(ctx); ok {
			return tours, nil
		}
	}

	tours, err := s.tours.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetTours(ctx, tours)
	}

	return tours, nil
}

// ListByOwner returns the caller-visible tours of one user.
func (s *TourService) ListByOwner(ctx context.Context, userID string) ([]domain.Tour, error) {
	return s.tours.ListByOwner(ctx, userID)
}

// Get returns one tour by ID.
func (s *TourService) Get(ctx context.Context, id string) (*domain.Tour, error) {
	return s.tours.Get(ctx, id)
}

// Create inserts a tour owned by the caller. Ownership, aggregate and status
// fields from the input are discarded and re-seeded here. The creator's
// tourCount bump is a follow-up write: if it fails the tour still exists with
// an understated counter, which the reconciliation pass repairs.
func (s *TourService) Create(ctx context.Context, caller auth.Caller, input domain.Tour) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", domain.ErrTitleRequired
	}

	tour := input
	tour.ID = ""
	tour.CreatedBy = caller.UID
	tour.CreatedByEmail = caller.Email
	tour.Visitors = 0
	tour.Rating = 0
	tour.ReviewCount = 0
	tour.Status = domain.StatusActive
	tour.DeletedAt = nil

	id, err := s.tours.Create(ctx, &tour)
	if err != nil {
		return "", err
	}

	if err := s.users.IncrementTourCount(ctx, caller.UID, 1); err != nil {
		log.Printf("[tours] rid=%s tourCount increment failed uid=%s: %v",
			middleware.GetRequestID(ctx), caller.UID, err)
	}

	s.invalidate(ctx)
	return id, nil
}

// Patch applies a partial update to a tour the caller owns (admins may patch
// any tour). id, createdBy and createdAt are immutable and stripped from the
// patch. Derived fields are not recomputed here.
func (s *TourService) Patch(ctx context.Context, caller auth.Caller, id string, fields map[string]any) error {
	if err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	for _, k := range []string{"id", "createdBy", "createdAt"} {
		delete(fields, k)
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.tours.Patch(ctx, id, fields); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Delete soft-deletes a tour the caller owns (admins may delete any tour).
func (s *TourService) Delete(ctx context.Context, caller auth.Caller, id string) error {
	if err := s.authorize(ctx, caller, id); err != nil {
		return err
	}

	if err := s.tours.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// IncrementVisitors adds one view to the tour. Unauthenticated by design.
func (s *TourService) IncrementVisitors(ctx context.Context, id string) error {
	if err := s.tours.IncrementVisitors(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// authorize checks that the caller owns the tour or holds the admin role.
func (s *TourService) authorize(ctx context.Context, caller auth.Caller, tourID string) error {
	tour, err := s.tours.Get(ctx, tourID)
	if err != nil {
		return err
	}

	if tour.CreatedBy == caller.UID {
		return nil
	}

	user, err := s.users.GetByUID(ctx, caller.UID)
	if err == nil && user.IsAdmin() {
		return nil
	}

	return domain.ErrNotOwner
}

func (s *TourService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
