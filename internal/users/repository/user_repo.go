package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/visithercegovina/tours-backend/internal/users/domain"
)

const usersCollection = "users"

// UserRepository persists user profiles in the users collection, keyed by
// Firebase UID.
type UserRepository struct {
	fs *firestore.Client
}

func NewUserRepository(fs *firestore.Client) *UserRepository {
	return &UserRepository{fs: fs}
}

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.fs.Collection(usersCollection)
}

// Create writes the profile document for a freshly registered identity.
// createdAt is filled by the server timestamp.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.col().Doc(user.UID).Create(ctx, user)
	return err
}

// GetByUID retrieves a user by Firebase UID.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = snap.Ref.ID

	return &user, nil
}

// ListActive returns all users with status "active".
func (r *UserRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, r.col().Where("status", "==", domain.StatusActive))
}

// ListAll returns every user regardless of status.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, r.col().Query)
}

func (r *UserRepository) list(ctx context.Context, q firestore.Query) ([]domain.User, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.User, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var user domain.User
		if err := snap.DataTo(&user); err != nil {
			return nil, err
		}
		user.ID = snap.Ref.ID
		out = append(out, user)
	}

	return out, nil
}

// SetRole updates only the role field.
func (r *UserRepository) SetRole(ctx context.Context, uid, role string) error {
	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	return err
}

// IncrementTourCount bumps the denormalized tour counter. The increment is
// atomic on the store side.
func (r *UserRepository) IncrementTourCount(ctx context.Context, uid string, delta int64) error {
	return r.increment(ctx, uid, "tourCount", delta)
}

// IncrementReviewCount bumps the denormalized review counter.
func (r *UserRepository) IncrementReviewCount(ctx context.Context, uid string, delta int64) error {
	return r.increment(ctx, uid, "reviewCount", delta)
}

func (r *UserRepository) increment(ctx context.Context, uid, field string, delta int64) error {
	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	return err
}

// SetCounts overwrites both counters. Used by the reconciliation pass.
func (r *UserRepository) SetCounts(ctx context.Context, uid string, tourCount, reviewCount int64) error {
	_, err := r.col().Doc(uid).Update(ctx, []firestore.Update{
		{Path: "tourCount", Value: tourCount},
		{Path: "reviewCount", Value: reviewCount},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrUserNotFound
	}
	return err
}
