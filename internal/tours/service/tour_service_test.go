package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visithercegovina/tours-backend/internal/auth"
	"github.com/visithercegovina/tours-backend/internal/tours/domain"
	usersdomain "github.com/visithercegovina/tours-backend/internal/users/domain"
)

type fakeTourStore struct {
	tours  map[string]*domain.Tour
	nextID int

	patches   map[string]map[string]any
	listCalls int
}

func newFakeTourStore() *fakeTourStore {
	return &fakeTourStore{tours: map[string]*domain.Tour{}, patches: map[string]map[string]any{}}
}

func (f *fakeTourStore) Create(_ context.Context, tour *domain.Tour) (string, error) {
	f.nextID++
	id := fmt.Sprintf("tour-%d", f.nextID)
	t := *tour
	f.tours[id] = &t
	return id, nil
}

func (f *fakeTourStore) Get(_ context.Context, id string) (*domain.Tour, error) {
	t, ok := f.tours[id]
	if !ok {
		return nil, domain.ErrTourNotFound
	}
	cp := *t
	cp.ID = id
	return &cp, nil
}

func (f *fakeTourStore) Patch(_ context.Context, id string, fields map[string]any) error {
	if _, ok := f.tours[id]; !ok {
		return domain.ErrTourNotFound
	}
	f.patches[id] = fields
	return nil
}

func (f *fakeTourStore) SoftDelete(_ context.Context, id string) error {
	t, ok := f.tours[id]
	if !ok {
		return domain.ErrTourNotFound
	}
	t.Status = domain.StatusDeleted
	return nil
}

func (f *fakeTourStore) IncrementVisitors(_ context.Context, id string) error {
	t, ok := f.tours[id]
	if !ok {
		return domain.ErrTourNotFound
	}
	t.Visitors++
	return nil
}

func (f *fakeTourStore) ListActive(_ context.Context) ([]domain.Tour, error) {
	f.listCalls++
	out := []domain.Tour{}
	for id, t := range f.tours {
		if t.Status == domain.StatusActive {
			cp := *t
			cp.ID = id
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeTourStore) ListByOwner(_ context.Context, userID string) ([]domain.Tour, error) {
	out := []domain.Tour{}
	for id, t := range f.tours {
		if t.CreatedBy == userID && t.Status == domain.StatusActive {
			cp := *t
			cp.ID = id
			out = append(out, cp)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users      map[string]*usersdomain.User
	tourCounts map[string]int64
	incErr     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*usersdomain.User{}, tourCounts: map[string]int64{}}
}

func (f *fakeUserStore) GetByUID(_ context.Context, uid string) (*usersdomain.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, usersdomain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) IncrementTourCount(_ context.Context, uid string, delta int64) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.tourCounts[uid] += delta
	return nil
}

type memCache struct {
	tours       []domain.Tour
	set         bool
	invalidated int
}

func (m *memCache) GetTours(context.Context) ([]domain.Tour, bool) {
	if !m.set {
		return nil, false
	}
	return m.tours, true
}

func (m *memCache) SetTours(_ context.Context, tours []domain.Tour) {
	m.tours = tours
	m.set = true
}

func (m *memCache) Invalidate(context.Context) {
	m.set = false
	m.invalidated++
}

var owner = auth.Caller{UID: "owner-1", Email: "owner@example.com"}

func TestCreate_SeedsOwnershipAndAggregates(t *testing.T) {
	store := newFakeTourStore()
	users := newFakeUserStore()
	svc := NewTourService(store, users, nil)

	// Client-supplied ownership and aggregate fields must be discarded.
	input := domain.Tour{
		Title:       "Kravica",
		Location:    "Ljubuški",
		Category:    "priroda",
		CreatedBy:   "spoofed",
		Visitors:    99,
		Rating:      5,
		ReviewCount: 12,
		Status:      "deleted",
	}

	id, err := svc.Create(context.Background(), owner, input)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, owner.UID, got.CreatedBy)
	assert.Equal(t, owner.Email, got.CreatedByEmail)
	assert.Equal(t, int64(0), got.Visitors)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, int64(0), got.ReviewCount)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Nil(t, got.DeletedAt)

	assert.Equal(t, int64(1), users.tourCounts[owner.UID])
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := NewTourService(newFakeTourStore(), newFakeUserStore(), nil)

	_, err := svc.Create(context.Background(), owner, domain.Tour{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestCreate_CounterFailureIsNonFatal(t *testing.T) {
	store := newFakeTourStore()
	users := newFakeUserStore()
	users.incErr = errors.New("store down")
	svc := NewTourService(store, users, nil)

	id, err := svc.Create(context.Background(), owner, domain.Tour{Title: "Blagaj"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestPatch_OwnershipAndImmutableFields(t *testing.T) {
	store := newFakeTourStore()
	users := newFakeUserStore()
	svc := NewTourService(store, users, nil)

	id, err := svc.Create(context.Background(), owner, domain.Tour{Title: "Počitelj"})
	require.NoError(t, err)

	t.Run("stranger is rejected", func(t *testing.T) {
		err := svc.Patch(context.Background(), auth.Caller{UID: "stranger"}, id, map[string]any{"title": "x"})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("admin may patch any tour", func(t *testing.T) {
		users.users["admin-1"] = &usersdomain.User{UID: "admin-1", Role: usersdomain.RoleAdmin}
		err := svc.Patch(context.Background(), auth.Caller{UID: "admin-1"}, id, map[string]any{"title": "moderated"})
		assert.NoError(t, err)
	})

	t.Run("immutable fields are stripped", func(t *testing.T) {
		err := svc.Patch(context.Background(), owner, id, map[string]any{
			"title":     "Počitelj (stari grad)",
			"id":        "other",
			"createdBy": "spoofed",
			"createdAt": "1999-01-01",
		})
		require.NoError(t, err)

		fields := store.patches[id]
		assert.Equal(t, "Počitelj (stari grad)", fields["title"])
		assert.NotContains(t, fields, "id")
		assert.NotContains(t, fields, "createdBy")
		assert.NotContains(t, fields, "createdAt")
	})

	t.Run("unknown tour", func(t *testing.T) {
		err := svc.Patch(context.Background(), owner, "missing", map[string]any{"title": "x"})
		assert.ErrorIs(t, err, domain.ErrTourNotFound)
	})
}

func TestDelete_SoftDeletesAndHidesFromListing(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, newFakeUserStore(), nil)

	ctx := context.Background()
	id, err := svc.Create(ctx, owner, domain.Tour{Title: "Vjetrenica"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, id))

	// Document still exists, just not active.
	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, got.Status)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestDelete_NonOwnerRejected(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, newFakeUserStore(), nil)

	ctx := context.Background()
	id, err := svc.Create(ctx, owner, domain.Tour{Title: "Hutovo blato"})
	require.NoError(t, err)

	err = svc.Delete(ctx, auth.Caller{UID: "stranger"}, id)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestIncrementVisitors_Sequential(t *testing.T) {
	store := newFakeTourStore()
	svc := NewTourService(store, newFakeUserStore(), nil)

	ctx := context.Background()
	id, err := svc.Create(ctx, owner, domain.Tour{Title: "Radimlja"})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.IncrementVisitors(ctx, id))
	}

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Visitors)
}

func TestListActive_UsesCache(t *testing.T) {
	store := newFakeTourStore()
	c := &memCache{}
	svc := NewTourService(store, newFakeUserStore(), c)

	ctx := context.Background()
	_, err := svc.Create(ctx, owner, domain.Tour{Title: "Kravica"})
	require.NoError(t, err)

	first, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	storeReads := store.listCalls

	// Second read is served from the cache.
	second, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, storeReads, store.listCalls)

	// Any mutation invalidates.
	_, err = svc.Create(ctx, owner, domain.Tour{Title: "Blagaj"})
	require.NoError(t, err)

	third, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}
