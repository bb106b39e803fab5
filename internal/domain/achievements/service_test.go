package achievements

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Achievement
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Achievement{}}
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Achievement, error) {
	a, ok := r.byID[id]
	if !ok {
		return Achievement{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (Achievement, error) {
	for _, a := range r.byID {
		if a.Name == name {
			return a, nil
		}
	}
	return Achievement{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]Achievement, error) {
	out := make([]Achievement, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *testRepo) GetOrCreate(ctx context.Context, a Achievement) (Achievement, bool, error) {
	if got, err := r.GetByName(ctx, a.Name); err == nil {
		return got, false, nil
	}
	r.byID[a.ID] = a
	return a, true, nil
}

// -------------------------
// Tests
// -------------------------

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	a, err := svc.Create(ctx, "  Climber ")
	require.NoError(t, err)
	assert.Equal(t, "Climber", a.Name)
	assert.NotEmpty(t, a.ID)

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestCreate_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	first, err := svc.Create(ctx, "Climber")
	require.NoError(t, err)

	again, err := svc.Create(ctx, "Climber")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, first.ID, again.ID)
}

func TestCreate_InvalidName(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), strings.Repeat("x", MaxNameLen+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrCreate_ReusesByName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	a, err := GetOrCreate(ctx, repo, "Hunter")
	require.NoError(t, err)
	b, err := GetOrCreate(ctx, repo, "Hunter ")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, repo.byID, 1)
}

func TestList_Alphabetical(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo())

	for _, n := range []string{"Sleeper", "Climber", "Hunter"} {
		_, err := svc.Create(ctx, n)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, a := range items {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Climber", "Hunter", "Sleeper"}, names)
}

func TestGetByID_Empty(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}
