package cats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/platform/imagedata"
	"kittygram/internal/ports/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test store (in-memory, copy-on-write)
// -------------------------

type testData struct {
	cats  map[string]Cat
	achs  map[string]achievements.Achievement // by id
	links map[string]AchievementCat
}

func (d *testData) clone() *testData {
	c := &testData{
		cats:  make(map[string]Cat, len(d.cats)),
		achs:  make(map[string]achievements.Achievement, len(d.achs)),
		links: make(map[string]AchievementCat, len(d.links)),
	}
	for k, v := range d.cats {
		c.cats[k] = v
	}
	for k, v := range d.achs {
		c.achs[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	return c
}

type testStore struct {
	data *testData
	// failOnLink hace fallar AddAchievement para ese nombre de logro.
	failOnLink string
}

func newTestStore() *testStore {
	return &testStore{data: &testData{
		cats:  map[string]Cat{},
		achs:  map[string]achievements.Achievement{},
		links: map[string]AchievementCat{},
	}}
}

func (s *testStore) Cats() Repository                       { return testCatRepo{s} }
func (s *testStore) Achievements() achievements.Repository { return testAchRepo{s} }

func (s *testStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	tx := &testStore{data: s.data.clone(), failOnLink: s.failOnLink}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

type testCatRepo struct{ s *testStore }

func (r testCatRepo) Create(ctx context.Context, c Cat) error {
	if _, ok := r.s.data.cats[c.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.s.data.cats[c.ID] = c
	return nil
}

func (r testCatRepo) Update(ctx context.Context, c Cat) error {
	if _, ok := r.s.data.cats[c.ID]; !ok {
		return ErrNotFound
	}
	r.s.data.cats[c.ID] = c
	return nil
}

func (r testCatRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.data.cats[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.data.cats, id)
	return r.ClearAchievements(ctx, id)
}

func (r testCatRepo) GetByID(ctx context.Context, id string) (Cat, error) {
	c, ok := r.s.data.cats[id]
	if !ok {
		return Cat{}, ErrNotFound
	}
	c.Achievements = nil
	for _, l := range r.s.data.links {
		if l.CatID == id {
			c.Achievements = append(c.Achievements, r.s.data.achs[l.AchievementID])
		}
	}
	sort.Slice(c.Achievements, func(i, j int) bool { return c.Achievements[i].Name < c.Achievements[j].Name })
	return c, nil
}

func (r testCatRepo) List(ctx context.Context, f ListFilter) ([]Cat, error) {
	out := make([]Cat, 0)
	for id, c := range r.s.data.cats {
		if f.OwnerUserID != "" && c.OwnerUserID != f.OwnerUserID {
			continue
		}
		full, _ := r.GetByID(ctx, id)
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r testCatRepo) AddAchievement(ctx context.Context, l AchievementCat) error {
	if r.s.failOnLink != "" && r.s.data.achs[l.AchievementID].Name == r.s.failOnLink {
		return errors.New("repo: link failed")
	}
	for _, x := range r.s.data.links {
		if x.CatID == l.CatID && x.AchievementID == l.AchievementID {
			return ErrDuplicateAchievement
		}
	}
	r.s.data.links[l.ID] = l
	return nil
}

func (r testCatRepo) ClearAchievements(ctx context.Context, catID string) error {
	for id, l := range r.s.data.links {
		if l.CatID == catID {
			delete(r.s.data.links, id)
		}
	}
	return nil
}

type testAchRepo struct{ s *testStore }

func (r testAchRepo) GetByID(ctx context.Context, id string) (achievements.Achievement, error) {
	a, ok := r.s.data.achs[id]
	if !ok {
		return achievements.Achievement{}, achievements.ErrNotFound
	}
	return a, nil
}

func (r testAchRepo) GetByName(ctx context.Context, name string) (achievements.Achievement, error) {
	for _, a := range r.s.data.achs {
		if a.Name == name {
			return a, nil
		}
	}
	return achievements.Achievement{}, achievements.ErrNotFound
}

func (r testAchRepo) List(ctx context.Context) ([]achievements.Achievement, error) {
	out := make([]achievements.Achievement, 0, len(r.s.data.achs))
	for _, a := range r.s.data.achs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r testAchRepo) GetOrCreate(ctx context.Context, a achievements.Achievement) (achievements.Achievement, bool, error) {
	if got, err := r.GetByName(ctx, a.Name); err == nil {
		return got, false, nil
	}
	r.s.data.achs[a.ID] = a
	return a, true, nil
}

// -------------------------
// Test blob store
// -------------------------

type testBlobs struct {
	objects map[string][]byte
}

func newTestBlobs() *testBlobs { return &testBlobs{objects: map[string][]byte{}} }

func (b *testBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	b.objects[key] = data
	return nil
}

func (b *testBlobs) Get(ctx context.Context, key string) (blob.Object, error) {
	return blob.Object{}, errors.New("not used")
}

func (b *testBlobs) Delete(ctx context.Context, key string) error {
	if _, ok := b.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(b.objects, key)
	return nil
}

func (b *testBlobs) URL(key string) string { return "/media/" + key }

// -------------------------
// Helpers
// -------------------------

func newTestService(t *testing.T) (*Service, *testStore, *testBlobs) {
	t.Helper()
	store := newTestStore()
	blobs := newTestBlobs()
	svc := NewService(store, blobs)

	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, blobs
}

func achievementNames(c Cat) []string {
	out := make([]string, 0, len(c.Achievements))
	for _, a := range c.Achievements {
		out = append(out, a.Name)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// -------------------------
// Tests
// -------------------------

func TestCreate_WithAchievements(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{
		Name:         "Barsik",
		Color:        "black",
		BirthYear:    2020,
		Achievements: []string{"Climber", "Hunter"},
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", c.OwnerUserID)
	assert.Equal(t, []string{"Climber", "Hunter"}, achievementNames(c))
	assert.Equal(t, 4, c.Age(svc.now()))
	assert.Len(t, store.data.achs, 2)
	assert.Len(t, store.data.links, 2)
}

func TestCreate_ReusesExistingAchievement(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	a, err := svc.Create(ctx, "u1", CreateInput{Name: "A", Color: "black", BirthYear: 2020, Achievements: []string{"Climber"}})
	require.NoError(t, err)
	b, err := svc.Create(ctx, "u2", CreateInput{Name: "B", Color: "white", BirthYear: 2021, Achievements: []string{"Climber"}})
	require.NoError(t, err)

	assert.Len(t, store.data.achs, 1)
	assert.Equal(t, a.Achievements[0].ID, b.Achievements[0].ID)
}

func TestCreate_DuplicateDescriptorsCollapse(t *testing.T) {
	svc, store, _ := newTestService(t)

	c, err := svc.Create(context.Background(), "u1", CreateInput{
		Name: "Tom", Color: "gray", BirthYear: 2019,
		Achievements: []string{"Climber", " Climber "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Climber"}, achievementNames(c))
	assert.Len(t, store.data.links, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020})
	assert.ErrorIs(t, err, ErrInvalidInput)

	cases := []CreateInput{
		{Name: "", Color: "black", BirthYear: 2020},
		{Name: "ThisNameIsWayTooLong", Color: "black", BirthYear: 2020},
		{Name: "Tom", Color: "black", BirthYear: 1900},
		{Name: "Tom", Color: "black", BirthYear: 2100},
		{Name: "Tom", Color: "black", BirthYear: 2020, Achievements: []string{"  "}},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, "u1", in)
		assert.Error(t, err, "%+v", in)
	}
}

func TestCreate_PartialFailureRollsBack(t *testing.T) {
	svc, store, blobs := newTestService(t)
	store.failOnLink = "Hunter"

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		Name: "Tom", Color: "black", BirthYear: 2020,
		Image:        &imagedata.File{Name: "temp.png", ContentType: "image/png", Data: []byte("x")},
		Achievements: []string{"Climber", "Hunter"},
	})
	require.Error(t, err)

	assert.Empty(t, store.data.cats)
	assert.Empty(t, store.data.achs)
	assert.Empty(t, store.data.links)
	assert.Empty(t, blobs.objects, "uploaded image must be removed")
}

func TestCreate_StoresImage(t *testing.T) {
	svc, _, blobs := newTestService(t)

	c, err := svc.Create(context.Background(), "u1", CreateInput{
		Name: "Tom", Color: "black", BirthYear: 2020,
		Image: &imagedata.File{Name: "temp.png", ContentType: "image/png", Data: []byte("png")},
	})
	require.NoError(t, err)

	require.NotEmpty(t, c.Image)
	assert.Contains(t, c.Image, ImagePrefix)
	assert.Equal(t, []byte("png"), blobs.objects[c.Image])
	assert.Equal(t, "/media/"+c.Image, svc.ImageURL(c.Image))
	assert.Equal(t, "", svc.ImageURL(""))
}

func TestUpdate_AchievementsOmittedKeepsSet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020, Achievements: []string{"Climber"}})
	require.NoError(t, err)

	got, err := svc.Update(ctx, c.ID, "u1", UpdateInput{Name: ptr("Tommy")})
	require.NoError(t, err)
	assert.Equal(t, "Tommy", got.Name)
	assert.Equal(t, "black", got.Color)
	assert.Equal(t, []string{"Climber"}, achievementNames(got))
}

func TestUpdate_EmptyAchievementsClearsSet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020, Achievements: []string{"Climber"}})
	require.NoError(t, err)

	got, err := svc.Update(ctx, c.ID, "u1", UpdateInput{Achievements: AchievementsPatch{Present: true, Names: []string{}}})
	require.NoError(t, err)
	assert.Empty(t, got.Achievements)
}

func TestUpdate_ReplacesSet(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020, Achievements: []string{"Climber", "Hunter"}})
	require.NoError(t, err)

	got, err := svc.Update(ctx, c.ID, "u1", UpdateInput{Achievements: AchievementsPatch{Present: true, Names: []string{"Sleeper", "Climber"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Climber", "Sleeper"}, achievementNames(got))

	// Hunter sigue existiendo como logro, sólo se desvinculó.
	assert.Len(t, store.data.achs, 3)
	assert.Len(t, store.data.links, 2)
}

func TestUpdate_Forbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020})
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, "u2", UpdateInput{Name: ptr("Hacked")})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID, "u2"), ErrForbidden)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Update(context.Background(), "missing", "u1", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_InvalidBirthYear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{Name: "Tom", Color: "black", BirthYear: 2020})
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, "u1", UpdateInput{BirthYear: ptr(1850)})
	require.Error(t, err)

	got, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2020, got.BirthYear)
}

func TestUpdate_ImageLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, blobs := newTestService(t)

	c, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Tom", Color: "black", BirthYear: 2020,
		Image: &imagedata.File{Name: "temp.png", Data: []byte("one")},
	})
	require.NoError(t, err)
	first := c.Image

	// Keep: no cambia
	got, err := svc.Update(ctx, c.ID, "u1", UpdateInput{Image: imagedata.Value{Kind: imagedata.Keep}})
	require.NoError(t, err)
	assert.Equal(t, first, got.Image)

	// Upload: reemplaza y borra la anterior
	got, err = svc.Update(ctx, c.ID, "u1", UpdateInput{Image: imagedata.Value{Kind: imagedata.Upload, File: imagedata.File{Name: "temp.gif", Data: []byte("two")}}})
	require.NoError(t, err)
	assert.NotEqual(t, first, got.Image)
	assert.NotContains(t, blobs.objects, first)
	assert.Contains(t, blobs.objects, got.Image)

	// Null: limpia
	second := got.Image
	got, err = svc.Update(ctx, c.ID, "u1", UpdateInput{Image: imagedata.Value{Kind: imagedata.Null}})
	require.NoError(t, err)
	assert.Empty(t, got.Image)
	assert.NotContains(t, blobs.objects, second)
}

func TestDeleteByOwner(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	for _, n := range []string{"A", "B"} {
		_, err := svc.Create(ctx, "u1", CreateInput{Name: n, Color: "black", BirthYear: 2020, Achievements: []string{"Climber"}})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "u2", CreateInput{Name: "C", Color: "black", BirthYear: 2020, Achievements: []string{"Climber"}})
	require.NoError(t, err)

	n, err := svc.DeleteByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "C", left[0].Name)
	assert.Len(t, store.data.links, 1)
	assert.Len(t, store.data.achs, 1)
}

func TestList_Alphabetical(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, n := range []string{"Murka", "Barsik", "Tom"} {
		_, err := svc.Create(ctx, "u1", CreateInput{Name: n, Color: "black", BirthYear: 2020})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, ListFilter{OwnerUserID: "u1"})
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, c := range items {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Barsik", "Murka", "Tom"}, names)
}
