package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"kittygram/internal/domain/achievements"
)

type achievementRepo struct {
	access
}

func (r *achievementRepo) GetByID(ctx context.Context, id string) (achievements.Achievement, error) {
	var out achievements.Achievement
	err := r.read(func(st *state) error {
		a, ok := st.achievements[id]
		if !ok {
			return achievements.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (r *achievementRepo) GetByName(ctx context.Context, name string) (achievements.Achievement, error) {
	var out achievements.Achievement
	err := r.read(func(st *state) error {
		id, ok := st.byName[name]
		if !ok {
			return achievements.ErrNotFound
		}
		out = st.achievements[id]
		return nil
	})
	return out, err
}

func (r *achievementRepo) List(ctx context.Context) ([]achievements.Achievement, error) {
	out := make([]achievements.Achievement, 0)
	err := r.read(func(st *state) error {
		for _, a := range st.achievements {
			out = append(out, a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// GetOrCreate: check-then-act bajo el lock de escritura.
func (r *achievementRepo) GetOrCreate(ctx context.Context, a achievements.Achievement) (achievements.Achievement, bool, error) {
	if strings.TrimSpace(a.ID) == "" {
		return achievements.Achievement{}, false, errors.New("achievement id required")
	}

	var (
		out     achievements.Achievement
		created bool
	)
	err := r.write(func(st *state) error {
		if id, ok := st.byName[a.Name]; ok {
			out = st.achievements[id]
			return nil
		}
		if _, exists := st.achievements[a.ID]; exists {
			return errors.New("achievement already exists")
		}
		st.achievements[a.ID] = a
		st.byName[a.Name] = a.ID
		out, created = a, true
		return nil
	})
	return out, created, err
}
