package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/domain/cats"
)

type catRepo struct {
	access
}

func (r *catRepo) Create(ctx context.Context, c cats.Cat) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if !cats.ValidBirthYear(c.BirthYear) {
		return cats.ErrBirthYearOutOfRange
	}
	return r.write(func(st *state) error {
		if _, exists := st.cats[c.ID]; exists {
			return errors.New("cat already exists")
		}
		c.Achievements = nil
		st.cats[c.ID] = c
		return nil
	})
}

func (r *catRepo) Update(ctx context.Context, c cats.Cat) error {
	if !cats.ValidBirthYear(c.BirthYear) {
		return cats.ErrBirthYearOutOfRange
	}
	return r.write(func(st *state) error {
		prev, exists := st.cats[c.ID]
		if !exists {
			return cats.ErrNotFound
		}
		// owner y created_at son inmutables
		c.OwnerUserID = prev.OwnerUserID
		c.CreatedAt = prev.CreatedAt
		c.Achievements = nil
		st.cats[c.ID] = c
		return nil
	})
}

// Delete borra el gato y, en cascada, sus links.
func (r *catRepo) Delete(ctx context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, exists := st.cats[id]; !exists {
			return cats.ErrNotFound
		}
		delete(st.cats, id)
		clearLinks(st, id)
		return nil
	})
}

func (r *catRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	var out cats.Cat
	err := r.read(func(st *state) error {
		c, ok := st.cats[id]
		if !ok {
			return cats.ErrNotFound
		}
		out = withAchievements(st, c)
		return nil
	})
	return out, err
}

func (r *catRepo) List(ctx context.Context, filter cats.ListFilter) ([]cats.Cat, error) {
	out := make([]cats.Cat, 0)
	err := r.read(func(st *state) error {
		for _, c := range st.cats {
			if filter.OwnerUserID != "" && c.OwnerUserID != filter.OwnerUserID {
				continue
			}
			out = append(out, withAchievements(st, c))
		}
		return nil
	})

	// Orden por nombre; id desempata para que sea estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *catRepo) AddAchievement(ctx context.Context, link cats.AchievementCat) error {
	return r.write(func(st *state) error {
		if _, ok := st.cats[link.CatID]; !ok {
			return cats.ErrNotFound
		}
		if _, ok := st.achievements[link.AchievementID]; !ok {
			return fmt.Errorf("link: %w", achievements.ErrNotFound)
		}
		for _, l := range st.links {
			if l.CatID == link.CatID && l.AchievementID == link.AchievementID {
				return cats.ErrDuplicateAchievement
			}
		}
		st.links[link.ID] = link
		return nil
	})
}

func (r *catRepo) ClearAchievements(ctx context.Context, catID string) error {
	return r.write(func(st *state) error {
		clearLinks(st, catID)
		return nil
	})
}

func clearLinks(st *state, catID string) {
	for id, l := range st.links {
		if l.CatID == catID {
			delete(st.links, id)
		}
	}
}

func withAchievements(st *state, c cats.Cat) cats.Cat {
	c.Achievements = make([]achievements.Achievement, 0)
	for _, l := range st.links {
		if l.CatID != c.ID {
			continue
		}
		if a, ok := st.achievements[l.AchievementID]; ok {
			c.Achievements = append(c.Achievements, a)
		}
	}
	sort.Slice(c.Achievements, func(i, j int) bool {
		return c.Achievements[i].Name < c.Achievements[j].Name
	})
	return c
}
