// Package memory implementa cats.Store en memoria (dev y tests).
package memory

import (
	"context"
	"sync"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/domain/cats"
)

// state son las "tablas". Los gatos se guardan sin Achievements; la
// relación vive en links.
type state struct {
	cats         map[string]cats.Cat
	achievements map[string]achievements.Achievement
	byName       map[string]string // nombre -> id (unique)
	links        map[string]cats.AchievementCat
}

func newState() *state {
	return &state{
		cats:         make(map[string]cats.Cat),
		achievements: make(map[string]achievements.Achievement),
		byName:       make(map[string]string),
		links:        make(map[string]cats.AchievementCat),
	}
}

func (s *state) clone() *state {
	c := &state{
		cats:         make(map[string]cats.Cat, len(s.cats)),
		achievements: make(map[string]achievements.Achievement, len(s.achievements)),
		byName:       make(map[string]string, len(s.byName)),
		links:        make(map[string]cats.AchievementCat, len(s.links)),
	}
	for k, v := range s.cats {
		c.cats[k] = v
	}
	for k, v := range s.achievements {
		c.achievements[k] = v
	}
	for k, v := range s.byName {
		c.byName[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	return c
}

type Store struct {
	mu sync.RWMutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) Cats() cats.Repository {
	return &catRepo{access{store: s}}
}

func (s *Store) Achievements() achievements.Repository {
	return &achievementRepo{access{store: s}}
}

// Atomic corre fn sobre una copia del estado con el lock de escritura
// tomado; la copia reemplaza al estado sólo si fn no falla.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx cats.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{st: s.st.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// txStore ya corre bajo el lock de Store.Atomic.
type txStore struct {
	st *state
}

func (t *txStore) Cats() cats.Repository {
	return &catRepo{access{tx: t.st}}
}

func (t *txStore) Achievements() achievements.Repository {
	return &achievementRepo{access{tx: t.st}}
}

// Atomic anidado: misma transacción.
func (t *txStore) Atomic(ctx context.Context, fn func(ctx context.Context, tx cats.Store) error) error {
	return fn(ctx, t)
}

// access resuelve el estado y el locking: store != nil fuera de una
// transacción, tx != nil dentro (sin lock propio).
type access struct {
	store *Store
	tx    *state
}

func (a access) read(fn func(st *state) error) error {
	if a.store == nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.st)
}

func (a access) write(fn func(st *state) error) error {
	if a.store == nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.st)
}
