package postgres

import (
	"context"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/domain/cats"

	"github.com/uptrace/bun"
)

// Store implementa cats.Store sobre bun. Dentro de Atomic, db es la bun.Tx.
type Store struct {
	root *bun.DB
	db   bun.IDB
	inTx bool
}

func NewStore(db *bun.DB) *Store {
	return &Store{root: db, db: db}
}

func (s *Store) Cats() cats.Repository {
	return &CatsRepo{db: s.db}
}

func (s *Store) Achievements() achievements.Repository {
	return &AchievementsRepo{db: s.db}
}

// Atomic corre fn en una transacción; anidado reutiliza la transacción en curso.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx cats.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return s.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &Store{root: s.root, db: tx, inTx: true})
	})
}
