package cats

import (
	"context"

	"kittygram/internal/domain/achievements"
)

type Repository interface {
	Create(ctx context.Context, c Cat) error
	Update(ctx context.Context, c Cat) error
	Delete(ctx context.Context, id string) error

	// GetByID trae el gato con Achievements cargados.
	GetByID(ctx context.Context, id string) (Cat, error)
	// List ordena por nombre; Achievements cargados.
	List(ctx context.Context, filter ListFilter) ([]Cat, error)

	// AddAchievement devuelve ErrDuplicateAchievement si el par ya existe.
	AddAchievement(ctx context.Context, link AchievementCat) error
	ClearAchievements(ctx context.Context, catID string) error
}

type ListFilter struct {
	OwnerUserID string // vacío = todos
}

// Store agrupa los repos que comparten una transacción.
type Store interface {
	Cats() Repository
	Achievements() achievements.Repository

	// Atomic corre fn con repos atados a una única transacción:
	// si fn devuelve error no queda nada escrito.
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
