package achievements

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Achievement, error)
	GetByName(ctx context.Context, name string) (Achievement, error)

	// List devuelve los logros ordenados alfabéticamente.
	List(ctx context.Context) ([]Achievement, error)

	// GetOrCreate devuelve el logro con a.Name si existe, o inserta a.
	// Debe ser atómico: dos llamadas concurrentes con el mismo nombre
	// nunca producen dos filas.
	GetOrCreate(ctx context.Context, a Achievement) (Achievement, bool, error)
}
