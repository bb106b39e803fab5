package achievements

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("achievement not found")
	ErrAlreadyExists = errors.New("achievement with this name already exists")
)

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
	}
}

// Create crea un logro suelto (fuera de un gato).
func (s *Service) Create(ctx context.Context, name string) (Achievement, error) {
	a, created, err := getOrCreate(ctx, s.repo, name, s.newID)
	if err != nil {
		return Achievement{}, err
	}
	if !created {
		return a, ErrAlreadyExists
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Achievement, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Achievement{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Achievement, error) {
	return s.repo.List(ctx)
}

// GetOrCreate busca por nombre exacto (tras trim) o crea el logro usando repo.
// repo puede estar atado a una transacción del caller.
func GetOrCreate(ctx context.Context, repo Repository, name string) (Achievement, error) {
	a, _, err := getOrCreate(ctx, repo, name, uuid.NewString)
	return a, err
}

func getOrCreate(ctx context.Context, repo Repository, name string, newID func() string) (Achievement, bool, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return Achievement{}, false, err
	}
	return repo.GetOrCreate(ctx, Achievement{ID: newID(), Name: name})
}

// NormalizeName recorta espacios y valida largo.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLen {
		return "", ErrInvalidInput
	}
	return name, nil
}
