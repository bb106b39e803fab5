package cats

import (
	"time"

	"kittygram/internal/domain/achievements"
)

const (
	MaxNameLen  = 16
	MaxColorLen = 16

	// birth_year válido: MinBirthYear < y < MaxBirthYear (exclusivo).
	MinBirthYear = 1900
	MaxBirthYear = 2100

	// ImagePrefix es el "upload_to" de las imágenes en el blob store.
	ImagePrefix = "cats/images/"
)

// Cat es un gato del catálogo.
type Cat struct {
	ID          string
	OwnerUserID string // lo asigna el request autenticado; inmutable

	Name      string
	Color     string // nombre canónico (ver hexcolor)
	BirthYear int

	// Image es la key en el blob store; "" = sin imagen.
	Image string

	// Achievements ordenados por nombre.
	Achievements []achievements.Achievement

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Age no se persiste: año actual - birth_year.
func (c Cat) Age(now time.Time) int {
	return now.Year() - c.BirthYear
}

func ValidBirthYear(y int) bool {
	return y > MinBirthYear && y < MaxBirthYear
}

// AchievementCat es la fila de la tabla intermedia gato <-> logro.
// El par (AchievementID, CatID) es único.
type AchievementCat struct {
	ID            string
	AchievementID string
	CatID         string
}
