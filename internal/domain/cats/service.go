package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/platform/imagedata"
	"kittygram/internal/ports/blob"
	"kittygram/internal/validation"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("cat not found")
	ErrForbidden            = errors.New("only the owner can modify this cat")
	ErrDuplicateAchievement = errors.New("achievement already linked to this cat")
	ErrBirthYearOutOfRange  = fmt.Errorf("birth_year must be greater than %d and less than %d", MinBirthYear, MaxBirthYear)
)

// achievementCacheSize: nombres de logros recientes -> fila ya persistida.
const achievementCacheSize = 512

type Service struct {
	store Store
	blobs blob.Store
	cache *lru.Cache
	now   func() time.Time
	newID func() string
}

func NewService(store Store, blobs blob.Store) *Service {
	cache, _ := lru.New(achievementCacheSize)
	return &Service{
		store: store,
		blobs: blobs,
		cache: cache,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type CreateInput struct {
	Name      string
	Color     string
	BirthYear int
	Image     *imagedata.File

	// Achievements son nombres; se buscan o crean (get-or-create).
	Achievements []string
}

// ImagePatch: Kind Omitted/Keep no toca la imagen, Null la limpia, Upload la reemplaza.
type ImagePatch = imagedata.Value

// AchievementsPatch distingue "no enviado" (Present=false) de "lista vacía".
type AchievementsPatch struct {
	Present bool
	Names   []string
}

type UpdateInput struct {
	// Punteros: nil = no tocar.
	Name      *string
	Color     *string
	BirthYear *int

	Image        ImagePatch
	Achievements AchievementsPatch
}

// Create crea el gato y sus logros en una sola transacción.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Cat, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Cat{}, ErrInvalidInput
	}

	now := s.now()
	c := Cat{
		ID:          s.newID(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Color:       strings.TrimSpace(in.Color),
		BirthYear:   in.BirthYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateCat(c); err != nil {
		return Cat{}, err
	}
	names, err := normalizeAchievementNames(in.Achievements)
	if err != nil {
		return Cat{}, err
	}

	if in.Image != nil {
		key, err := s.putImage(ctx, *in.Image)
		if err != nil {
			return Cat{}, err
		}
		c.Image = key
	}

	err = s.store.Atomic(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Cats().Create(ctx, c); err != nil {
			return err
		}
		return s.attach(ctx, tx, c.ID, names)
	})
	if err != nil {
		s.dropImage(ctx, c.Image)
		return Cat{}, err
	}

	return s.reload(ctx, c.ID)
}

// Update aplica un patch parcial. El gato se guarda antes de tocar la
// relación con logros; si Achievements.Present el set se reemplaza entero.
func (s *Service) Update(ctx context.Context, catID, actorUserID string, in UpdateInput) (Cat, error) {
	current, err := s.GetByID(ctx, catID)
	if err != nil {
		return Cat{}, err
	}
	if current.OwnerUserID != strings.TrimSpace(actorUserID) {
		return Cat{}, ErrForbidden
	}

	c := current
	c.Achievements = nil
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Color != nil {
		c.Color = strings.TrimSpace(*in.Color)
	}
	if in.BirthYear != nil {
		c.BirthYear = *in.BirthYear
	}
	if err := validateCat(c); err != nil {
		return Cat{}, err
	}

	var names []string
	if in.Achievements.Present {
		if names, err = normalizeAchievementNames(in.Achievements.Names); err != nil {
			return Cat{}, err
		}
	}

	newImage := ""
	switch in.Image.Kind {
	case imagedata.Upload:
		if newImage, err = s.putImage(ctx, in.Image.File); err != nil {
			return Cat{}, err
		}
		c.Image = newImage
	case imagedata.Null:
		c.Image = ""
	}
	c.UpdatedAt = s.now()

	err = s.store.Atomic(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Cats().Update(ctx, c); err != nil {
			return err
		}
		if !in.Achievements.Present {
			return nil
		}
		if err := tx.Cats().ClearAchievements(ctx, c.ID); err != nil {
			return err
		}
		return s.attach(ctx, tx, c.ID, names)
	})
	if err != nil {
		s.dropImage(ctx, newImage)
		return Cat{}, err
	}

	if current.Image != "" && current.Image != c.Image {
		s.dropImage(ctx, current.Image)
	}
	return s.reload(ctx, c.ID)
}

// Delete borra el gato (los links caen en cascada) y su imagen.
func (s *Service) Delete(ctx context.Context, catID, actorUserID string) error {
	c, err := s.GetByID(ctx, catID)
	if err != nil {
		return err
	}
	if c.OwnerUserID != strings.TrimSpace(actorUserID) {
		return ErrForbidden
	}
	if err := s.store.Cats().Delete(ctx, c.ID); err != nil {
		return err
	}
	s.dropImage(ctx, c.Image)
	return nil
}

// DeleteByOwner borra todos los gatos de un usuario (baja del usuario en el identity store).
func (s *Service) DeleteByOwner(ctx context.Context, ownerUserID string) (int, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return 0, ErrInvalidInput
	}

	var removed []Cat
	err := s.store.Atomic(ctx, func(ctx context.Context, tx Store) error {
		items, err := tx.Cats().List(ctx, ListFilter{OwnerUserID: ownerUserID})
		if err != nil {
			return err
		}
		for _, c := range items {
			if err := tx.Cats().Delete(ctx, c.ID); err != nil {
				return err
			}
		}
		removed = items
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, c := range removed {
		s.dropImage(ctx, c.Image)
	}
	return len(removed), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Cat{}, ErrNotFound
	}
	return s.store.Cats().GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Cat, error) {
	return s.store.Cats().List(ctx, filter)
}

// ImageURL devuelve la URL pública de la imagen, o "" si no hay.
func (s *Service) ImageURL(key string) string {
	if key == "" || s.blobs == nil {
		return ""
	}
	return s.blobs.URL(key)
}

// attach hace get-or-create de cada logro y crea el link con el gato.
func (s *Service) attach(ctx context.Context, tx Store, catID string, names []string) error {
	for _, name := range names {
		a, err := s.achievement(ctx, tx.Achievements(), name)
		if err != nil {
			return fmt.Errorf("achievement %q: %w", name, err)
		}
		link := AchievementCat{
			ID:            s.newID(),
			AchievementID: a.ID,
			CatID:         catID,
		}
		if err := tx.Cats().AddAchievement(ctx, link); err != nil {
			return fmt.Errorf("link achievement %q: %w", name, err)
		}
	}
	return nil
}

func (s *Service) achievement(ctx context.Context, repo achievements.Repository, name string) (achievements.Achievement, error) {
	if v, ok := s.cache.Get(name); ok {
		return v.(achievements.Achievement), nil
	}
	return achievements.GetOrCreate(ctx, repo, name)
}

// reload relee el gato ya commiteado y recuerda sus logros en el cache.
func (s *Service) reload(ctx context.Context, id string) (Cat, error) {
	c, err := s.store.Cats().GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}
	for _, a := range c.Achievements {
		s.cache.Add(a.Name, a)
	}
	return c, nil
}

func (s *Service) putImage(ctx context.Context, f imagedata.File) (string, error) {
	if s.blobs == nil {
		return "", errors.New("image storage not configured")
	}
	key := ImagePrefix + s.newID()
	if ext := f.Ext(); ext != "" {
		key += "." + ext
	}
	if err := s.blobs.Put(ctx, key, f.Data, f.ContentType); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

// dropImage es best-effort: un blob huérfano no invalida la operación.
func (s *Service) dropImage(ctx context.Context, key string) {
	if key == "" || s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blob.ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("delete image")
	}
}

func validateCat(c Cat) error {
	var fe validation.FieldErrors
	if n := utf8.RuneCountInString(c.Name); n == 0 || n > MaxNameLen {
		fe = append(fe, validation.Field("name", fmt.Sprintf("must be 1-%d characters", MaxNameLen))...)
	}
	if n := utf8.RuneCountInString(c.Color); n == 0 || n > MaxColorLen {
		fe = append(fe, validation.Field("color", fmt.Sprintf("must be 1-%d characters", MaxColorLen))...)
	}
	if !ValidBirthYear(c.BirthYear) {
		fe = append(fe, validation.Field("birth_year", ErrBirthYearOutOfRange.Error())...)
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// normalizeAchievementNames valida y deduplica (mismo nombre dos veces = un link).
func normalizeAchievementNames(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, raw := range in {
		name, err := achievements.NormalizeName(raw)
		if err != nil {
			return nil, validation.Field(
				fmt.Sprintf("achievements[%d].achievement_name", i),
				fmt.Sprintf("must be 1-%d characters", achievements.MaxNameLen),
			)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
