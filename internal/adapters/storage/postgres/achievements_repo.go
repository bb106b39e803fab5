package postgres

import (
	"context"
	"database/sql"

	"kittygram/internal/domain/achievements"

	"github.com/uptrace/bun"
)

type AchievementsRepo struct {
	db bun.IDB
}

func NewAchievementsRepo(db bun.IDB) *AchievementsRepo {
	return &AchievementsRepo{db: db}
}

func (r *AchievementsRepo) GetByID(ctx context.Context, id string) (achievements.Achievement, error) {
	var row achievementRow
	err := r.db.NewSelect().Model(&row).Where("achievement.id = ?", id).Scan(ctx)
	if err != nil {
		return achievements.Achievement{}, mapErr(err, achievements.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *AchievementsRepo) GetByName(ctx context.Context, name string) (achievements.Achievement, error) {
	var row achievementRow
	err := r.db.NewSelect().Model(&row).Where("achievement.name = ?", name).Scan(ctx)
	if err != nil {
		return achievements.Achievement{}, mapErr(err, achievements.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *AchievementsRepo) List(ctx context.Context) ([]achievements.Achievement, error) {
	var rows []achievementRow
	if err := r.db.NewSelect().Model(&rows).Order("achievement.name ASC").Scan(ctx); err != nil {
		return nil, mapErr(err, achievements.ErrNotFound)
	}

	out := make([]achievements.Achievement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetOrCreate: INSERT ... ON CONFLICT (name) DO NOTHING y, si no insertó,
// SELECT por nombre. Dos requests concurrentes ven la misma fila.
func (r *AchievementsRepo) GetOrCreate(ctx context.Context, a achievements.Achievement) (achievements.Achievement, bool, error) {
	row := achievementRow{ID: a.ID, Name: a.Name}
	res, err := r.db.NewInsert().
		Model(&row).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return achievements.Achievement{}, false, mapErr(err, achievements.ErrNotFound)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return row.toDomain(), true, nil
	}

	got, err := r.GetByName(ctx, a.Name)
	if err != nil {
		return achievements.Achievement{}, false, err
	}
	return got, false, nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
