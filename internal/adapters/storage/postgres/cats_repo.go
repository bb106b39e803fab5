package postgres

import (
	"context"
	"strings"

	"kittygram/internal/domain/cats"

	"github.com/uptrace/bun"
)

type CatsRepo struct {
	db bun.IDB
}

func NewCatsRepo(db bun.IDB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	row := fromCat(c)
	_, err := r.db.NewInsert().Model(&row).Exec(ctx)
	return mapErr(err, cats.ErrNotFound)
}

// Update no toca owner_user_id ni created_at.
func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	row := fromCat(c)
	res, err := r.db.NewUpdate().
		Model(&row).
		Column("name", "color", "birth_year", "image", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return mapErr(err, cats.ErrNotFound)
	}
	return expectOne(res, cats.ErrNotFound)
}

// Delete: los links caen por ON DELETE CASCADE.
func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*catRow)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return mapErr(err, cats.ErrNotFound)
	}
	return expectOne(res, cats.ErrNotFound)
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	var row catRow
	err := r.db.NewSelect().
		Model(&row).
		Relation("Achievements", orderAchievements).
		Where("cat.id = ?", id).
		Scan(ctx)
	if err != nil {
		return cats.Cat{}, mapErr(err, cats.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *CatsRepo) List(ctx context.Context, filter cats.ListFilter) ([]cats.Cat, error) {
	var rows []catRow
	q := r.db.NewSelect().
		Model(&rows).
		Relation("Achievements", orderAchievements).
		OrderExpr("cat.name ASC, cat.id ASC")

	if owner := strings.TrimSpace(filter.OwnerUserID); owner != "" {
		q = q.Where("cat.owner_user_id = ?", owner)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, mapErr(err, cats.ErrNotFound)
	}

	out := make([]cats.Cat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CatsRepo) AddAchievement(ctx context.Context, link cats.AchievementCat) error {
	row := achievementCatRow{
		ID:            link.ID,
		AchievementID: link.AchievementID,
		CatID:         link.CatID,
	}
	_, err := r.db.NewInsert().Model(&row).Exec(ctx)
	return mapErr(err, cats.ErrNotFound)
}

func (r *CatsRepo) ClearAchievements(ctx context.Context, catID string) error {
	_, err := r.db.NewDelete().
		Model((*achievementCatRow)(nil)).
		Where("cat_id = ?", catID).
		Exec(ctx)
	return mapErr(err, cats.ErrNotFound)
}

func orderAchievements(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("achievement.name ASC")
}
