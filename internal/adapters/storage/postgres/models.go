package postgres

import (
	"time"

	"kittygram/internal/domain/achievements"
	"kittygram/internal/domain/cats"

	"github.com/uptrace/bun"
)

type achievementRow struct {
	bun.BaseModel `bun:"table:achievements,alias:achievement"`

	ID   string `bun:"id,pk,type:uuid"`
	Name string `bun:"name,notnull,unique"`
}

type catRow struct {
	bun.BaseModel `bun:"table:cats,alias:cat"`

	ID          string    `bun:"id,pk,type:uuid"`
	OwnerUserID string    `bun:"owner_user_id,notnull"`
	Name        string    `bun:"name,notnull"`
	Color       string    `bun:"color,notnull"`
	BirthYear   int       `bun:"birth_year,notnull"`
	Image       string    `bun:"image,nullzero"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`

	Achievements []achievementRow `bun:"m2m:achievement_cats,join:Cat=Achievement"`
}

type achievementCatRow struct {
	bun.BaseModel `bun:"table:achievement_cats,alias:ac"`

	ID            string          `bun:"id,pk,type:uuid"`
	AchievementID string          `bun:"achievement_id,notnull,type:uuid"`
	Achievement   *achievementRow `bun:"rel:belongs-to,join:achievement_id=id"`
	CatID         string          `bun:"cat_id,notnull,type:uuid"`
	Cat           *catRow         `bun:"rel:belongs-to,join:cat_id=id"`
}

func (r achievementRow) toDomain() achievements.Achievement {
	return achievements.Achievement{ID: r.ID, Name: r.Name}
}

func fromCat(c cats.Cat) catRow {
	return catRow{
		ID:          c.ID,
		OwnerUserID: c.OwnerUserID,
		Name:        c.Name,
		Color:       c.Color,
		BirthYear:   c.BirthYear,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r catRow) toDomain() cats.Cat {
	c := cats.Cat{
		ID:           r.ID,
		OwnerUserID:  r.OwnerUserID,
		Name:         r.Name,
		Color:        r.Color,
		BirthYear:    r.BirthYear,
		Image:        r.Image,
		Achievements: make([]achievements.Achievement, 0, len(r.Achievements)),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, a := range r.Achievements {
		c.Achievements = append(c.Achievements, a.toDomain())
	}
	return c
}
