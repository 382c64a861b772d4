package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const heroSlideColumns = `id, title, subtitle, description, button_text, button_link, is_active, sort_order,
	image_id, created_at, updated_at`

type HeroSlideRepo struct{ db *sql.DB }

func NewHeroSlideRepo(db *sql.DB) *HeroSlideRepo { return &HeroSlideRepo{db: db} }

func scanHeroSlide(s scanner) (*model.HeroSlide, error) {
	var (
		h       model.HeroSlide
		imageID sql.NullInt64
	)
	if err := s.Scan(&h.ID, &h.Title, &h.Subtitle, &h.Description, &h.ButtonText, &h.ButtonLink,
		&h.IsActive, &h.SortOrder, &imageID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	h.ImageID = ptrUint64(imageID)
	return &h, nil
}

// List orders slides by sort_order, newest first within the same position.
func (r *HeroSlideRepo) List(ctx context.Context, activeOnly bool, p Page) ([]model.HeroSlide, error) {
	q := "SELECT " + heroSlideColumns + " FROM hero_slides"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY sort_order, created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HeroSlide, 0)
	for rows.Next() {
		h, err := scanHeroSlide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (r *HeroSlideRepo) GetByID(ctx context.Context, id uint64) (*model.HeroSlide, error) {
	return scanHeroSlide(r.db.QueryRowContext(ctx, "SELECT "+heroSlideColumns+" FROM hero_slides WHERE id = ?", id))
}

func (r *HeroSlideRepo) Create(ctx context.Context, h *model.HeroSlide) error {
	const q = `INSERT INTO hero_slides (title, subtitle, description, button_text, button_link, is_active, sort_order, image_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Title, h.Subtitle, h.Description, h.ButtonText, h.ButtonLink,
		h.IsActive, h.SortOrder, nullUint64(h.ImageID))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*h = *created
	return nil
}

func (r *HeroSlideRepo) Update(ctx context.Context, h *model.HeroSlide) error {
	const q = `UPDATE hero_slides SET title = ?, subtitle = ?, description = ?, button_text = ?, button_link = ?,
	           is_active = ?, sort_order = ?, image_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, h.Title, h.Subtitle, h.Description, h.ButtonText, h.ButtonLink,
		h.IsActive, h.SortOrder, nullUint64(h.ImageID), h.ID); err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *updated
	return nil
}

func (r *HeroSlideRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hero_slides WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
