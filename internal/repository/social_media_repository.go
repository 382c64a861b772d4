package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const socialMediaColumns = "id, platform, url, icon_name, display_name, is_active, sort_order, created_at, updated_at"

type SocialMediaRepo struct{ db *sql.DB }

func NewSocialMediaRepo(db *sql.DB) *SocialMediaRepo { return &SocialMediaRepo{db: db} }

func scanSocialMedia(s scanner) (*model.SocialMedia, error) {
	var m model.SocialMedia
	if err := s.Scan(&m.ID, &m.Platform, &m.URL, &m.IconName, &m.DisplayName, &m.IsActive, &m.SortOrder,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *SocialMediaRepo) List(ctx context.Context, activeOnly bool, p Page) ([]model.SocialMedia, error) {
	q := "SELECT " + socialMediaColumns + " FROM social_media"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY sort_order, id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SocialMedia, 0)
	for rows.Next() {
		m, err := scanSocialMedia(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *SocialMediaRepo) GetByID(ctx context.Context, id uint64) (*model.SocialMedia, error) {
	return scanSocialMedia(r.db.QueryRowContext(ctx, "SELECT "+socialMediaColumns+" FROM social_media WHERE id = ?", id))
}

func (r *SocialMediaRepo) Create(ctx context.Context, m *model.SocialMedia) error {
	const q = `INSERT INTO social_media (platform, url, icon_name, display_name, is_active, sort_order)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Platform, m.URL, m.IconName, m.DisplayName, m.IsActive, m.SortOrder)
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
	*m = *created
	return nil
}

func (r *SocialMediaRepo) Update(ctx context.Context, m *model.SocialMedia) error {
	const q = `UPDATE social_media SET platform = ?, url = ?, icon_name = ?, display_name = ?, is_active = ?,
	           sort_order = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, m.Platform, m.URL, m.IconName, m.DisplayName, m.IsActive,
		m.SortOrder, m.ID); err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *updated
	return nil
}

func (r *SocialMediaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM social_media WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
