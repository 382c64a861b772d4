package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const testimonialColumns = `id, name, title, company, content, rating, image_url, is_featured, is_active,
	sort_order, created_at, updated_at`

type TestimonialRepo struct{ db *sql.DB }

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo { return &TestimonialRepo{db: db} }

func scanTestimonial(s scanner) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := s.Scan(&t.ID, &t.Name, &t.Title, &t.Company, &t.Content, &t.Rating, &t.ImageURL,
		&t.IsFeatured, &t.IsActive, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TestimonialRepo) query(ctx context.Context, q string, args ...any) ([]model.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Testimonial, 0)
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TestimonialRepo) List(ctx context.Context, activeOnly bool, p Page) ([]model.Testimonial, error) {
	q := "SELECT " + testimonialColumns + " FROM testimonials"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY sort_order, created_at DESC LIMIT ? OFFSET ?"
	return r.query(ctx, q, p.Limit, p.Skip)
}

// Featured returns up to limit active, featured testimonials.
func (r *TestimonialRepo) Featured(ctx context.Context, limit int) ([]model.Testimonial, error) {
	return r.query(ctx, "SELECT "+testimonialColumns+
		" FROM testimonials WHERE is_active = 1 AND is_featured = 1 ORDER BY sort_order, created_at DESC LIMIT ?", limit)
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id uint64) (*model.Testimonial, error) {
	return scanTestimonial(r.db.QueryRowContext(ctx, "SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id))
}

func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	const q = `INSERT INTO testimonials (name, title, company, content, rating, image_url, is_featured, is_active, sort_order)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Title, t.Company, t.Content, t.Rating, t.ImageURL,
		t.IsFeatured, t.IsActive, t.SortOrder)
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
	*t = *created
	return nil
}

func (r *TestimonialRepo) Update(ctx context.Context, t *model.Testimonial) error {
	const q = `UPDATE testimonials SET name = ?, title = ?, company = ?, content = ?, rating = ?, image_url = ?,
	           is_featured = ?, is_active = ?, sort_order = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.Name, t.Title, t.Company, t.Content, t.Rating, t.ImageURL,
		t.IsFeatured, t.IsActive, t.SortOrder, t.ID); err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *updated
	return nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
