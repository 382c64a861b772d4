package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const categoryColumns = "id, name, description, slug, is_active, sort_order, created_at, updated_at"

// CategoryRepo encapsulates queries on the `categories` table.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func scanCategory(s scanner) (*model.Category, error) {
	var c model.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.IsActive, &c.SortOrder,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns categories ordered by sort_order, then name.
func (r *CategoryRepo) List(ctx context.Context, activeOnly bool, p Page) ([]model.Category, error) {
	q := "SELECT " + categoryColumns + " FROM categories"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY sort_order, name LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE slug = ?", slug))
}

// Create inserts c. Name and slug are both unique; either collision
// yields ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	const q = `INSERT INTO categories (name, description, slug, is_active, sort_order) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.Slug, c.IsActive, c.SortOrder)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
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
	*c = *created
	return nil
}

// Update writes every mutable column of c and copies the name onto the
// denormalized images.category of every image linked to it, in one
// transaction.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `UPDATE categories SET name = ?, description = ?, slug = ?, is_active = ?, sort_order = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, c.Name, c.Description, c.Slug, c.IsActive, c.SortOrder, c.ID); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE images SET category = ? WHERE category_id = ?", c.Name, c.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	updated, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *updated
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
