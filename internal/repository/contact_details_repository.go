package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const contactColumns = "id, email, phone, address, created_at, updated_at"

// ContactDetailsRepo manages the single contact_details row. The table has
// a unique constant column, so a second insert fails with ErrDuplicate.
type ContactDetailsRepo struct{ db *sql.DB }

func NewContactDetailsRepo(db *sql.DB) *ContactDetailsRepo { return &ContactDetailsRepo{db: db} }

func scanContact(s scanner) (*model.ContactDetails, error) {
	var c model.ContactDetails
	if err := s.Scan(&c.ID, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactDetailsRepo) List(ctx context.Context, p Page) ([]model.ContactDetails, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+contactColumns+" FROM contact_details ORDER BY id LIMIT ? OFFSET ?",
		p.Limit, p.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ContactDetails, 0, 1)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContactDetailsRepo) GetByID(ctx context.Context, id uint64) (*model.ContactDetails, error) {
	return scanContact(r.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contact_details WHERE id = ?", id))
}

func (r *ContactDetailsRepo) Create(ctx context.Context, c *model.ContactDetails) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO contact_details (email, phone, address) VALUES (?, ?, ?)",
		c.Email, c.Phone, c.Address)
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

func (r *ContactDetailsRepo) Update(ctx context.Context, c *model.ContactDetails) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE contact_details SET email = ?, phone = ?, address = ? WHERE id = ?",
		c.Email, c.Phone, c.Address, c.ID); err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *updated
	return nil
}

func (r *ContactDetailsRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contact_details WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
