package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const businessHoursColumns = `id, day_of_week, is_open, open_time, close_time, is_by_appointment, notes,
	created_at, updated_at`

// BusinessHoursRepo keys rows by day_of_week, which is unique.
type BusinessHoursRepo struct{ db *sql.DB }

func NewBusinessHoursRepo(db *sql.DB) *BusinessHoursRepo { return &BusinessHoursRepo{db: db} }

func scanBusinessHours(s scanner) (*model.BusinessHours, error) {
	var (
		b               model.BusinessHours
		openAt, closeAt sql.NullString
	)
	if err := s.Scan(&b.ID, &b.DayOfWeek, &b.IsOpen, &openAt, &closeAt, &b.IsByAppointment, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.OpenTime, b.CloseTime = ptrString(openAt), ptrString(closeAt)
	return &b, nil
}

// List returns the week Monday first.
func (r *BusinessHoursRepo) List(ctx context.Context) ([]model.BusinessHours, error) {
	const q = "SELECT " + businessHoursColumns + ` FROM business_hours
	           ORDER BY FIELD(day_of_week, 'Monday', 'Tuesday', 'Wednesday', 'Thursday', 'Friday', 'Saturday', 'Sunday')`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.BusinessHours, 0, 7)
	for rows.Next() {
		b, err := scanBusinessHours(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BusinessHoursRepo) GetByDay(ctx context.Context, day string) (*model.BusinessHours, error) {
	return scanBusinessHours(r.db.QueryRowContext(ctx,
		"SELECT "+businessHoursColumns+" FROM business_hours WHERE day_of_week = ?", day))
}

// Create inserts b; a second row for the same day yields ErrDuplicate.
func (r *BusinessHoursRepo) Create(ctx context.Context, b *model.BusinessHours) error {
	const q = `INSERT INTO business_hours (day_of_week, is_open, open_time, close_time, is_by_appointment, notes)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, b.DayOfWeek, b.IsOpen, nullString(b.OpenTime), nullString(b.CloseTime),
		b.IsByAppointment, b.Notes); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	created, err := r.GetByDay(ctx, b.DayOfWeek)
	if err != nil {
		return err
	}
	*b = *created
	return nil
}

func (r *BusinessHoursRepo) Update(ctx context.Context, b *model.BusinessHours) error {
	const q = `UPDATE business_hours SET is_open = ?, open_time = ?, close_time = ?, is_by_appointment = ?, notes = ?
	           WHERE day_of_week = ?`
	if _, err := r.db.ExecContext(ctx, q, b.IsOpen, nullString(b.OpenTime), nullString(b.CloseTime),
		b.IsByAppointment, b.Notes, b.DayOfWeek); err != nil {
		return err
	}
	updated, err := r.GetByDay(ctx, b.DayOfWeek)
	if err != nil {
		return err
	}
	*b = *updated
	return nil
}

func (r *BusinessHoursRepo) DeleteByDay(ctx context.Context, day string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM business_hours WHERE day_of_week = ?", day)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
