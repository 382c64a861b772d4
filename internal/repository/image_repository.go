package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const imageColumns = `id, title, description, filename, file_path, file_size, mime_type, category, tags,
	is_featured, is_public, is_thumbnail, is_hero_image, owner_id, category_id, created_at, updated_at`

// ImageFilter narrows List. Nil pointers mean "any".
type ImageFilter struct {
	PublicOnly  bool
	OwnerID     *uint64
	Category    string
	CategoryID  *uint64
	IsFeatured  *bool
	IsHeroImage *bool
	Page
}

type ImageRepo struct{ db *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{db: db} }

func scanImage(s scanner) (*model.Image, error) {
	var (
		img        model.Image
		categoryID sql.NullInt64
	)
	if err := s.Scan(&img.ID, &img.Title, &img.Description, &img.Filename, &img.FilePath, &img.FileSize,
		&img.MimeType, &img.Category, &img.Tags, &img.IsFeatured, &img.IsPublic, &img.IsThumbnail,
		&img.IsHeroImage, &img.OwnerID, &categoryID, &img.CreatedAt, &img.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	img.CategoryID = ptrUint64(categoryID)
	return &img, nil
}

// List returns images newest first.
func (r *ImageRepo) List(ctx context.Context, f ImageFilter) ([]model.Image, error) {
	var (
		where []string
		args  []any
	)
	if f.PublicOnly {
		where = append(where, "is_public = 1")
	}
	if f.OwnerID != nil {
		where = append(where, "owner_id = ?")
		args = append(args, *f.OwnerID)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.CategoryID != nil {
		where = append(where, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.IsFeatured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.IsFeatured)
	}
	if f.IsHeroImage != nil {
		where = append(where, "is_hero_image = ?")
		args = append(args, *f.IsHeroImage)
	}

	q := "SELECT " + imageColumns + " FROM images"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, rows.Err()
}

func (r *ImageRepo) GetByID(ctx context.Context, id uint64) (*model.Image, error) {
	return scanImage(r.db.QueryRowContext(ctx, "SELECT "+imageColumns+" FROM images WHERE id = ?", id))
}

func (r *ImageRepo) Create(ctx context.Context, img *model.Image) error {
	const q = `INSERT INTO images (title, description, filename, file_path, file_size, mime_type, category, tags,
	           is_featured, is_public, is_thumbnail, is_hero_image, owner_id, category_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, img.Title, img.Description, img.Filename, img.FilePath, img.FileSize,
		img.MimeType, img.Category, img.Tags, img.IsFeatured, img.IsPublic, img.IsThumbnail, img.IsHeroImage,
		img.OwnerID, nullUint64(img.CategoryID))
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
	*img = *created
	return nil
}

// Update writes the descriptive columns; file columns never change after upload.
func (r *ImageRepo) Update(ctx context.Context, img *model.Image) error {
	const q = `UPDATE images SET title = ?, description = ?, category = ?, tags = ?, is_featured = ?,
	           is_public = ?, is_thumbnail = ?, is_hero_image = ?, category_id = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, img.Title, img.Description, img.Category, img.Tags, img.IsFeatured,
		img.IsPublic, img.IsThumbnail, img.IsHeroImage, nullUint64(img.CategoryID), img.ID); err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, img.ID)
	if err != nil {
		return err
	}
	*img = *updated
	return nil
}

func (r *ImageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM images WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
