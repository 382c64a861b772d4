package model

import "time"

// Image is an uploaded picture. Category mirrors the name of the category
// referenced by CategoryID whenever CategoryID is set.
type Image struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Category    string    `json:"category"`
	Tags        string    `json:"tags"`
	IsFeatured  bool      `json:"is_featured"`
	IsPublic    bool      `json:"is_public"`
	IsThumbnail bool      `json:"is_thumbnail"`
	IsHeroImage bool      `json:"is_hero_image"`
	OwnerID     uint64    `json:"owner_id"`
	CategoryID  *uint64   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImageMeta is the descriptive part of an upload, sent as multipart fields.
type ImageMeta struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Category    string  `json:"category" validate:"max=100"`
	Tags        string  `json:"tags" validate:"max=500"`
	IsFeatured  bool    `json:"is_featured"`
	IsPublic    *bool   `json:"is_public"`
	IsThumbnail bool    `json:"is_thumbnail"`
	IsHeroImage bool    `json:"is_hero_image"`
	CategoryID  *uint64 `json:"category_id"`
}

type ImagePatch struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Tags        *string          `json:"tags" validate:"omitempty,max=500"`
	IsFeatured  *bool            `json:"is_featured"`
	IsPublic    *bool            `json:"is_public"`
	IsThumbnail *bool            `json:"is_thumbnail"`
	IsHeroImage *bool            `json:"is_hero_image"`
	CategoryID  Nullable[uint64] `json:"category_id"`
}

// Apply merges the plain fields. CategoryID is applied separately because
// it also drives the denormalized Category name.
func (p ImagePatch) Apply(img *Image) {
	assign(&img.Title, p.Title)
	assign(&img.Description, p.Description)
	assign(&img.Category, p.Category)
	assign(&img.Tags, p.Tags)
	assign(&img.IsFeatured, p.IsFeatured)
	assign(&img.IsPublic, p.IsPublic)
	assign(&img.IsThumbnail, p.IsThumbnail)
	assign(&img.IsHeroImage, p.IsHeroImage)
}

// SetCategory links img to c, or unlinks it when c is nil.
func (img *Image) SetCategory(c *Category) {
	if c == nil {
		img.CategoryID = nil
		img.Category = ""
		return
	}
	id := c.ID
	img.CategoryID = &id
	img.Category = c.Name
}
