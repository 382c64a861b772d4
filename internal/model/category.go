package model

import "time"

type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryCreate struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (in CategoryCreate) Category() *Category {
	c := &Category{
		Name:        in.Name,
		Description: in.Description,
		Slug:        in.Slug,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	assign(&c.IsActive, in.IsActive)
	return c
}

type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Slug        *string `json:"slug" validate:"omitempty,max=100,slug"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func (p CategoryPatch) Apply(c *Category) {
	assign(&c.Name, p.Name)
	assign(&c.Description, p.Description)
	assign(&c.Slug, p.Slug)
	assign(&c.IsActive, p.IsActive)
	assign(&c.SortOrder, p.SortOrder)
}
