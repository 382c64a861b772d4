package model

import "time"

type Testimonial struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	ImageURL   string    `json:"image_url"`
	IsFeatured bool      `json:"is_featured"`
	IsActive   bool      `json:"is_active"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TestimonialCreate struct {
	Name       string `json:"name" validate:"required,max=100"`
	Title      string `json:"title" validate:"max=100"`
	Company    string `json:"company" validate:"max=100"`
	Content    string `json:"content" validate:"required,max=5000"`
	Rating     *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	ImageURL   string `json:"image_url" validate:"omitempty,max=500"`
	IsFeatured bool   `json:"is_featured"`
	IsActive   *bool  `json:"is_active"`
	SortOrder  int    `json:"sort_order"`
}

func (in TestimonialCreate) Testimonial() *Testimonial {
	t := &Testimonial{
		Name:       in.Name,
		Title:      in.Title,
		Company:    in.Company,
		Content:    in.Content,
		Rating:     5,
		ImageURL:   in.ImageURL,
		IsFeatured: in.IsFeatured,
		IsActive:   true,
		SortOrder:  in.SortOrder,
	}
	assign(&t.Rating, in.Rating)
	assign(&t.IsActive, in.IsActive)
	return t
}

type TestimonialPatch struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Title      *string `json:"title" validate:"omitempty,max=100"`
	Company    *string `json:"company" validate:"omitempty,max=100"`
	Content    *string `json:"content" validate:"omitempty,min=1,max=5000"`
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	ImageURL   *string `json:"image_url" validate:"omitempty,max=500"`
	IsFeatured *bool   `json:"is_featured"`
	IsActive   *bool   `json:"is_active"`
	SortOrder  *int    `json:"sort_order"`
}

func (p TestimonialPatch) Apply(t *Testimonial) {
	assign(&t.Name, p.Name)
	assign(&t.Title, p.Title)
	assign(&t.Company, p.Company)
	assign(&t.Content, p.Content)
	assign(&t.Rating, p.Rating)
	assign(&t.ImageURL, p.ImageURL)
	assign(&t.IsFeatured, p.IsFeatured)
	assign(&t.IsActive, p.IsActive)
	assign(&t.SortOrder, p.SortOrder)
}
