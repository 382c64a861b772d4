package model

import "time"

type HeroSlide struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	ButtonText  string    `json:"button_text"`
	ButtonLink  string    `json:"button_link"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	ImageID     *uint64   `json:"image_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HeroSlideCreate struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Subtitle    string  `json:"subtitle" validate:"max=300"`
	Description string  `json:"description" validate:"max=2000"`
	ButtonText  string  `json:"button_text" validate:"max=100"`
	ButtonLink  string  `json:"button_link" validate:"max=500"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
	ImageID     *uint64 `json:"image_id"`
}

func (in HeroSlideCreate) HeroSlide() *HeroSlide {
	s := &HeroSlide{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		ButtonText:  in.ButtonText,
		ButtonLink:  in.ButtonLink,
		IsActive:    true,
		SortOrder:   in.SortOrder,
		ImageID:     in.ImageID,
	}
	assign(&s.IsActive, in.IsActive)
	return s
}

type HeroSlidePatch struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Subtitle    *string          `json:"subtitle" validate:"omitempty,max=300"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	ButtonText  *string          `json:"button_text" validate:"omitempty,max=100"`
	ButtonLink  *string          `json:"button_link" validate:"omitempty,max=500"`
	IsActive    *bool            `json:"is_active"`
	SortOrder   *int             `json:"sort_order"`
	ImageID     Nullable[uint64] `json:"image_id"`
}

func (p HeroSlidePatch) Apply(s *HeroSlide) {
	assign(&s.Title, p.Title)
	assign(&s.Subtitle, p.Subtitle)
	assign(&s.Description, p.Description)
	assign(&s.ButtonText, p.ButtonText)
	assign(&s.ButtonLink, p.ButtonLink)
	assign(&s.IsActive, p.IsActive)
	assign(&s.SortOrder, p.SortOrder)
	assignNullable(&s.ImageID, p.ImageID)
}
