package model

import "time"

type SocialMedia struct {
	ID          uint64    `json:"id"`
	Platform    string    `json:"platform"`
	URL         string    `json:"url"`
	IconName    string    `json:"icon_name"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SocialMediaCreate struct {
	Platform    string `json:"platform" validate:"required,max=50"`
	URL         string `json:"url" validate:"required,url,max=500"`
	IconName    string `json:"icon_name" validate:"max=50"`
	DisplayName string `json:"display_name" validate:"max=100"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (in SocialMediaCreate) SocialMedia() *SocialMedia {
	s := &SocialMedia{
		Platform:    in.Platform,
		URL:         in.URL,
		IconName:    in.IconName,
		DisplayName: in.DisplayName,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	assign(&s.IsActive, in.IsActive)
	return s
}

type SocialMediaPatch struct {
	Platform    *string `json:"platform" validate:"omitempty,min=1,max=50"`
	URL         *string `json:"url" validate:"omitempty,url,max=500"`
	IconName    *string `json:"icon_name" validate:"omitempty,max=50"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func (p SocialMediaPatch) Apply(s *SocialMedia) {
	assign(&s.Platform, p.Platform)
	assign(&s.URL, p.URL)
	assign(&s.IconName, p.IconName)
	assign(&s.DisplayName, p.DisplayName)
	assign(&s.IsActive, p.IsActive)
	assign(&s.SortOrder, p.SortOrder)
}
