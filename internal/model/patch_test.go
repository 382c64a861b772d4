package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullable_DistinguishesAbsentFromNull(t *testing.T) {
	var p ImagePatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dunes"}`), &p))
	require.False(t, p.CategoryID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"category_id":null}`), &p))
	require.True(t, p.CategoryID.Set)
	require.False(t, p.CategoryID.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"category_id":7}`), &p))
	require.True(t, p.CategoryID.Set)
	require.True(t, p.CategoryID.Valid)
	require.Equal(t, uint64(7), p.CategoryID.Value)
}

func TestCategoryPatch_OnlyTouchesPresentFields(t *testing.T) {
	c := &Category{Name: "Weddings", Slug: "weddings", Description: "Vows", IsActive: true, SortOrder: 2}

	var p CategoryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"description":"","is_active":false}`), &p))
	p.Apply(c)

	require.Equal(t, "Weddings", c.Name)
	require.Equal(t, "weddings", c.Slug)
	require.Equal(t, "", c.Description)
	require.False(t, c.IsActive)
	require.Equal(t, 2, c.SortOrder)
}

func TestHeroSlidePatch_ClearsImage(t *testing.T) {
	id := uint64(3)
	s := &HeroSlide{Title: "Spring", ImageID: &id}

	HeroSlidePatch{ImageID: Null[uint64]()}.Apply(s)
	require.Nil(t, s.ImageID)

	HeroSlidePatch{ImageID: Some(uint64(9))}.Apply(s)
	require.NotNil(t, s.ImageID)
	require.Equal(t, uint64(9), *s.ImageID)
	require.Equal(t, "Spring", s.Title)
}

func TestImage_SetCategoryKeepsNameInSync(t *testing.T) {
	img := &Image{Title: "Portrait"}
	img.SetCategory(&Category{ID: 4, Name: "Portraits"})
	require.Equal(t, "Portraits", img.Category)
	require.Equal(t, uint64(4), *img.CategoryID)

	img.SetCategory(nil)
	require.Nil(t, img.CategoryID)
	require.Empty(t, img.Category)
}

func TestTestimonialCreate_DefaultsRating(t *testing.T) {
	tm := TestimonialCreate{Name: "Ana", Content: "Lovely photos"}.Testimonial()
	require.Equal(t, 5, tm.Rating)
	require.True(t, tm.IsActive)

	four := 4
	inactive := false
	tm = TestimonialCreate{Name: "Ana", Content: "ok", Rating: &four, IsActive: &inactive}.Testimonial()
	require.Equal(t, 4, tm.Rating)
	require.False(t, tm.IsActive)
}

func TestNormalizeDay(t *testing.T) {
	d, ok := NormalizeDay(" monday ")
	require.True(t, ok)
	require.Equal(t, "Monday", d)

	_, ok = NormalizeDay("Funday")
	require.False(t, ok)
}

func TestBusinessHours_ValidTimes(t *testing.T) {
	open, closeAt := "09:00", "17:30"
	require.True(t, (&BusinessHours{IsOpen: true, OpenTime: &open, CloseTime: &closeAt}).ValidTimes())
	require.False(t, (&BusinessHours{IsOpen: true, OpenTime: &closeAt, CloseTime: &open}).ValidTimes())
	require.True(t, (&BusinessHours{IsOpen: false}).ValidTimes())
	require.False(t, (&BusinessHours{IsOpen: true, OpenTime: &open}).ValidTimes())
	require.True(t, (&BusinessHours{IsOpen: true, IsByAppointment: true, OpenTime: &open}).ValidTimes())
}

func TestValidClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "23:59"} {
		require.True(t, ValidClock(s), s)
	}
	for _, s := range []string{"24:00", "9:30", "12:60", "12-30", "", "ab:cd"} {
		require.False(t, ValidClock(s), s)
	}
}

func TestRefreshToken_Usable(t *testing.T) {
	now := mustTime(t, "2025-03-01T10:00:00Z")
	tok := RefreshToken{ExpiresAt: now.Add(1)}
	require.True(t, tok.Usable(now))
	require.False(t, tok.Usable(now.Add(1)))
	tok.Revoked = true
	require.False(t, tok.Usable(now))
}
