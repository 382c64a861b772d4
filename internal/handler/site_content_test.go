package handler_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-showcase/internal/handler"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
	"github.com/iliyamo/studio-showcase/internal/router"
)

// memSlides records the page of the last List call.
type memSlides struct {
	mu       sync.Mutex
	rows     map[uint64]*model.HeroSlide
	next     uint64
	lastPage repository.Page
}

func newMemSlides() *memSlides { return &memSlides{rows: map[uint64]*model.HeroSlide{}} }

func (m *memSlides) List(_ context.Context, _ bool, p repository.Page) ([]model.HeroSlide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPage = p
	out := make([]model.HeroSlide, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memSlides) GetByID(_ context.Context, id uint64) (*model.HeroSlide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSlides) Create(_ context.Context, s *model.HeroSlide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	s.ID = m.next
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSlides) Update(_ context.Context, s *model.HeroSlide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSlides) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// knownImages is an ImageLookup over a fixed id set.
type knownImages map[uint64]bool

func (k knownImages) GetByID(_ context.Context, id uint64) (*model.Image, error) {
	if !k[id] {
		return nil, repository.ErrNotFound
	}
	return &model.Image{ID: id}, nil
}

func slideServer(slides *memSlides) server {
	return server{content: router.Content{HeroSlides: handler.NewHeroSlideHandler(slides, knownImages{4: true})}}
}

func TestHeroSlides_CreateChecksImage(t *testing.T) {
	e := slideServer(newMemSlides()).echo()

	rec := sendJSON(e, http.MethodPost, "/api/hero-slides", adminToken, map[string]any{"title": "Spring", "image_id": 99})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "IMAGE_NOT_FOUND", decode(t, rec).Error.Code)

	rec = sendJSON(e, http.MethodPost, "/api/hero-slides", adminToken, map[string]any{"title": "Spring", "image_id": 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var s model.HeroSlide
	decode(t, rec).into(t, &s)
	require.Equal(t, uint64(4), *s.ImageID)
	require.True(t, s.IsActive)

	// no image at all is fine
	rec = sendJSON(e, http.MethodPost, "/api/hero-slides", adminToken, map[string]any{"title": "Plain"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHeroSlides_UpdateChecksImage(t *testing.T) {
	slides := newMemSlides()
	img := uint64(4)
	require.NoError(t, slides.Create(context.Background(), &model.HeroSlide{Title: "Spring", ImageID: &img, IsActive: true}))
	e := slideServer(slides).echo()

	rec := sendJSON(e, http.MethodPut, "/api/hero-slides/1", adminToken, map[string]any{"image_id": 99})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "IMAGE_NOT_FOUND", decode(t, rec).Error.Code)

	stored, err := slides.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, uint64(4), *stored.ImageID)

	rec = sendJSON(e, http.MethodPut, "/api/hero-slides/1", adminToken, map[string]any{"image_id": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s model.HeroSlide
	decode(t, rec).into(t, &s)
	require.Nil(t, s.ImageID)

	rec = sendJSON(e, http.MethodPut, "/api/hero-slides/7", adminToken, map[string]any{"title": "Gone"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "HERO_SLIDE_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestHeroSlides_DefaultLimit(t *testing.T) {
	slides := newMemSlides()
	e := slideServer(slides).echo()

	rec := send(e, http.MethodGet, "/api/hero-slides", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, handler.ListMeta{Skip: 0, Limit: 10, Count: 0}, *decode(t, rec).Meta)
	require.Equal(t, repository.Page{Limit: 10}, slides.lastPage)

	rec = send(e, http.MethodGet, "/api/hero-slides?limit=3", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, slides.lastPage.Limit)
}

// memTestimonials keeps rows in insertion order.
type memTestimonials struct {
	mu   sync.Mutex
	rows []model.Testimonial
}

func (m *memTestimonials) List(context.Context, bool, repository.Page) ([]model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Testimonial(nil), m.rows...), nil
}

func (m *memTestimonials) Featured(_ context.Context, limit int) ([]model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Testimonial, 0)
	for _, t := range m.rows {
		if t.IsFeatured && t.IsActive && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTestimonials) GetByID(_ context.Context, id uint64) (*model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTestimonials) Create(_ context.Context, t *model.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uint64(len(m.rows) + 1)
	m.rows = append(m.rows, *t)
	return nil
}

func (m *memTestimonials) Update(_ context.Context, t *model.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == t.ID {
			m.rows[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memTestimonials) Delete(context.Context, uint64) error { return nil }

func TestTestimonials_RatingBounds(t *testing.T) {
	store := &memTestimonials{}
	e := server{content: router.Content{Testimonials: handler.NewTestimonialHandler(store)}}.echo()

	cases := map[int]string{
		0: "must be at least 1",
		6: "must be at most 5",
	}
	for rating, msg := range cases {
		rec := sendJSON(e, http.MethodPost, "/api/testimonials", adminToken,
			map[string]any{"name": "Lena", "content": "Lovely shoot.", "rating": rating})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "rating %d", rating)
		require.Equal(t, msg, decode(t, rec).Error.Fields["rating"])
	}
	require.Empty(t, store.rows)

	// rating defaults to 5
	rec := sendJSON(e, http.MethodPost, "/api/testimonials", adminToken,
		map[string]any{"name": "Lena", "content": "Lovely shoot.", "is_featured": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tm model.Testimonial
	decode(t, rec).into(t, &tm)
	require.Equal(t, 5, tm.Rating)

	rec = sendJSON(e, http.MethodPut, "/api/testimonials/1", adminToken, map[string]any{"rating": 9})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = sendJSON(e, http.MethodPut, "/api/testimonials/1", adminToken, map[string]any{"rating": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, store.rows[0].Rating)
}

func TestTestimonials_FeaturedDefaultLimit(t *testing.T) {
	store := &memTestimonials{}
	for i := 0; i < 8; i++ {
		store.rows = append(store.rows, model.Testimonial{ID: uint64(i + 1), IsFeatured: true, IsActive: true})
	}
	e := server{content: router.Content{Testimonials: handler.NewTestimonialHandler(store)}}.echo()

	rec := send(e, http.MethodGet, "/api/testimonials/featured", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.Equal(t, 6, env.Meta.Limit)
	require.Equal(t, 6, env.Meta.Count)
}

// memSocial stores links by id.
type memSocial struct {
	mu   sync.Mutex
	rows map[uint64]*model.SocialMedia
}

func (m *memSocial) List(context.Context, bool, repository.Page) ([]model.SocialMedia, error) {
	return nil, nil
}

func (m *memSocial) GetByID(_ context.Context, id uint64) (*model.SocialMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSocial) Create(_ context.Context, s *model.SocialMedia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uint64(len(m.rows) + 1)
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSocial) Update(_ context.Context, s *model.SocialMedia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSocial) Delete(context.Context, uint64) error { return nil }

func TestSocialMedia_ValidatesURL(t *testing.T) {
	store := &memSocial{rows: map[uint64]*model.SocialMedia{}}
	e := server{content: router.Content{SocialMedia: handler.NewSocialMediaHandler(store)}}.echo()

	for _, bad := range []string{"instagram.com/studio", "not a url", ""} {
		rec := sendJSON(e, http.MethodPost, "/api/social-media", adminToken,
			map[string]any{"platform": "instagram", "url": bad})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, bad)
		require.Contains(t, decode(t, rec).Error.Fields, "url")
	}

	rec := sendJSON(e, http.MethodPost, "/api/social-media", adminToken,
		map[string]any{"platform": "instagram", "url": "https://instagram.com/studio"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = sendJSON(e, http.MethodPut, "/api/social-media/1", adminToken, map[string]any{"url": "ftp//broken"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "must be a valid URL", decode(t, rec).Error.Fields["url"])
	require.Equal(t, "https://instagram.com/studio", store.rows[1].URL)
}

// memContact enforces the single-row rule the way the unique key does.
type memContact struct {
	mu  sync.Mutex
	row *model.ContactDetails
}

func (m *memContact) List(context.Context, repository.Page) ([]model.ContactDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil {
		return []model.ContactDetails{}, nil
	}
	return []model.ContactDetails{*m.row}, nil
}

func (m *memContact) GetByID(_ context.Context, id uint64) (*model.ContactDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil || m.row.ID != id {
		return nil, repository.ErrNotFound
	}
	cp := *m.row
	return &cp, nil
}

func (m *memContact) Create(_ context.Context, c *model.ContactDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row != nil {
		return repository.ErrDuplicate
	}
	c.ID = 1
	cp := *c
	m.row = &cp
	return nil
}

func (m *memContact) Update(_ context.Context, c *model.ContactDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.row = &cp
	return nil
}

func (m *memContact) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.row == nil || m.row.ID != id {
		return repository.ErrNotFound
	}
	m.row = nil
	return nil
}

func TestContactDetails_Singleton(t *testing.T) {
	store := &memContact{}
	e := server{content: router.Content{ContactDetails: handler.NewContactDetailsHandler(store)}}.echo()
	body := map[string]any{"email": "hello@studio.test", "phone": "+1 555 0100"}

	rec := sendJSON(e, http.MethodPost, "/api/contact-details", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = sendJSON(e, http.MethodPost, "/api/contact-details", adminToken, body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "CONTACT_DETAILS_EXIST", decode(t, rec).Error.Code)

	rec = sendJSON(e, http.MethodPut, "/api/contact-details/1", adminToken, map[string]any{"email": "nope"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = send(e, http.MethodDelete, "/api/contact-details/1", "", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = sendJSON(e, http.MethodPost, "/api/contact-details", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
}
