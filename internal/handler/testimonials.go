package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var errTestimonialNotFound = apperr.NotFound("TESTIMONIAL_NOT_FOUND", "Testimonial not found.")

const defaultFeaturedLimit = 6

type TestimonialStore interface {
	List(ctx context.Context, activeOnly bool, p repository.Page) ([]model.Testimonial, error)
	Featured(ctx context.Context, limit int) ([]model.Testimonial, error)
	GetByID(ctx context.Context, id uint64) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id uint64) error
}

type TestimonialHandler struct {
	Store TestimonialStore
}

func NewTestimonialHandler(s TestimonialStore) *TestimonialHandler {
	return &TestimonialHandler{Store: s}
}

func (h *TestimonialHandler) List(c echo.Context) error {
	p, err := pageParams(c, maxLimit)
	if err != nil {
		return err
	}
	activeOnly, err := queryBool(c, "active_only", true)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Store.List(ctx, activeOnly, p)
	if err != nil {
		return storeError(err, nil, nil)
	}
	return list(c, "Testimonials retrieved.", items, p)
}

// Featured lists active featured testimonials for the home page.
func (h *TestimonialHandler) Featured(c echo.Context) error {
	p, err := pageParams(c, defaultFeaturedLimit)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Store.Featured(ctx, p.Limit)
	if err != nil {
		return storeError(err, nil, nil)
	}
	return list(c, "Featured testimonials retrieved.", items, repository.Page{Limit: p.Limit})
}

func (h *TestimonialHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	t, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errTestimonialNotFound, nil)
	}
	return ok(c, "Testimonial details retrieved.", t)
}

func (h *TestimonialHandler) Create(c echo.Context) error {
	var req model.TestimonialCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	t := req.Testimonial()
	if err := h.Store.Create(ctx, t); err != nil {
		return storeError(err, nil, nil)
	}
	return created(c, "Testimonial created.", t)
}

func (h *TestimonialHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.TestimonialPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	t, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errTestimonialNotFound, nil)
	}
	patch.Apply(t)
	if err := h.Store.Update(ctx, t); err != nil {
		return storeError(err, errTestimonialNotFound, nil)
	}
	return ok(c, "Testimonial updated.", t)
}

func (h *TestimonialHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(err, errTestimonialNotFound, nil)
	}
	return ok(c, "Testimonial deleted.", nil)
}
