package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var (
	errHeroSlideNotFound = apperr.NotFound("HERO_SLIDE_NOT_FOUND", "Hero slide not found.")
	errSlideImageMissing = apperr.NotFound("IMAGE_NOT_FOUND", "Referenced image does not exist.")
)

const defaultSlideLimit = 10

type HeroSlideStore interface {
	List(ctx context.Context, activeOnly bool, p repository.Page) ([]model.HeroSlide, error)
	GetByID(ctx context.Context, id uint64) (*model.HeroSlide, error)
	Create(ctx context.Context, s *model.HeroSlide) error
	Update(ctx context.Context, s *model.HeroSlide) error
	Delete(ctx context.Context, id uint64) error
}

// ImageLookup checks that a referenced image exists.
type ImageLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Image, error)
}

type HeroSlideHandler struct {
	Store  HeroSlideStore
	Images ImageLookup
}

func NewHeroSlideHandler(s HeroSlideStore, images ImageLookup) *HeroSlideHandler {
	return &HeroSlideHandler{Store: s, Images: images}
}

func (h *HeroSlideHandler) List(c echo.Context) error {
	p, err := pageParams(c, defaultSlideLimit)
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
	return list(c, "Hero slides retrieved.", items, p)
}

func (h *HeroSlideHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	s, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errHeroSlideNotFound, nil)
	}
	return ok(c, "Hero slide details retrieved.", s)
}

func (h *HeroSlideHandler) Create(c echo.Context) error {
	var req model.HeroSlideCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.checkImage(ctx, req.ImageID); err != nil {
		return err
	}
	s := req.HeroSlide()
	if err := h.Store.Create(ctx, s); err != nil {
		return storeError(err, nil, nil)
	}
	return created(c, "Hero slide created.", s)
}

func (h *HeroSlideHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.HeroSlidePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	s, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errHeroSlideNotFound, nil)
	}
	if patch.ImageID.Set && patch.ImageID.Valid {
		if err := h.checkImage(ctx, &patch.ImageID.Value); err != nil {
			return err
		}
	}
	patch.Apply(s)
	if err := h.Store.Update(ctx, s); err != nil {
		return storeError(err, errHeroSlideNotFound, nil)
	}
	return ok(c, "Hero slide updated.", s)
}

func (h *HeroSlideHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(err, errHeroSlideNotFound, nil)
	}
	return ok(c, "Hero slide deleted.", nil)
}

func (h *HeroSlideHandler) checkImage(ctx context.Context, id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := h.Images.GetByID(ctx, *id); err != nil {
		return storeError(err, errSlideImageMissing, nil)
	}
	return nil
}
