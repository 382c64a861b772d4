package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var errSocialMediaNotFound = apperr.NotFound("SOCIAL_MEDIA_NOT_FOUND", "Social media link not found.")

type SocialMediaStore interface {
	List(ctx context.Context, activeOnly bool, p repository.Page) ([]model.SocialMedia, error)
	GetByID(ctx context.Context, id uint64) (*model.SocialMedia, error)
	Create(ctx context.Context, m *model.SocialMedia) error
	Update(ctx context.Context, m *model.SocialMedia) error
	Delete(ctx context.Context, id uint64) error
}

type SocialMediaHandler struct {
	Store SocialMediaStore
}

func NewSocialMediaHandler(s SocialMediaStore) *SocialMediaHandler {
	return &SocialMediaHandler{Store: s}
}

func (h *SocialMediaHandler) List(c echo.Context) error {
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
	return list(c, "Social media links retrieved.", items, p)
}

func (h *SocialMediaHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errSocialMediaNotFound, nil)
	}
	return ok(c, "Social media link retrieved.", m)
}

func (h *SocialMediaHandler) Create(c echo.Context) error {
	var req model.SocialMediaCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	m := req.SocialMedia()
	if err := h.Store.Create(ctx, m); err != nil {
		return storeError(err, nil, nil)
	}
	return created(c, "Social media link created.", m)
}

func (h *SocialMediaHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.SocialMediaPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errSocialMediaNotFound, nil)
	}
	patch.Apply(m)
	if err := h.Store.Update(ctx, m); err != nil {
		return storeError(err, errSocialMediaNotFound, nil)
	}
	return ok(c, "Social media link updated.", m)
}

func (h *SocialMediaHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(err, errSocialMediaNotFound, nil)
	}
	return ok(c, "Social media link deleted.", nil)
}
