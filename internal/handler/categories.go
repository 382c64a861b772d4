package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var (
	errCategoryNotFound = apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found.")
	errCategoryExists   = apperr.Conflict("CATEGORY_EXISTS", "A category with this name or slug already exists.")
)

type CategoryStore interface {
	List(ctx context.Context, activeOnly bool, p repository.Page) ([]model.Category, error)
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
}

type CategoryHandler struct {
	Store CategoryStore
}

func NewCategoryHandler(s CategoryStore) *CategoryHandler { return &CategoryHandler{Store: s} }

func (h *CategoryHandler) List(c echo.Context) error {
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
	return list(c, "Categories retrieved.", items, p)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errCategoryNotFound, nil)
	}
	return ok(c, "Category details retrieved.", cat)
}

func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat, err := h.Store.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return storeError(err, errCategoryNotFound, nil)
	}
	return ok(c, "Category details retrieved.", cat)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req model.CategoryCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat := req.Category()
	if err := h.Store.Create(ctx, cat); err != nil {
		return storeError(err, nil, errCategoryExists)
	}
	return created(c, "Category created.", cat)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.CategoryPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errCategoryNotFound, nil)
	}
	patch.Apply(cat)
	if err := h.Store.Update(ctx, cat); err != nil {
		return storeError(err, errCategoryNotFound, errCategoryExists)
	}
	return ok(c, "Category updated.", cat)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(err, errCategoryNotFound, nil)
	}
	return ok(c, "Category deleted.", nil)
}
