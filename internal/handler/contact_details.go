package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

var (
	errContactNotFound = apperr.NotFound("CONTACT_DETAILS_NOT_FOUND", "Contact details not found.")
	errContactExists   = apperr.Conflict("CONTACT_DETAILS_EXIST", "Contact details already exist; update the existing record.")
)

type ContactDetailsStore interface {
	List(ctx context.Context, p repository.Page) ([]model.ContactDetails, error)
	GetByID(ctx context.Context, id uint64) (*model.ContactDetails, error)
	Create(ctx context.Context, c *model.ContactDetails) error
	Update(ctx context.Context, c *model.ContactDetails) error
	Delete(ctx context.Context, id uint64) error
}

// ContactDetailsHandler manages the single contact record.
type ContactDetailsHandler struct {
	Store ContactDetailsStore
}

func NewContactDetailsHandler(s ContactDetailsStore) *ContactDetailsHandler {
	return &ContactDetailsHandler{Store: s}
}

func (h *ContactDetailsHandler) List(c echo.Context) error {
	p, err := pageParams(c, maxLimit)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Store.List(ctx, p)
	if err != nil {
		return storeError(err, nil, nil)
	}
	return list(c, "Contact details retrieved.", items, p)
}

func (h *ContactDetailsHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cd, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errContactNotFound, nil)
	}
	return ok(c, "Contact details retrieved.", cd)
}

func (h *ContactDetailsHandler) Create(c echo.Context) error {
	var req model.ContactDetailsCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cd := req.ContactDetails()
	if err := h.Store.Create(ctx, cd); err != nil {
		return storeError(err, nil, errContactExists)
	}
	return created(c, "Contact details created.", cd)
}

func (h *ContactDetailsHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.ContactDetailsPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cd, err := h.Store.GetByID(ctx, id)
	if err != nil {
		return storeError(err, errContactNotFound, nil)
	}
	patch.Apply(cd)
	if err := h.Store.Update(ctx, cd); err != nil {
		return storeError(err, errContactNotFound, nil)
	}
	return ok(c, "Contact details updated.", cd)
}

func (h *ContactDetailsHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		return storeError(err, errContactNotFound, nil)
	}
	return ok(c, "Contact details deleted.", nil)
}
