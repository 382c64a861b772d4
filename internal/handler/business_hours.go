package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
)

var (
	errHoursNotFound = apperr.NotFound("BUSINESS_HOURS_NOT_FOUND", "No business hours recorded for this day.")
	errHoursExist    = apperr.Conflict("BUSINESS_HOURS_EXIST", "Business hours for this day already exist.")
	errHoursWindow   = apperr.Validation("VALIDATION_ERROR", "Request validation failed.",
		map[string]string{"close_time": "must be after open_time when the day is open"})
)

type BusinessHoursStore interface {
	List(ctx context.Context) ([]model.BusinessHours, error)
	GetByDay(ctx context.Context, day string) (*model.BusinessHours, error)
	Create(ctx context.Context, b *model.BusinessHours) error
	Update(ctx context.Context, b *model.BusinessHours) error
	DeleteByDay(ctx context.Context, day string) error
}

// BusinessHoursHandler addresses rows by weekday name, in any casing.
type BusinessHoursHandler struct {
	Store BusinessHoursStore
}

func NewBusinessHoursHandler(s BusinessHoursStore) *BusinessHoursHandler {
	return &BusinessHoursHandler{Store: s}
}

func (h *BusinessHoursHandler) List(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Store.List(ctx)
	if err != nil {
		return storeError(err, nil, nil)
	}
	if items == nil {
		items = []model.BusinessHours{}
	}
	return ok(c, "Business hours retrieved.", items)
}

func (h *BusinessHoursHandler) Get(c echo.Context) error {
	day, err := pathDay(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Store.GetByDay(ctx, day)
	if err != nil {
		return storeError(err, errHoursNotFound, nil)
	}
	return ok(c, "Business hours retrieved.", b)
}

func (h *BusinessHoursHandler) Create(c echo.Context) error {
	var req model.BusinessHoursCreate
	if err := bind(c, &req); err != nil {
		return err
	}
	b := req.BusinessHours()
	if !b.ValidTimes() {
		return errHoursWindow
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.Create(ctx, b); err != nil {
		return storeError(err, nil, errHoursExist)
	}
	return created(c, "Business hours created.", b)
}

func (h *BusinessHoursHandler) Update(c echo.Context) error {
	day, err := pathDay(c)
	if err != nil {
		return err
	}
	var patch model.BusinessHoursPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	if err := validatePatchTimes(patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	b, err := h.Store.GetByDay(ctx, day)
	if err != nil {
		return storeError(err, errHoursNotFound, nil)
	}
	patch.Apply(b)
	if !b.ValidTimes() {
		return errHoursWindow
	}
	if err := h.Store.Update(ctx, b); err != nil {
		return storeError(err, errHoursNotFound, nil)
	}
	return ok(c, "Business hours updated.", b)
}

func (h *BusinessHoursHandler) Delete(c echo.Context) error {
	day, err := pathDay(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Store.DeleteByDay(ctx, day); err != nil {
		return storeError(err, errHoursNotFound, nil)
	}
	return ok(c, "Business hours deleted.", nil)
}

func pathDay(c echo.Context) (string, error) {
	day, found := model.NormalizeDay(c.Param("day"))
	if !found {
		return "", apperr.Validation("VALIDATION_ERROR", "Invalid path parameter.",
			map[string]string{"day": "must be a day of the week"})
	}
	return day, nil
}

// validatePatchTimes checks the nullable time fields, which the struct
// validator cannot see into.
func validatePatchTimes(p model.BusinessHoursPatch) error {
	fields := map[string]string{}
	if p.OpenTime.Valid && !model.ValidClock(p.OpenTime.Value) {
		fields["open_time"] = "must be a time formatted HH:MM"
	}
	if p.CloseTime.Valid && !model.ValidClock(p.CloseTime.Value) {
		fields["close_time"] = "must be a time formatted HH:MM"
	}
	if len(fields) > 0 {
		return apperr.Validation("VALIDATION_ERROR", "Request validation failed.", fields)
	}
	return nil
}
