package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/repository"
)

const (
	dbTimeout = 5 * time.Second
	maxLimit  = 100
)

var errBadBody = apperr.Validation("INVALID_BODY", "Request body could not be parsed.", nil)

// requestCtx bounds the store calls of one request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// bind decodes the body into dst and validates it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errBadBody
	}
	return c.Validate(dst)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("VALIDATION_ERROR", "Invalid path parameter.",
			map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}

// pageParams reads skip and limit. skip must be >= 0 and limit 1..100.
func pageParams(c echo.Context, defaultLimit int) (repository.Page, error) {
	p := repository.Page{Limit: defaultLimit}
	if err := echo.QueryParamsBinder(c).Int("skip", &p.Skip).Int("limit", &p.Limit).BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) && len(be.Field) > 0 {
			return p, apperr.Validation("VALIDATION_ERROR", "Invalid query parameter.", map[string]string{be.Field: "must be an integer"})
		}
		return p, apperr.Validation("VALIDATION_ERROR", "Invalid query parameter.", nil)
	}
	fields := map[string]string{}
	if p.Skip < 0 {
		fields["skip"] = "must be at least 0"
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		fields["limit"] = "must be between 1 and 100"
	}
	if len(fields) > 0 {
		return p, apperr.Validation("VALIDATION_ERROR", "Invalid query parameter.", fields)
	}
	return p, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c echo.Context, name string, def bool) (bool, error) {
	v := def
	if err := echo.QueryParamsBinder(c).Bool(name, &v).BindError(); err != nil {
		return def, apperr.Validation("VALIDATION_ERROR", "Invalid query parameter.", map[string]string{name: "must be a boolean"})
	}
	return v, nil
}

// queryOptBool reads a boolean query parameter that filters only when present.
func queryOptBool(c echo.Context, name string) (*bool, error) {
	if c.QueryParam(name) == "" {
		return nil, nil
	}
	v, err := queryBool(c, name, false)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
