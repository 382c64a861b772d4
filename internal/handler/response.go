package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/repository"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    any        `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code        string            `json:"code"`
	Description string            `json:"description"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// ListMeta echoes the pagination window and the number of items returned.
type ListMeta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// list renders items with meta. A nil slice is sent as [].
func list[T any](c echo.Context, message string, items []T, p repository.Page) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    items,
		Meta:    ListMeta{Skip: p.Skip, Limit: p.Limit, Count: len(items)},
	})
}
