package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB      Pinger
	Service string
}

func NewHealthHandler(db Pinger, service string) *HealthHandler {
	return &HealthHandler{DB: db, Service: service}
}

func (h *HealthHandler) Root(c echo.Context) error {
	return ok(c, "Welcome to the studio showcase API.", echo.Map{"service": h.Service})
}

// Health is a liveness check: it never touches dependencies.
func (h *HealthHandler) Health(c echo.Context) error {
	return ok(c, "ok", echo.Map{"status": "healthy"})
}

// Ready pings the database with a short deadline.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return apperr.Upstream("DATABASE_UNAVAILABLE", "Database is unreachable.", err).WithStatus(http.StatusServiceUnavailable)
	}
	return ok(c, "ok", echo.Map{"status": "healthy", "database": "up"})
}
