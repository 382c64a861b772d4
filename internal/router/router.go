// Package router registers the HTTP routes and their middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/handler"
	"github.com/iliyamo/studio-showcase/internal/middleware"
)

// Deps carries the middleware shared across route groups. Nil RateLimit or
// Cache means the feature is off.
type Deps struct {
	Guard     middleware.Guard
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Ready)
}

// RegisterAuth mounts /api/auth behind the rate limiter. Register, login,
// refresh and logout are public; me and change-password need a bearer
// token. The limiter is attached per route, after JWTAuth on the
// authenticated ones, so user-keyed strategies see the caller's id there.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, d Deps) {
	g := e.Group("/api/auth")
	limit := optional(d.RateLimit)
	g.POST("/register", a.Register, limit...)
	g.POST("/login", a.Login, limit...)
	g.POST("/refresh", a.Refresh, limit...)
	g.POST("/logout", a.Logout, limit...)

	authed := append([]echo.MiddlewareFunc{middleware.JWTAuth(d.Guard)}, limit...)
	g.GET("/me", a.Me, authed...)
	g.POST("/change-password", a.ChangePassword, authed...)
}

func optional(mw echo.MiddlewareFunc) []echo.MiddlewareFunc {
	if mw == nil {
		return nil
	}
	return []echo.MiddlewareFunc{mw}
}
