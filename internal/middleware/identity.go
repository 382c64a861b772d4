package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/model"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// CurrentUser returns the user stored by JWTAuth, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}

// currentUserID is the rate limiter's user component: the numeric id as a
// string, or "anon".
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(userIDKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
