package middleware

import "github.com/labstack/echo/v4"

// RequireAdmin lets the request through only when the user stored by
// JWTAuth passes guard.RequireAdmin. It must be chained after JWTAuth: on
// its own there is no user in the context and every request gets a 401.
// A signed-in user without the admin flag gets a 403.
func RequireAdmin(guard Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// CurrentUser is nil when JWTAuth did not run, which the guard
			// reports as unauthenticated.
			if err := guard.RequireAdmin(CurrentUser(c)); err != nil {
				return err
			}
			// Otherwise call the next handler in the chain.
			return next(c)
		}
	}
}
