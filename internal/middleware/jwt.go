package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
)

// Guard resolves bearer tokens to users and decides admin access.
// *service.AuthService satisfies it.
type Guard interface {
	CurrentUser(ctx context.Context, accessToken string) (*model.User, error)
	RequireAdmin(u *model.User) error
}

var errMissingBearer = apperr.New(apperr.KindUnauthenticated, "UNAUTHENTICATED", "Not authenticated.")

// JWTAuth validates the Bearer access token and stores the resolved user in
// the context under "user" and its id under "user_id". Handlers read the
// user back with CurrentUser; the rate limiter reads the id. Every 401 it
// produces carries a WWW-Authenticate: Bearer header.
func JWTAuth(guard Guard) echo.MiddlewareFunc {
	// The outer function runs once at route registration.
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		// The inner handler runs for every request on the route.
		return func(c echo.Context) error {
			// The header must read "Bearer <token>"; the scheme is matched
			// case-insensitively.
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return errMissingBearer
			}
			// The guard verifies the signature and expiry, then loads the
			// subject. Unknown and inactive users come back unauthenticated.
			u, err := guard.CurrentUser(c.Request().Context(), raw)
			if err != nil {
				// Store failures pass through untouched and render as 500.
				if ae, ok := apperr.As(err); ok && ae.Kind == apperr.KindUnauthenticated {
					c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				}
				return err
			}
			// Expose the user to the handler and the id to middleware
			// chained after this one.
			c.Set(userKey, u)
			c.Set(userIDKey, strconv.FormatUint(u.ID, 10))
			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value. An
// empty token after the scheme counts as missing.
func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
