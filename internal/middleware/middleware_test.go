package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/config"
	"github.com/iliyamo/studio-showcase/internal/model"
)

var (
	errTestUnauth    = apperr.New(apperr.KindUnauthenticated, "UNAUTHENTICATED", "bad token")
	errTestForbidden = apperr.New(apperr.KindForbidden, "FORBIDDEN", "admins only")
)

type fakeGuard map[string]*model.User

func (g fakeGuard) CurrentUser(_ context.Context, token string) (*model.User, error) {
	if u, ok := g[token]; ok {
		return u, nil
	}
	return nil, errTestUnauth
}

func (g fakeGuard) RequireAdmin(u *model.User) error {
	if u == nil {
		return errTestUnauth
	}
	if !u.IsAdmin {
		return errTestForbidden
	}
	return nil
}

// statusHandler renders apperr errors with their status so tests can assert
// on recorder codes without the full envelope handler.
func statusHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if ae, ok := apperr.As(err); ok {
		_ = c.JSON(ae.HTTPStatus(), map[string]string{"code": ae.Code})
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.NoContent(http.StatusInternalServerError)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = statusHandler
	return e
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminChain(t *testing.T) {
	guard := fakeGuard{
		"admin-token": {ID: 1, Username: "root", IsAdmin: true, IsActive: true},
		"user-token":  {ID: 2, Username: "mira", IsActive: true},
	}
	e := newEcho()
	e.POST("/api/categories", func(c echo.Context) error {
		return c.String(http.StatusCreated, CurrentUser(c).Username)
	}, JWTAuth(guard), RequireAdmin(guard))

	rec := do(e, http.MethodPost, "/api/categories", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = do(e, http.MethodPost, "/api/categories", "forged")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/api/categories", "user-token")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodPost, "/api/categories", "admin-token")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "root", rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
	}
	for header, want := range cases {
		got, ok := bearerToken(header)
		require.Equal(t, want, got, header)
		require.Equal(t, want != "", ok, header)
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestTokenBucket_BlocksAfterCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
	e := newEcho()
	e.POST("/api/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb, nil))

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodPost, "/api/auth/login", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
	}
	rec := do(e, http.MethodPost, "/api/auth/login", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestTokenBucket_FailsOpenWithoutRedis(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute, TTL: time.Minute, Prefix: "rl"}
	e := newEcho()
	e.POST("/api/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb, nil))

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/auth/login", "").Code)
	}
}

func newCachedEcho(t *testing.T, rdb *redis.Client, hits *int32) *echo.Echo {
	t.Helper()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 20}
	e := newEcho()
	g := e.Group("/api", NewRedisCache(cfg, rdb, nil))
	g.GET("/categories", func(c echo.Context) error {
		n := atomic.AddInt32(hits, 1)
		return c.JSON(http.StatusOK, map[string]int32{"n": n})
	})
	g.GET("/testimonials", func(c echo.Context) error {
		n := atomic.AddInt32(hits, 1)
		return c.JSON(http.StatusOK, map[string]int32{"n": n})
	})
	g.POST("/categories", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	g.DELETE("/categories/:id", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })
	return e
}

func TestRedisCache_HitMissAndGroupPurge(t *testing.T) {
	mr, rdb := newRedis(t)
	var hits int32
	e := newCachedEcho(t, rdb, &hits)

	rec := do(e, http.MethodGet, "/api/categories?skip=0", "")
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec = do(e, http.MethodGet, "/api/categories?skip=0", "")
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	require.JSONEq(t, `{"n":1}`, rec.Body.String())

	do(e, http.MethodGet, "/api/testimonials", "")
	require.Len(t, mr.Keys(), 2)

	// A failed write leaves the cache alone.
	do(e, http.MethodDelete, "/api/categories/9", "admin")
	require.Len(t, mr.Keys(), 2)

	rec = do(e, http.MethodPost, "/api/categories", "admin")
	require.Equal(t, http.StatusCreated, rec.Code)
	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.True(t, strings.HasPrefix(keys[0], "cache:testimonials:"))

	rec = do(e, http.MethodGet, "/api/categories?skip=0", "")
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.JSONEq(t, `{"n":3}`, rec.Body.String())
}

func TestRedisCache_SkipsAuthorizedReads(t *testing.T) {
	mr, rdb := newRedis(t)
	var hits int32
	e := newCachedEcho(t, rdb, &hits)

	do(e, http.MethodGet, "/api/categories", "someone")
	do(e, http.MethodGet, "/api/categories", "someone")
	require.Equal(t, int32(2), atomic.LoadInt32(&hits))
	require.Empty(t, mr.Keys())
}

func TestRedisCache_WritePurgesDependentGroups(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}
	e := newEcho()
	g := e.Group("/api", NewRedisCache(cfg, rdb, nil))
	for _, path := range []string{"/images", "/hero-slides", "/testimonials", "/categories"} {
		g.GET(path, func(c echo.Context) error { return c.JSON(http.StatusOK, []int{}) })
	}
	g.DELETE("/images/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	g.PUT("/categories/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	warm := func() {
		for _, path := range []string{"/api/images", "/api/hero-slides", "/api/testimonials", "/api/categories"} {
			do(e, http.MethodGet, path, "")
		}
		require.Len(t, mr.Keys(), 4)
	}
	groupsLeft := func() []string {
		var out []string
		for _, k := range mr.Keys() {
			out = append(out, strings.Split(k, ":")[1])
		}
		return out
	}

	warm()
	do(e, http.MethodDelete, "/api/images/4", "admin")
	require.ElementsMatch(t, []string{"testimonials", "categories"}, groupsLeft())

	mr.FlushAll()
	warm()
	do(e, http.MethodPut, "/api/categories/2", "admin")
	require.ElementsMatch(t, []string{"testimonials"}, groupsLeft())
}

func TestCacheGroup(t *testing.T) {
	require.Equal(t, "hero-slides", cacheGroup("/api/hero-slides/:id"))
	require.Equal(t, "images", cacheGroup("/api/images"))
	require.Equal(t, "", cacheGroup("/health"))
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	guard := fakeGuard{}
	e := newEcho()
	e.Use(m.Middleware())
	e.GET("/api/images/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.DELETE("/api/images/:id", func(c echo.Context) error { return nil }, JWTAuth(guard))

	do(e, http.MethodGet, "/api/images/1", "")
	do(e, http.MethodGet, "/api/images/2", "")
	do(e, http.MethodDelete, "/api/images/2", "")

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/images/:id", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "/api/images/:id", "401")))
}
