package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/thanFreecss/celebrity-salon/internal/config"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

func init() { gin.SetMode(gin.TestMode) }

var testCfg = &config.Config{JWTSecret: "test-secret"}

type memCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memCounter) Expire(ctx context.Context, key string, exp time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = exp
	return redis.NewBoolResult(true, nil)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, user *models.User) string {
	t.Helper()
	tok, err := SignToken(testCfg.JWTSecret, user, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testCfg), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID, "email": actor.Email, "role": actor.Role})
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "missing_authorization_header")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, &models.User{ID: 4, Email: "a@x.com", Role: models.RoleCustomer}))
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":4,"email":"a@x.com","role":"customer"}`, w.Body.String())
}

func TestAuthRejectsForeignSignature(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testCfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": 1, "role": models.RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})
	tok, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestOptionalAuthAndRequireAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/open", OptionalAuth(testCfg), func(c *gin.Context) {
		_, ok := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"known": ok})
	})
	r.GET("/admin", AuthMiddleware(testCfg), RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/open", nil))
	require.JSONEq(t, `{"known":false}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", bearer(t, &models.User{ID: 2, Role: models.RoleCustomer}))
	require.JSONEq(t, `{"known":true}`, serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, &models.User{ID: 2, Role: models.RoleCustomer}))
	require.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, &models.User{ID: 1, Role: models.RoleAdmin}))
	require.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestRateLimit(t *testing.T) {
	counter := newMemCounter()
	r := gin.New()
	r.POST("/bookings", RateLimit(counter, "bookings", 2, time.Minute, ByClientIP), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, serve(r, httptest.NewRequest(http.MethodPost, "/bookings", nil)).Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodPost, "/bookings", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Len(t, counter.expires, 1)
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, "x", 1, time.Minute, ByClientIP), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	}
}

func TestRequestIDAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), CORSMiddleware(nil), RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	require.Equal(t, "abc-123", serve(r, req).Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = serve(r, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://Salon.pk/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://salon.pk")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://salon.pk", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), HeaderRequestID)

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
