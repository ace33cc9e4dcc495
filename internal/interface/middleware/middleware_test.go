package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	valid, _, err := jwt.Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	other, _, err := helpers.NewJWTManager("other", time.Hour).Issue("64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "No token, authorization denied"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "No token, authorization denied"},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, "Token is not valid"},
		{"other secret", "Bearer " + other, http.StatusUnauthorized, "Token is not valid"},
		{"valid", "Bearer " + valid, http.StatusOK, "64b7f0c2a1b2c3d4e5f60718"},
		{"lower-case scheme", "bearer " + valid, http.StatusOK, "64b7f0c2a1b2c3d4e5f60718"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			w := do(r, http.MethodGet, "/me", h)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestIDEchoedInErrors(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", Auth(helpers.NewJWTManager("s", time.Hour)), func(c *gin.Context) {})

	w := do(r, http.MethodGet, "/x", nil)
	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Contains(t, w.Body.String(), `"requestId":"`+id+`"`)

	keep := "0b6e4c1e-2f51-4a43-9a70-3c1f2b8f9d11"
	w = do(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: keep})
	assert.Equal(t, keep, w.Header().Get(RequestIDHeader))

	w = do(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	assert.Equal(t, "203.0.113.7", do(r, http.MethodGet, "/ip", map[string]string{"CF-Connecting-IP": "203.0.113.7"}).Body.String())
	assert.Equal(t, "198.51.100.1", do(r, http.MethodGet, "/ip", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}).Body.String())
	assert.Equal(t, "192.0.2.1", do(r, http.MethodGet, "/ip", nil).Body.String())
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimit(t *testing.T) {
	mr, rdb := newRedis(t)
	r := gin.New()
	r.Use(NewLimiter(rdb, nil).Limit(Rule{Max: 2, Window: time.Minute, Key: KeyByIP()}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/x", nil).Code)

	w = do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	// preflight requests are never counted
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodOptions, "/x", nil).Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodGet, "/x", nil).Code)
}

func TestRateLimitBypassAndFailOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(NewLimiter(rdb, logger).Limit(Rule{Max: 1, Window: time.Minute, Key: KeyByIP(), Allow: AllowPaths("/health")}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", nil).Code)
	}

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	}
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(NewLimiter(nil, nil).Limit(Rule{Max: 1, Window: time.Minute, Key: KeyByIP()}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	}
}

func TestKeyByUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("real_ip", "203.0.113.9")
	assert.Equal(t, "rl:user:anon:ip:203.0.113.9", KeyByUserID()(c))
	c.Set(CtxUserIDKey, "u1")
	assert.Equal(t, "rl:user:u1", KeyByUserID()(c))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("jobboard", prometheus.NewRegistry())
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/jobs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	do(r, http.MethodGet, "/jobs/1", nil)
	do(r, http.MethodGet, "/jobs/2", nil)
	do(r, http.MethodGet, "/nope", nil)

	body := do(r, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, body, `jobboard_http_requests_total{method="GET",route="/jobs/:id",status="200"} 2`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
	assert.False(t, strings.Contains(body, `route="/jobs/1"`))
}

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLog(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	do(r, http.MethodGet, "/ok", nil)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, 200, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])

	do(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
