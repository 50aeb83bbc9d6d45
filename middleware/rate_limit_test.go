package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"btb_landing_go/services/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})

	assert.NotNil(t, rl)
	assert.Equal(t, 10, rl.config.Requests)
	assert.Equal(t, time.Minute, rl.config.Window)
	assert.NotNil(t, rl.config.KeyFunc)
	assert.NotNil(t, rl.config.Store)
	assert.Equal(t, "default", rl.config.Name)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "success")
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()

	t.Run("WithinLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 2,
			Window:   time.Second,
		})

		handler := rl.Middleware()(okHandler)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			assert.NoError(t, handler(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("ExceededLimit", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
		})

		handler := rl.Middleware()(okHandler)

		// First request (OK)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		assert.NoError(t, handler(c))

		// Second request (Rate Limited)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		rec = httptest.NewRecorder()
		c = e.NewContext(req, rec)
		err := handler(c)

		assert.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, he.Code)
	})

	t.Run("HXRequestExceeded", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Second,
			Message:  "Слишком много заявок",
		})

		handler := rl.Middleware()(okHandler)

		req := httptest.NewRequest(http.MethodPost, "/lead", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))

		req = httptest.NewRequest(http.MethodPost, "/lead", nil)
		req.Header.Set("HX-Request", "true")
		rec = httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		assert.NoError(t, err)
		// htmx only processes 2xx bodies
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Body.String(), `hx-swap-oob="beforeend"`)
		assert.Contains(t, rec.Body.String(), "Слишком много заявок")
		assert.Contains(t, rec.Body.String(), "toast-error")
	})

	t.Run("SendFormMessageIsRussian", func(t *testing.T) {
		assert.Equal(t, "Слишком много запросов. Пожалуйста, попробуйте позже.", SendFormRateLimiter.config.Message)
	})

	t.Run("JSONExceeded", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := metrics.NewLeadMetrics(reg)
		rl := NewRateLimiter(RateLimitConfig{
			Name:     "send_form",
			Requests: 1,
			Window:   time.Second,
			Message:  "Too many requests",
			JSON:     true,
			Metrics:  m,
		})

		handler := rl.Middleware()(okHandler)

		req := httptest.NewRequest(http.MethodPost, "/api/send-form", nil)
		assert.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

		req = httptest.NewRequest(http.MethodPost, "/api/send-form", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Too many requests", body["error"])

		count, err := testutil.GatherAndCount(reg, "landing_http_rate_limited_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("SeparateKeysPerIP", func(t *testing.T) {
		rl := NewRateLimiter(RateLimitConfig{
			Requests: 1,
			Window:   time.Minute,
		})
		handler := rl.Middleware()(okHandler)

		for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(echo.HeaderXRealIP, ip)
			rec := httptest.NewRecorder()
			assert.NoError(t, handler(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 11, 18, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := store.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = store.Allow(ctx, "k", 1, time.Minute)
	assert.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = store.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "lead_form:10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := store.Allow(ctx, "lead_form:10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists("ratelimit:lead_form:10.0.0.1"))
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:lead_form:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = store.Allow(ctx, "lead_form:10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStoreFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	rl := NewRateLimiter(RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
		Store:    NewRedisStore(client),
	})
	handler := rl.Middleware()(okHandler)

	e := echo.New()
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, NewRedisClient(ctx, ""))
	assert.Nil(t, NewRedisClient(ctx, "::not a url::"))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NotNil(t, client)
	client.Close()
}
