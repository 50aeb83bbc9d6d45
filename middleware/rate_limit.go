package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"btb_landing_go/services/metrics"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Name identifies the limiter in metrics and store keys
	Name string
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
	// JSON answers {"error": Message} instead of an HTML fragment or HTTP error
	JSON bool
	// Store keeps the counters (defaults to an in-process map)
	Store RateLimitStore
	// Metrics counts rejected requests, optional
	Metrics *metrics.LeadMetrics
}

// RateLimitStore counts hits per key inside a fixed window
type RateLimitStore interface {
	// Allow records one hit for key and reports whether it is within limit
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryStore keeps counters in process memory
type MemoryStore struct {
	store map[string]*rateLimitEntry
	mu    sync.Mutex
	now   func() time.Time
}

// NewMemoryStore creates an in-process store and starts its cleanup loop
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		store: make(map[string]*rateLimitEntry),
		now:   time.Now,
	}

	// Start cleanup goroutine
	go s.cleanup()

	return s
}

func (s *MemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.store[key]
	if !exists || now.After(entry.expiresAt) {
		// Create new entry or reset expired entry
		s.store[key] = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
		return true, nil
	}

	if entry.count >= limit {
		return false, nil
	}

	entry.count++
	return true, nil
}

// cleanup removes expired entries every minute
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		s.mu.Lock()
		now := s.now()
		for key, entry := range s.store {
			if now.After(entry.expiresAt) {
				delete(s.store, key)
			}
		}
		s.mu.Unlock()
	}
}

// RedisStore keeps counters in Redis so limits hold across server instances
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	key = s.prefix + key

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(limit), nil
}

// NewRedisClient parses redisURL and verifies the connection.
// Returns nil when the URL is empty or Redis is unreachable.
func NewRedisClient(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARNING] Invalid REDIS_URL, using in-memory rate limits: %v", err)
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[WARNING] Redis not available, using in-memory rate limits: %v", err)
		client.Close()
		return nil
	}
	return client
}

// RateLimiter is a per-endpoint rate limiter
type RateLimiter struct {
	config RateLimitConfig
	mu     sync.RWMutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.Name == "" {
		config.Name = "default"
	}
	if config.Store == nil {
		config.Store = NewMemoryStore()
	}

	return &RateLimiter{config: config}
}

// UseStore switches the counter store, e.g. to Redis once it is connected
func (rl *RateLimiter) UseStore(store RateLimitStore) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.config.Store = store
}

// UseMetrics attaches a metrics recorder for rejected requests
func (rl *RateLimiter) UseMetrics(m *metrics.LeadMetrics) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.config.Metrics = m
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rl.mu.RLock()
			cfg := rl.config
			rl.mu.RUnlock()

			key := cfg.Name + ":" + cfg.KeyFunc(c)
			allowed, err := cfg.Store.Allow(c.Request().Context(), key, cfg.Requests, cfg.Window)
			if err != nil {
				// Store unavailable, let the request through
				c.Logger().Errorf("Rate limit store error for %s: %v", cfg.Name, err)
				return next(c)
			}
			if allowed {
				return next(c)
			}

			cfg.Metrics.ObserveRateLimited(cfg.Name)

			// Return rate limit exceeded error
			if cfg.JSON {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": cfg.Message})
			}
			if isHTMXRequest(c) {
				return htmxErrorToast(c, cfg.Message)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, cfg.Message)
		}
	}
}

// Pre-configured rate limiters

// LeadFormRateLimiter limits landing form submissions to 5 per minute per IP
var LeadFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Name:     "lead_form",
	Requests: 5,
	Window:   1 * time.Minute,
	Message:  "Слишком много заявок. Пожалуйста, подождите минуту и попробуйте снова.",
})

// SendFormRateLimiter limits the JSON send-form endpoint to 10 per minute per IP
var SendFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Name:     "send_form",
	Requests: 10,
	Window:   1 * time.Minute,
	Message:  "Слишком много запросов. Пожалуйста, попробуйте позже.",
	JSON:     true,
})

// ConfigureRateLimiters points every pre-configured limiter at store and m
func ConfigureRateLimiters(store RateLimitStore, m *metrics.LeadMetrics) {
	for _, rl := range []*RateLimiter{LeadFormRateLimiter, SendFormRateLimiter} {
		if store != nil {
			rl.UseStore(store)
		}
		rl.UseMetrics(m)
	}
}
