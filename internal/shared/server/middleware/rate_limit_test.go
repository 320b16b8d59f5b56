package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newLimitedRouter(limiter *RateLimiter, rules map[string]RateLimitRule, groupFor func(*gin.Context) string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     groupFor,
		Limiter:      limiter,
		Rules:        rules,
	}))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.POST("/api/v1/compose", ok)
	r.GET("/api/v1/resumes", ok)
	return r
}

func send(r http.Handler, method, path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitGroupsAreIndependent(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	groupFor := func(c *gin.Context) string {
		if c.FullPath() == "/api/v1/compose" {
			return "EXPORT"
		}
		return "DEFAULT"
	}
	r := newLimitedRouter(NewRateLimiter(clock.now), map[string]RateLimitRule{
		"DEFAULT": {Rate: 5, Burst: 10},
		"EXPORT":  {Rate: 0.5, Burst: 2},
	}, groupFor)

	for i := 0; i < 2; i++ {
		if rec := send(r, http.MethodPost, "/api/v1/compose", "u1"); rec.Code != http.StatusOK {
			t.Fatalf("compose %d expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := send(r, http.MethodPost, "/api/v1/compose", "u1"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third compose expected 429, got %d", rec.Code)
	}
	if rec := send(r, http.MethodGet, "/api/v1/resumes", "u1"); rec.Code != http.StatusOK {
		t.Fatalf("default group should be unaffected, got %d", rec.Code)
	}
	if rec := send(r, http.MethodPost, "/api/v1/compose", "u2"); rec.Code != http.StatusOK {
		t.Fatalf("other user should have own bucket, got %d", rec.Code)
	}

	clock.t = clock.t.Add(2 * time.Second)
	if rec := send(r, http.MethodPost, "/api/v1/compose", "u1"); rec.Code != http.StatusOK {
		t.Fatalf("compose after refill expected 200, got %d", rec.Code)
	}
}

func TestRateLimit429Envelope(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newLimitedRouter(NewRateLimiter(clock.now), map[string]RateLimitRule{
		"DEFAULT": {Rate: 0.25, Burst: 1},
	}, nil)

	first := send(r, http.MethodGet, "/api/v1/resumes", "")
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", first.Code)
	}
	if first.Header().Get("X-RateLimit-Limit") != "1" || first.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("unexpected limit headers %v", first.Header())
	}

	second := send(r, http.MethodGet, "/api/v1/resumes", "")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "4" {
		t.Fatalf("expected Retry-After 4, got %q", got)
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(second.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited, got %q", payload.Error.Code)
	}
	if payload.Error.Details["group"] != "DEFAULT" || payload.Error.Details["retryAfterMs"] != float64(4000) {
		t.Fatalf("unexpected details %v", payload.Error.Details)
	}
}

func TestRateLimitUnknownGroupPassesThrough(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(nil), map[string]RateLimitRule{}, nil)
	for i := 0; i < 5; i++ {
		if rec := send(r, http.MethodGet, "/api/v1/resumes", "u1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimiterSweepsRefilledBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(clock.now)
	rule := RateLimitRule{Rate: 1, Burst: 2}

	l.Allow("stale", rule)
	clock.t = clock.t.Add(time.Minute)
	for i := 0; i < sweepInterval-1; i++ {
		l.Allow("busy", RateLimitRule{Rate: 1000, Burst: 1000})
	}
	if l.Len() != 1 {
		t.Fatalf("expected stale bucket swept, have %d buckets", l.Len())
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var l *RateLimiter
	if d := l.Allow("k", RateLimitRule{Rate: 1, Burst: 1}); !d.Allowed {
		t.Fatalf("nil limiter should allow")
	}
}
