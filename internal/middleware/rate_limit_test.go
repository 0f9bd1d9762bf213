package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type fakeCounter struct {
	counts  map[string]int64
	expiry  map[string]time.Duration
	incrErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{
		counts: map[string]int64{},
		expiry: map[string]time.Duration{},
	}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expiry[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func doRequest(rl *RateLimiter, group string) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := rl.Limit(group)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestLimitAllowsUnderLimit(t *testing.T) {
	counter := newFakeCounter()
	rl := NewRateLimiter(counter, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec, called := doRequest(rl, "api")
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got status %d", i+1, rec.Code)
		}
	}
}

func TestLimitRejectsOverLimit(t *testing.T) {
	counter := newFakeCounter()
	rl := NewRateLimiter(counter, 2, time.Minute)

	doRequest(rl, "api")
	doRequest(rl, "api")
	rec, called := doRequest(rl, "api")

	if called {
		t.Error("handler must not run once the limit is hit")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	if !strings.Contains(rec.Body.String(), "retry_after_seconds") {
		t.Errorf("envelope missing retry_after_seconds: %s", rec.Body.String())
	}
}

func TestLimitWindowKeyMath(t *testing.T) {
	counter := newFakeCounter()
	window := time.Minute
	rl := NewRateLimiter(counter, 10, window)

	doRequest(rl, "api")

	windowStart := time.Now().Unix() / int64(window.Seconds())
	want := fmt.Sprintf("ratelimit:api:192.0.2.1:%d", windowStart)
	if _, ok := counter.counts[want]; !ok {
		t.Fatalf("expected counter key %q, got %v", want, counter.counts)
	}
	if counter.expiry[want] != window {
		t.Errorf("first hit must set expiry to the window, got %v", counter.expiry[want])
	}
}

func TestLimitGroupsCountSeparately(t *testing.T) {
	counter := newFakeCounter()
	rl := NewRateLimiter(counter, 1, time.Minute)

	doRequest(rl, "api")
	rec, called := doRequest(rl, "admin")

	if !called || rec.Code != http.StatusOK {
		t.Errorf("a different group must have its own window, got %d", rec.Code)
	}
}

func TestLimitFailsOpenWhenRedisDown(t *testing.T) {
	counter := newFakeCounter()
	counter.incrErr = errors.New("connection refused")
	rl := NewRateLimiter(counter, 1, time.Minute)

	for i := 0; i < 5; i++ {
		rec, called := doRequest(rl, "api")
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("limiter must fail open, request %d got %d", i+1, rec.Code)
		}
	}
}

func TestNewRateLimiterGuardsBadConfig(t *testing.T) {
	rl := NewRateLimiter(newFakeCounter(), 0, 0)

	// a zero window must not divide by zero in the key math
	rec, called := doRequest(rl, "api")
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("defaulted limiter should serve the request, got %d", rec.Code)
	}
}
