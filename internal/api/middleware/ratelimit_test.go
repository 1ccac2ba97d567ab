package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowFn func(ctx context.Context, key string) (bool, int64, int64, error)
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, int64, int64, error) {
	s.keys = append(s.keys, key)
	return s.allowFn(ctx, key)
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (bool, int64, int64, error) {
		return true, 9, 0, nil
	}}
	c, rec := newContext(http.MethodPost, "/api/auth/login")
	c.SetPath("/api/auth/login")

	handler := RateLimit(limiter, 10, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Fatalf("expected remaining 9, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("expected limit 10, got %q", got)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "POST:/api/auth/login:192.0.2.1" {
		t.Fatalf("unexpected limiter key %v", limiter.keys)
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (bool, int64, int64, error) {
		return false, 0, 4500, nil
	}}
	c, rec := newContext(http.MethodPost, "/api/auth/login")

	handler := RateLimit(limiter, 10, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if code := httpCode(t, handler(c)); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if got := rec.Header().Get("Retry-After"); got != "5" {
		t.Fatalf("expected Retry-After 5, got %q", got)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{allowFn: func(context.Context, string) (bool, int64, int64, error) {
		return false, 0, 0, errors.New("redis down")
	}}
	c, rec := newContext(http.MethodPost, "/api/auth/login")

	handler := RateLimit(limiter, 10, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got err=%v code=%d", err, rec.Code)
	}
}
