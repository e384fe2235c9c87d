package ratelimit_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/ratelimit"
	"github.com/google/uuid"
)

func TestReject(t *testing.T) {
	rec := httptest.NewRecorder()
	ratelimit.Reject(rec, 1500*time.Millisecond)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Errorf("expected Retry-After 2, got %q", got)
	}
}

func TestUnlimited(t *testing.T) {
	d, err := ratelimit.Unlimited{}.Allow(context.Background(), "anyone")
	if err != nil || !d.Allowed {
		t.Errorf("expected allow, got %+v %v", d, err)
	}
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if testing.Short() || addr == "" {
		t.Skip("skipping integration test (requires REDIS_ADDRESS)")
	}

	ctx := context.Background()
	client, err := ratelimit.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer client.Close()

	prefix := fmt.Sprintf("test:%s", uuid.NewString()[:8])
	limiter := ratelimit.NewRedisLimiter(client, prefix, 2, time.Minute)
	t.Cleanup(func() { client.Del(ctx, prefix+":u-1") })

	for i := 1; i <= 2; i++ {
		d, err := limiter.Allow(ctx, "u-1")
		if err != nil || !d.Allowed {
			t.Fatalf("call %d: expected allow, got %+v %v", i, d, err)
		}
	}

	d, err := limiter.Allow(ctx, "u-1")
	if err != nil {
		t.Fatal(err)
	}
	if d.Allowed {
		t.Error("expected third call to be limited")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("unexpected retry after %v", d.RetryAfter)
	}
}
