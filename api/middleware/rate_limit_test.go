package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func (f *fakeLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeLimiterStore) RateLimitKey(scope string) string {
	return "juvo:rate_limit:" + scope
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewRateLimitPolicy("claim", time.Minute, 2)
	handler := RateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	userID := uuid.New()
	makeRequest := func() int {
		req := httptest.NewRequest(http.MethodPost, "/claim", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := makeRequest(); code != http.StatusNoContent {
		t.Fatalf("first request blocked, status = %d", code)
	}
	if code := makeRequest(); code != http.StatusNoContent {
		t.Fatalf("second request blocked, status = %d", code)
	}
	if code := makeRequest(); code != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, status = %d", code)
	}
}

func TestRateLimitSeparatesActors(t *testing.T) {
	store := &fakeLimiterStore{}
	policy := NewRateLimitPolicy("claim", time.Minute, 1)
	handler := RateLimit(policy, store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/claim", nil)
		req = req.WithContext(WithUserID(req.Context(), uuid.New()))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("distinct users should not share a counter, status = %d", rec.Code)
		}
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("claim", 0, 0), &fakeLimiterStore{}, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/claim", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("disabled policy must pass through, status = %d", rec.Code)
	}
}
