package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBucket_ConsumesBurstThenDenies(t *testing.T) {
	b := newBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		allowed, _, _, _ := b.take()
		if !allowed {
			t.Errorf("request %d should be allowed within burst", i+1)
		}
	}

	allowed, remaining, _, retryAfter := b.take()
	if allowed {
		t.Error("request beyond burst should be denied")
	}
	if remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", remaining)
	}
	if retryAfter <= 0 {
		t.Error("denied request should carry a positive retry-after")
	}
}

func TestBucket_RefillsOverTime(t *testing.T) {
	b := newBucket(2, 50.0) // refills a token every 20ms

	b.take()
	b.take()
	if allowed, _, _, _ := b.take(); allowed {
		t.Fatal("bucket should be empty after the burst")
	}

	time.Sleep(40 * time.Millisecond)

	if allowed, _, _, _ := b.take(); !allowed {
		t.Error("bucket should have refilled after waiting")
	}
}

func TestBucket_ResetTimeAdvances(t *testing.T) {
	b := newBucket(10, 1.0)
	b.take()

	_, remaining, reset, _ := b.take()
	if remaining < 7 || remaining > 8 {
		t.Errorf("expected 7-8 remaining after two takes, got %d", remaining)
	}
	if !reset.After(time.Now()) {
		t.Error("partially drained bucket should reset in the future")
	}
}

func TestLimiter_DefaultBudget(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  3,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/profiles", "GET")
		if !allowed {
			t.Errorf("request %d should be allowed", i+1)
		}
		if info.Limit != 3 {
			t.Errorf("expected limit 3, got %d", info.Limit)
		}
	}

	allowed, info := l.Allow("10.0.0.1", "/profiles", "GET")
	if allowed {
		t.Error("fourth request should be rate limited")
	}
	if info.RetryAfter <= 0 {
		t.Error("rate limited response should carry retry-after")
	}

	// A different client has its own bucket.
	if allowed, _ := l.Allow("10.0.0.2", "/profiles", "GET"); !allowed {
		t.Error("other client should not share the exhausted bucket")
	}
}

func TestLimiter_EndpointBudgets(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/search", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})
	defer l.Stop()

	l.Allow("10.0.0.1", "/search", "POST")
	l.Allow("10.0.0.1", "/search", "POST")
	if allowed, _ := l.Allow("10.0.0.1", "/search", "POST"); allowed {
		t.Error("search budget should be exhausted after two requests")
	}

	// The same client still has default budget elsewhere, and GET /search
	// does not match the POST tier.
	if allowed, _ := l.Allow("10.0.0.1", "/profiles", "GET"); !allowed {
		t.Error("default-tier endpoint should still be allowed")
	}
	if allowed, _ := l.Allow("10.0.0.1", "/search", "GET"); !allowed {
		t.Error("GET /search should fall back to the default budget")
	}
}

func TestLimiter_UnlimitedEndpoint(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: "GET", Limit: 0},
		},
	})
	defer l.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("health check %d should never be limited", i+1)
		}
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.9": true},
		Blacklist:     map[string]bool{"10.0.0.66": true},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := l.Allow("10.0.0.9", "/search", "POST"); !allowed {
			t.Error("whitelisted client should never be limited")
		}
	}

	if allowed, _ := l.Allow("10.0.0.66", "/health", "GET"); allowed {
		t.Error("blacklisted client should always be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/search", "POST"); !allowed {
			t.Fatal("disabled limiter should allow everything")
		}
	}
}

func TestLimiter_ConcurrentClients(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			clientID := fmt.Sprintf("10.0.0.%d", id)
			for j := 0; j < 50; j++ {
				l.Allow(clientID, "/profiles", "GET")
			}
		}(i)
	}
	wg.Wait()

	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.buckets) != 10 {
		t.Errorf("expected one bucket per client, got %d", len(l.buckets))
	}
}

func TestLimiter_SweepDropsIdleBuckets(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	l.Allow("10.0.0.1", "/profiles", "GET")
	l.Allow("10.0.0.2", "/profiles", "GET")

	// Age the first client's bucket past the idle cutoff.
	l.mu.RLock()
	b := l.buckets["10.0.0.1:GET /profiles"]
	l.mu.RUnlock()
	if b == nil {
		t.Fatal("expected a bucket for the first client")
	}
	b.mu.Lock()
	b.lastSeen = time.Now().Add(-2 * staleAfter)
	b.mu.Unlock()

	l.sweep()

	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.buckets["10.0.0.1:GET /profiles"]; ok {
		t.Error("idle bucket should have been swept")
	}
	if _, ok := l.buckets["10.0.0.2:GET /profiles"]; !ok {
		t.Error("active bucket should survive the sweep")
	}
}

func TestLimiter_BurstBelowLimit(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/stats/refresh", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	})
	defer l.Stop()

	l.Allow("10.0.0.1", "/stats/refresh", "POST")
	l.Allow("10.0.0.1", "/stats/refresh", "POST")
	if allowed, _ := l.Allow("10.0.0.1", "/stats/refresh", "POST"); allowed {
		t.Error("burst capacity should cap consecutive requests below the hourly limit")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	if allowed, _ := l.Allow("10.0.0.1", "/profiles", "GET"); !allowed {
		t.Error("nil config should produce a permissive limiter")
	}
}
