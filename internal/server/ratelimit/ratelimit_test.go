package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/jobs", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/jobs", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6*time.Second, info.RetryAfter, float64(10*time.Millisecond))
	assert.True(t, info.ResetTime.After(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})

	for i := 0; i < 60; i++ {
		l.Allow("c", "/x", "GET")
	}
	allowed, _ := l.Allow("c", "/x", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/x", "GET")
	assert.True(t, allowed, "one token refills per second")

	allowed, _ = l.Allow("c", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_DeniedRequestDoesNotConsume(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second})

	allowed, _ := l.Allow("c", "/x", "GET")
	require.True(t, allowed)
	for i := 0; i < 5; i++ {
		allowed, _ = l.Allow("c", "/x", "GET")
		require.False(t, allowed)
	}

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute,
		Whitelist: NewIPSet([]string{"10.0.0.1"}),
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/x", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute,
		Blacklist: NewIPSet([]string{" 10.0.0.2 ", ""}),
	})

	allowed, _ := l.Allow("10.0.0.2", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/x", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	allowed, info := l.Allow("c", "/api/analysis", "POST")
	require.True(t, allowed)
	assert.Equal(t, 10, info.Limit)
	allowed, _ = l.Allow("c", "/api/analysis", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/analysis", "POST")
	assert.False(t, allowed, "burst of 2 is exhausted")

	// Other routes use the default bucket.
	allowed, info = l.Allow("c", "/api/analysis", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)

	// Other clients are independent.
	allowed, _ = l.Allow("other", "/api/analysis", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedPaths(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = l.Allow("c", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Hour})

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/x", "GET")
	}
	require.Len(t, l.buckets, 3)

	clock.Advance(30 * time.Minute)
	l.Allow("client-0", "/x", "GET")
	clock.Advance(45 * time.Minute)
	l.cleanupBuckets()

	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "client-0:GET:default")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	require.NotNil(t, l.cleanupDone)
	l.Stop()
	l.Stop()

	select {
	case <-l.cleanupDone:
	default:
		t.Fatal("cleanup goroutine still running after Stop")
	}
}

func TestNewLimiter_NoCleanupWhenDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, CleanupInterval: time.Millisecond})
	assert.Nil(t, l.cleanupStop)
	assert.Nil(t, l.cleanupDone)
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	assert.True(t, l.config.Enabled)
	assert.Equal(t, 100, l.config.DefaultLimit)
	assert.NotEmpty(t, l.config.EndpointConfigs)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/analysis", Method: "POST", Limit: 1},
		{Path: "/api/jobs/", Method: "DELETE", Limit: 2},
	}

	assert.Equal(t, 1, MatchEndpoint("/api/analysis", "POST", configs).Limit)
	assert.Equal(t, 2, MatchEndpoint("/api/jobs/123", "DELETE", configs).Limit)
	assert.Nil(t, MatchEndpoint("/api/jobs/123", "GET", configs))
	assert.Nil(t, MatchEndpoint("/api/analysis/1", "POST", configs))
	assert.Zero(t, MatchEndpoint("/health", "GET", configs).Limit)
}
