// Package ratelimit limits requests per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	config      *Config
	now         func() time.Time
	cleanupStop chan struct{}
	cleanupDone chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		l.cleanupDone = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ep := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	key := clientID + ":" + method + ":default"
	if ep == nil {
		ep = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	} else {
		key = clientID + ":" + method + ":" + ep.Path
	}

	if ep.Limit <= 0 || ep.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	lim := l.getBucket(key, ep, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     ep.Limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(timeToFill(lim, tokens)),
	}
	if !allowed {
		r := lim.ReserveN(now, 1)
		if r.OK() {
			info.RetryAfter = r.DelayFrom(now)
			r.CancelAt(now)
		}
	}
	return allowed, info
}

// timeToFill estimates when the bucket is full again.
func timeToFill(lim *rate.Limiter, tokens float64) time.Duration {
	missing := float64(lim.Burst()) - tokens
	if missing <= 0 || lim.Limit() <= 0 {
		return 0
	}
	return time.Duration(missing / float64(lim.Limit()) * float64(time.Second))
}

func (l *Limiter) getBucket(key string, ep *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}

	burst := ep.Burst
	if burst <= 0 {
		burst = ep.Limit
	}
	every := rate.Limit(float64(ep.Limit) / ep.Window.Seconds())
	b := &bucket{limiter: rate.NewLimiter(every, burst), lastSeen: now}
	l.buckets[key] = b
	return b.limiter
}

// cleanup removes idle buckets until Stop is called.
func (l *Limiter) cleanup(interval time.Duration) {
	defer close(l.cleanupDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine and waits for it to exit.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
			<-l.cleanupDone
		}
	})
}
