package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/metrics"
)

const cacheKeyPrefix = "skills:v1:"

// DefaultCacheTTL is how long a classifier answer stays cached.
const DefaultCacheTTL = 24 * time.Hour

// CachedClassifier remembers successful classifier answers in Redis, keyed by
// a hash of the input text. Cache failures never fail the call.
type CachedClassifier struct {
	next   Classifier
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps next with a Redis cache.
func NewCachedClassifier(next Classifier, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedClassifier{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logging.OrNop(logger),
	}
}

// Classify returns a cached answer when present, otherwise asks next and
// caches a non-empty answer.
func (c *CachedClassifier) Classify(ctx context.Context, text string) ([]string, error) {
	key := cacheKey(text)

	if cached, ok := c.lookup(ctx, key); ok {
		return cached, nil
	}

	found, err := c.next.Classify(ctx, text)
	if err != nil || len(found) == 0 {
		return found, err
	}

	payload, err := json.Marshal(found)
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("failed to cache classifier answer", zap.Error(err))
	}
	return found, nil
}

func (c *CachedClassifier) lookup(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ClassifierCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		metrics.ClassifierCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("classifier cache lookup failed", zap.Error(err))
		return nil, false
	}

	var cached []string
	if err := json.Unmarshal(raw, &cached); err != nil || len(cached) == 0 {
		metrics.ClassifierCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
		return nil, false
	}

	metrics.ClassifierCacheLookups.WithLabelValues("hit").Inc()
	return cached, true
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
