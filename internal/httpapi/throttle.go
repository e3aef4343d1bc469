package httpapi

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// clientBucket is one client's token-bucket quota. Tokens refill
// continuously based on elapsed wall-clock time rather than on a fixed
// tick, so a client that has been idle for a while has its full burst
// available again the moment it returns.
type clientBucket struct {
	remaining float64
	capacity  float64
	fillRate  float64 // tokens/second
	touchedAt time.Time
}

func newClientBucket(fillRate, capacity float64) *clientBucket {
	return &clientBucket{
		remaining: capacity,
		capacity:  capacity,
		fillRate:  fillRate,
		touchedAt: time.Now(),
	}
}

// take reports whether a single request may proceed, refilling the
// bucket for the elapsed time first.
func (b *clientBucket) take() bool {
	now := time.Now()
	b.remaining = clampMax(b.remaining+now.Sub(b.touchedAt).Seconds()*b.fillRate, b.capacity)
	b.touchedAt = now

	if b.remaining < 1 {
		return false
	}
	b.remaining--
	return true
}

func (b *clientBucket) idleSince(now time.Time) time.Duration {
	return now.Sub(b.touchedAt)
}

func clampMax(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// throttle is per-client-IP rate limiting state for the HTTP adapter.
// Exempt paths (health/readiness/metrics probes) bypass it entirely so
// orchestration tooling never gets throttled.
type throttle struct {
	mu       sync.Mutex
	byClient map[string]*clientBucket
	rate     float64
	burst    float64
}

const (
	throttleReapInterval = 5 * time.Minute
	throttleStaleAfter   = 10 * time.Minute
)

var throttleExemptPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

func newThrottle(requestsPerSecond int) *throttle {
	t := &throttle{
		byClient: make(map[string]*clientBucket),
		rate:     float64(requestsPerSecond),
		burst:    float64(requestsPerSecond),
	}
	go t.reapStaleClientsForever()
	return t
}

// reapStaleClientsForever evicts buckets for clients that haven't been
// seen in a while, so a long-running process doesn't accumulate one
// entry per distinct IP forever.
func (t *throttle) reapStaleClientsForever() {
	ticker := time.NewTicker(throttleReapInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		t.mu.Lock()
		for ip, bucket := range t.byClient {
			if bucket.idleSince(now) > throttleStaleAfter {
				delete(t.byClient, ip)
			}
		}
		t.mu.Unlock()
	}
}

func (t *throttle) allow(clientIP string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	bucket, ok := t.byClient[clientIP]
	if !ok {
		bucket = newClientBucket(t.rate, t.burst)
		t.byClient[clientIP] = bucket
	}
	return bucket.take()
}

// newRateLimitMiddleware builds Fiber middleware enforcing a per-client
// requests-per-second ceiling with burst equal to that same rate, so a
// client can never sustain more than rps without a quiet period first.
func newRateLimitMiddleware(requestsPerSecond int) fiber.Handler {
	t := newThrottle(requestsPerSecond)

	return func(c *fiber.Ctx) error {
		if throttleExemptPaths[c.Path()] {
			return c.Next()
		}

		if !t.allow(c.IP()) {
			return problemResponse(c, fiber.StatusTooManyRequests,
				"rate_limit_exceeded", "Too Many Requests",
				"rate limit exceeded, try again later")
		}

		return c.Next()
	}
}
