// Package health runs named liveness/readiness checks and renders
// their results as JSON for the /healthz and /readyz endpoints.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status is the outcome of a single named check.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// CheckFunc reports the health of one dependency or subsystem.
type CheckFunc func(ctx context.Context) Status

const checkTimeout = 5 * time.Second

// Checker runs a registry of named checks and records each check's
// most recent result. IsReady and ReadinessHandler run every check
// afresh on each call.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
	cache  map[string]Status
	logger zerolog.Logger
}

// NewChecker creates an empty Checker.
func NewChecker(logger zerolog.Logger) *Checker {
	return &Checker{
		checks: make(map[string]CheckFunc),
		cache:  make(map[string]Status),
		logger: logger,
	}
}

// Register adds a named check. It is safe to call concurrently with
// RunAll; a run already in progress does not include the new check.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
}

// RunAll executes every registered check concurrently, each bounded
// by checkTimeout, and returns a snapshot of their results.
func (c *Checker) RunAll(ctx context.Context) map[string]Status {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	results := make(map[string]Status, len(checks))
	var resMu sync.Mutex
	var wg sync.WaitGroup

	for name, fn := range checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			status := fn(checkCtx)
			resMu.Lock()
			results[name] = status
			resMu.Unlock()
		}(name, fn)
	}
	wg.Wait()

	c.mu.Lock()
	for name, status := range results {
		c.cache[name] = status
	}
	c.mu.Unlock()

	return results
}

// IsReady reports whether every registered check last reported OK.
func (c *Checker) IsReady(ctx context.Context) bool {
	results := c.RunAll(ctx)
	for _, status := range results {
		if status != StatusOK {
			return false
		}
	}
	return true
}

// LivenessHandler answers unconditionally: the process is running and
// can accept connections. It never depends on downstream checks.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// ReadinessHandler runs every registered check and reports 200 when
// all are healthy, 503 otherwise, along with the per-check breakdown.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := c.RunAll(r.Context())

		ready := true
		for _, status := range results {
			if status != StatusOK {
				ready = false
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if ready {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		overall := "ready"
		if !ready {
			overall = "not_ready"
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": results,
		})
	}
}
