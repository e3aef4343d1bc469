package cache

import "time"

/*
startSweeper initializes and launches the background expiration worker.

================================================================================
ROLE IN CACHE LIFECYCLE
================================================================================

Cache implements a dual-expiration strategy:

1. Lazy Expiration
   - Expired keys are removed during Get() calls.

2. Active Expiration (the sweeper)
   - Periodically scans and removes expired entries,
     even if they are never accessed again.

The sweeper ensures bounded memory growth in workloads
where expired keys are rarely read.

================================================================================
EXECUTION MODEL
================================================================================

- If sweepInterval <= 0:
    → Active cleanup is disabled.
    → Cache relies solely on lazy expiration.

- If sweepInterval > 0:
    → A time.Ticker is created.
    → A dedicated goroutine is launched.
    → On each tick:
          sweepBatch() runs repeatedly, yielding the lock between
          batches, until a batch comes back empty-handed or bounded
          by less than a full batch — i.e. nothing more to sweep
          this tick.

State machine: Idle → Sleeping → Sweeping → Sleeping → … → Stopping → Stopped.
The goroutine sleeps on the ticker and wakes into Sweeping on each
tick; closing stopChan drives it from Sleeping straight to Stopped.

================================================================================
CONCURRENCY & SAFETY
================================================================================

- sweepBatch() acquires an exclusive Lock() per batch because it
  mutates internal structures, and releases it between batches so a
  very large cache never holds the lock for an unbounded stretch.
- stopChan is used as a lifecycle control signal for graceful
  shutdown; an in-flight sweep finishes its current batch before the
  goroutine observes the stop signal and exits.
- The ticker is explicitly stopped before exit to prevent resource
  leakage.

================================================================================
PERFORMANCE CHARACTERISTICS
================================================================================

Each cleanup tick performs a bounded scan over cache entries (via LRU
traversal from the tail), capped at sweepBatchSize entries per lock
acquisition. For large-scale systems beyond what batching buys here,
further strategies could include:

- Min-heap scheduling by expiration
- Time-wheel algorithms
- Sharded expiration workers

================================================================================
DESIGN PHILOSOPHY
================================================================================

The sweeper is intentionally simple and predictable, favoring clarity
and correctness over premature optimization. Correctness never
depends on it running at all — see the lazy path in Get.
*/

func (c *Cache) startSweeper() {
	if c.sweepInterval <= 0 {
		return
	}

	ticker := time.NewTicker(c.sweepInterval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				for {
					removed, more := c.sweepBatch()
					if removed == 0 || !more {
						break
					}
					select {
					case <-c.stopChan:
						return
					default:
					}
				}
			case <-c.stopChan:
				return
			}
		}
	}()
}
