package cache

/*
Stats represents a point-in-time snapshot of cache performance metrics.

================================================================================
PURPOSE
================================================================================

This structure tracks key operational indicators:

- Hits            → Successful retrievals (valid key found)
- Misses          → Failed lookups (missing or expired key)
- Evictions       → Entries removed due to LRU capacity constraints
- ExpiredRemovals → Entries removed because their TTL had passed
  (both lazily, on access, and by the background sweeper)
- ShuttingDown    → Whether Shutdown() has been called on the engine

These metrics provide visibility into cache effectiveness
and operational behavior.

================================================================================
OBSERVABILITY VALUE
================================================================================

Tracking cache statistics enables:

- Cache hit ratio analysis
- Performance tuning
- Capacity planning
- Debugging production behavior
- Evaluating TTL configuration effectiveness

================================================================================
CONCURRENCY MODEL
================================================================================

Stats fields are modified under Cache-level locking, inside the same
critical section as the store mutation they describe. Stats() copies the
struct under that same lock, so current_size and the counters are always
observed consistent with each other — never a view over mutable state.

================================================================================
DESIGN SIMPLICITY
================================================================================

The struct is intentionally minimal:

- No internal locking
- No atomic counters (a lock-free split would let CurrentSize and the
  other counters be observed out of sync with the store; the cache's
  single mutex already serializes every mutation, so a second
  synchronization mechanism here would only add cost)
- Synchronization handled entirely at Cache level
*/

type Stats struct {
	Hits            uint64
	Misses          uint64
	Evictions       uint64
	ExpiredRemovals uint64
	CurrentSize     int

	// ShuttingDown reports whether Shutdown() has been called on the
	// cache this snapshot was taken from. Once true it never reverts
	// to false: Shutdown is terminal for the engine's lifetime.
	ShuttingDown bool
}

// TotalRequests returns the number of Get calls that resulted in either
// a hit or a miss.
func (s Stats) TotalRequests() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns the hit ratio in [0.0, 1.0]. Defined as 0.0 when no
// requests have been made yet, rather than producing NaN.
func (s Stats) HitRate() float64 {
	total := s.TotalRequests()
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total)
}
