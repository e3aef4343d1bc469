package cache

import (
	"errors"
	"sync"
	"testing"
	"time"
)

/*
cache_test.go provides comprehensive validation of Cache.

================================================================================
TESTING OBJECTIVES
================================================================================

This test suite verifies:

1. Functional Correctness
   - Ensures Put(), Get(), Delete(), Clear() behave deterministically.
   - Confirms LRU updates and eviction locality.

2. Expiration Semantics
   - Validates TTL-based expiration accuracy.
   - Ensures expired keys are never returned.
   - Confirms an omitted ttl falls back to the default TTL, and that an
     explicit ttl of zero (or less) is rejected rather than silently
     reinterpreted as "use the default."

3. Concurrency Safety
   - Stress-tests concurrent read/write access.
   - Validates correct usage of the single mutex.
   - Ensures absence of race conditions and runtime panics.

4. Metrics Accuracy
   - Verifies hit/miss/eviction/expired-removal statistics tracking.

Run with `go test -race` for concurrency confidence.
*/

func TestPutAndGet(t *testing.T) {
	c := New()

	if err := c.Put("a", "b", 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	val, found := c.Get("a")
	if !found {
		t.Fatal("expected key to be found")
	}

	if val != "b" {
		t.Fatalf("expected 'b', got %v", val)
	}
}

func TestPutInvalidKey(t *testing.T) {
	c := New()

	if err := c.Put("", "v"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestPutInvalidTTL(t *testing.T) {
	c := New()

	if err := c.Put("a", "v", -1*time.Second); !errors.Is(err, ErrInvalidTTL) {
		t.Fatalf("expected ErrInvalidTTL for a negative ttl, got %v", err)
	}
}

// TestPutExplicitZeroTTLIsInvalid pins down spec.md's decided rule: an
// explicit ttl of zero is InvalidTTL, distinct from omitting ttl
// entirely (which falls back to the cache's default TTL).
func TestPutExplicitZeroTTLIsInvalid(t *testing.T) {
	c := New(WithDefaultTTL(time.Hour))

	if err := c.Put("a", "v", 0); !errors.Is(err, ErrInvalidTTL) {
		t.Fatalf("expected ErrInvalidTTL for an explicit zero ttl, got %v", err)
	}

	// Omitting ttl entirely is the distinct, valid "use default" path.
	if err := c.Put("a", "v"); err != nil {
		t.Fatalf("expected omitted ttl to succeed via defaultTTL, got %v", err)
	}
}

func TestPutTooManyTTLArgsIsInvalid(t *testing.T) {
	c := New()

	if err := c.Put("a", "v", time.Second, time.Second); !errors.Is(err, ErrInvalidTTL) {
		t.Fatalf("expected ErrInvalidTTL for more than one ttl argument, got %v", err)
	}
}

func TestExpiration(t *testing.T) {
	c := New()

	c.Put("a", "b", 1*time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get("a")
	if found {
		t.Fatal("expected key to be expired")
	}

	stats := c.Stats()
	if stats.ExpiredRemovals != 1 {
		t.Fatalf("expected 1 expired removal, got %d", stats.ExpiredRemovals)
	}
	if stats.Misses != 1 {
		t.Fatalf("expected 1 miss, got %d", stats.Misses)
	}
}

// TestNoExpiration confirms that omitting ttl (not passing an explicit
// zero, which is now InvalidTTL) with no configured defaultTTL means
// the entry never expires.
func TestNoExpiration(t *testing.T) {
	c := New()

	if err := c.Put("a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	val, found := c.Get("a")
	if !found || val != "b" {
		t.Fatal("expected key to persist without TTL")
	}
}

func TestDelete(t *testing.T) {
	c := New()

	c.Put("a", "b", 5*time.Second)
	if err := c.Delete("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, found := c.Get("a")
	if found {
		t.Fatal("expected key to be deleted")
	}
}

func TestDeleteNotFound(t *testing.T) {
	c := New()

	if err := c.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearPreservesCounters(t *testing.T) {
	c := New(WithMaxSize(10))

	c.Put("a", 1)
	c.Get("a")
	c.Get("missing")

	c.Clear()

	if got := len(c.All()); got != 0 {
		t.Fatalf("expected empty cache after Clear, got %d entries", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("expected counters preserved across Clear, got %+v", stats)
	}
	if stats.CurrentSize != 0 {
		t.Fatalf("expected current size 0 after Clear, got %d", stats.CurrentSize)
	}
}

// TestScenarioEvictionAtCapacity is scenario 1 from the test plan:
// maxSize=2, put a,b,c in order evicts a.
func TestScenarioEvictionAtCapacity(t *testing.T) {
	c := New(WithMaxSize(2))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	if _, found := c.Get("a"); found {
		t.Fatal("expected a to be evicted")
	}
	if v, found := c.Get("b"); !found || v != 2 {
		t.Fatalf("expected b=2, got %v found=%v", v, found)
	}
	if v, found := c.Get("c"); !found || v != 3 {
		t.Fatalf("expected c=3, got %v found=%v", v, found)
	}

	if stats := c.Stats(); stats.Evictions != 1 {
		t.Fatalf("expected 1 eviction, got %d", stats.Evictions)
	}
}

// TestScenarioEvictionLocality is scenario 2: touching a key promotes
// it, so the next eviction takes the true LRU tail, not insertion order.
func TestScenarioEvictionLocality(t *testing.T) {
	c := New(WithMaxSize(3))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a") // promote a to MRU
	c.Put("d", 4)

	if _, found := c.Get("b"); found {
		t.Fatal("expected b to be evicted, not a")
	}
	if v, found := c.Get("a"); !found || v != 1 {
		t.Fatalf("expected a=1 to survive, got %v found=%v", v, found)
	}
	if v, found := c.Get("c"); !found || v != 3 {
		t.Fatalf("expected c=3, got %v found=%v", v, found)
	}
	if v, found := c.Get("d"); !found || v != 4 {
		t.Fatalf("expected d=4, got %v found=%v", v, found)
	}
}

// TestScenarioUpdatePreservesSize is scenario 5: overwriting an
// existing key must not count as growth or trigger an eviction.
func TestScenarioUpdatePreservesSize(t *testing.T) {
	c := New(WithMaxSize(2))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 9)

	stats := c.Stats()
	if stats.CurrentSize != 2 {
		t.Fatalf("expected current size 2, got %d", stats.CurrentSize)
	}
	if stats.Evictions != 0 {
		t.Fatalf("expected 0 evictions, got %d", stats.Evictions)
	}
	if v, _ := c.Get("a"); v != 9 {
		t.Fatalf("expected a=9, got %v", v)
	}
	if v, _ := c.Get("b"); v != 2 {
		t.Fatalf("expected b=2, got %v", v)
	}
}

// TestMRUOnAccess is invariant 3: after a successful Get, the key is
// at the head of the recency list, i.e. the last entry to be evicted.
func TestMRUOnAccess(t *testing.T) {
	c := New(WithMaxSize(2))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a")
	c.Put("c", 3)

	if _, found := c.Get("b"); found {
		t.Fatal("expected b to be evicted after a was touched")
	}
	if _, found := c.Get("a"); !found {
		t.Fatal("expected a to survive eviction")
	}
}

func TestSweeperRemovesExpiredEntries(t *testing.T) {
	c := New(WithSweepInterval(10 * time.Millisecond))
	defer c.Shutdown()

	c.Put("x", 1, 5*time.Millisecond)
	c.Put("y", 2, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)

	stats := c.Stats()
	if stats.CurrentSize != 0 {
		t.Fatalf("expected sweeper to empty the cache, got size %d", stats.CurrentSize)
	}
	if stats.ExpiredRemovals != 2 {
		t.Fatalf("expected 2 expired removals, got %d", stats.ExpiredRemovals)
	}
}

func TestSweeperDisabledByZeroInterval(t *testing.T) {
	c := New(WithSweepInterval(0))
	defer c.Shutdown()

	c.Put("x", 1, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// Size still reflects the stale entry because no sweeper ran; a
	// lazy Get still reports it absent.
	if stats := c.Stats(); stats.CurrentSize != 1 {
		t.Fatalf("expected stale entry to remain until accessed, got size %d", stats.CurrentSize)
	}
	if _, found := c.Get("x"); found {
		t.Fatal("expected lazy expiration to still catch the stale entry")
	}
}

func TestShutdownRejectsOperations(t *testing.T) {
	c := New()
	c.Put("a", 1)
	c.Shutdown()
	c.Shutdown() // must not panic on repeated calls

	if err := c.Put("b", 2); !errors.Is(err, ErrShutdown) {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
	if err := c.Delete("a"); !errors.Is(err, ErrShutdown) {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Fatal("expected Get to report absent after shutdown")
	}
}

// TestStatsReportsShuttingDown verifies SPEC_FULL.md's promise that
// shutdown state is surfaced through Stats(), not just through the
// ErrShutdown error returned by mutating operations.
func TestStatsReportsShuttingDown(t *testing.T) {
	c := New()

	if stats := c.Stats(); stats.ShuttingDown {
		t.Fatal("expected ShuttingDown false before Shutdown is called")
	}

	c.Shutdown()

	if stats := c.Stats(); !stats.ShuttingDown {
		t.Fatal("expected ShuttingDown true after Shutdown is called")
	}
}

func TestAllExcludesExpiredAndOrdersMRUFirst(t *testing.T) {
	c := New(WithMaxSize(10))

	c.Put("a", 1)
	c.Put("b", 2, 1*time.Millisecond)
	c.Put("c", 3)
	time.Sleep(5 * time.Millisecond)

	entries := c.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 live entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Key != "c" || entries[1].Key != "a" {
		t.Fatalf("expected MRU-first order [c, a], got %+v", entries)
	}
}

func TestStatsTracking(t *testing.T) {
	c := New()

	c.Put("a", 1)

	c.Get("a") // hit
	c.Get("b") // miss

	stats := c.Stats()

	if stats.Hits != 1 {
		t.Fatalf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Fatalf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.TotalRequests() != 2 {
		t.Fatalf("expected 2 total requests, got %d", stats.TotalRequests())
	}
}

func TestHitRateRatio(t *testing.T) {
	s := Stats{Hits: 150, Misses: 25}

	got := s.HitRate()
	want := 150.0 / 175.0

	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected hit rate %v, got %v", want, got)
	}
}

func TestHitRateZeroRequests(t *testing.T) {
	s := Stats{}
	if got := s.HitRate(); got != 0.0 {
		t.Fatalf("expected 0.0 hit rate with no requests, got %v", got)
	}
}

/*
TestConcurrentAccess performs a concurrency stress validation.

================================================================================
PURPOSE
================================================================================

This test ensures:

- Thread safety under simultaneous Put() and Get() operations.
- No "concurrent map writes" runtime panic.
- Correct synchronization via the cache's single mutex.
- Stability under write-read contention.

================================================================================
EXECUTION MODEL
================================================================================

- 100 goroutines are spawned.
- Each goroutine performs:
    1. A write operation (Put)
    2. A read operation (Get)

A sync.WaitGroup coordinates completion to ensure
all goroutines finish before the test exits.

Passing this test under `go test -race` provides strong confidence in
concurrency correctness.
*/

func TestConcurrentAccess(t *testing.T) {
	c := New(WithMaxSize(50))
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put("key", i, 5*time.Second)
			c.Get("key")
		}(i)
	}

	wg.Wait()

	// Invariant 1: index-list consistency holds after concurrent use.
	if got, want := len(c.data), c.lru.Len(); got != want {
		t.Fatalf("index/list desync: map has %d entries, list has %d", got, want)
	}
}

// TestConcurrentInvariants stresses Put/Get/Delete across many keys
// from many goroutines and checks invariants 1 and 2 hold afterward.
func TestConcurrentInvariants(t *testing.T) {
	c := New(WithMaxSize(20))
	var wg sync.WaitGroup

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				k := keys[(g+i)%len(keys)]
				switch i % 3 {
				case 0:
					// i%2 alternates 1ms/2ms ttl; explicit zero is now
					// InvalidTTL, so this never passes a literal zero.
					c.Put(k, i, time.Duration(i%2+1)*time.Millisecond)
				case 1:
					c.Get(k)
				case 2:
					c.Delete(k)
				}
			}
		}(g)
	}

	wg.Wait()

	c.mu.Lock()
	mapLen := len(c.data)
	listLen := c.lru.Len()
	c.mu.Unlock()

	if mapLen != listLen {
		t.Fatalf("index/list desync: map has %d entries, list has %d", mapLen, listLen)
	}

	if stats := c.Stats(); stats.CurrentSize > 20 {
		t.Fatalf("capacity bound violated: current size %d > maxSize 20", stats.CurrentSize)
	}
}
