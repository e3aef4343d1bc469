package cache

import (
	"container/list"
	"sync"
	"time"
)

/*
Cache implements a thread-safe, in-memory key-value store with:

- Per-key TTL (Time-To-Live)
- LRU (Least Recently Used) eviction
- Active + Lazy expiration
- Configurable capacity limits
- Runtime statistics tracking

================================================================================
ARCHITECTURAL OVERVIEW
================================================================================

Cache combines two core data structures:

1. Hash Map (map[string]*list.Element)
   - Provides O(1) key lookup.
   - Maps keys to their corresponding LRU list elements.

2. Doubly Linked List (*list.List)
   - Maintains LRU ordering.
   - Most recently used items are moved to the front.
   - Oldest items remain at the back for eviction.

================================================================================
CONCURRENCY MODEL
================================================================================

- A single sync.Mutex protects all shared state: the map, the list, and
  the stats counters.
- Every public operation (Put, Get, Delete, Clear, Stats, All) acquires
  it for its entire duration; the sweeper acquires it once per batch.
- A single lock is used instead of a RWMutex because every successful
  Get also mutates the recency list (move-to-front), so there is no
  read-only path that would benefit from a read lock.
- Go's sync.Mutex is not re-entrant, so the public API acquires the
  lock exactly once per call and delegates to unexported, non-locking
  helpers (evictOldest, removeElement) rather than re-entering it.

This guarantees safe usage in highly concurrent, multi-goroutine environments.

================================================================================
EXPIRATION STRATEGY
================================================================================

Cache uses a dual expiration model:

1. Lazy Expiration
   - Expired keys are removed during Get() operations.
   - Ensures expired data is never returned to callers.

2. Active Expiration
   - A background sweeper periodically scans and removes expired entries.
   - Prevents memory buildup from stale keys that are never re-read.

================================================================================
STRUCTURE FIELDS
================================================================================

data           -> Primary storage map (key → *list.Element)
lru            -> Doubly linked list maintaining LRU ordering
mu             -> Mutex guarding data, lru, and stats
maxSize        -> Maximum allowed entries before LRU eviction
defaultTTL     -> TTL applied when Put is called with no ttl argument
sweepInterval  -> Background cleanup interval (0 disables the sweeper)
sweepBatchSize -> Max entries inspected per sweeper lock acquisition
stopChan       -> Graceful shutdown signal for the sweeper goroutine
stopOnce       -> Ensures Shutdown's close(stopChan) only happens once
stats          -> Cache performance metrics (hits/misses/evictions/...)
shutdown       -> Set once Shutdown has been called; rejects new ops

The design prioritizes:
- Predictable performance
- Deterministic eviction behavior
- Minimal memory overhead
*/

type Cache struct {
	data           map[string]*list.Element
	lru            *list.List // each element's Value is a *entry
	mu             sync.Mutex
	maxSize        int
	defaultTTL     time.Duration
	sweepInterval  time.Duration
	sweepBatchSize int
	stopChan       chan struct{}
	stopOnce       sync.Once
	stats          Stats
	shutdown       bool
}

/*
New initializes and returns a configured Cache instance.

CONFIGURATION MODEL:
Uses the functional options pattern to allow extensible configuration
without modifying the constructor signature.

INITIALIZATION STEPS:
1. Allocate internal map and defaults.
2. Initialize LRU list.
3. Create stop channel for graceful shutdown.
4. Apply user-provided options.
5. Start the background sweeper (if sweepInterval is > 0).

sweepInterval defaults to defaultSweepInterval. If it is set to zero or
less (WithSweepInterval(0)), the sweeper does not run and expiry is
enforced lazily only, on Get; the sweeper's absence has
no effect on correctness — only on how quickly memory is reclaimed.
*/

func New(opts ...Option) *Cache {
	c := &Cache{
		data:           make(map[string]*list.Element),
		lru:            list.New(),
		stopChan:       make(chan struct{}),
		maxSize:        defaultMaxSize,
		sweepInterval:  defaultSweepInterval,
		sweepBatchSize: defaultSweepBatchSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.startSweeper()

	return c
}

/*
Put inserts or updates a key in the cache.

PARAMETERS:
- key   : Unique, non-empty identifier
- value : Arbitrary data (stored as interface{})
- ttl   : Time-To-Live, variadic so callers can distinguish "omitted"
          from "explicitly zero":
            - omitted (no argument) -> falls back to the cache's
                                        defaultTTL
            - explicitly <= 0       -> rejected with ErrInvalidTTL; a
                                        zero or negative TTL is never a
                                        valid entry lifetime
            - explicitly > 0        -> overrides defaultTTL for this
                                        entry
            - more than one value   -> rejected with ErrInvalidTTL;
                                        Put takes at most one TTL

A plain time.Duration parameter can't tell "the caller didn't pass a
TTL" apart from "the caller passed exactly zero" — both arrive as the
zero value. The variadic form keeps that distinction visible at the
call site instead of silently collapsing it into "zero always means
use the default."

BEHAVIOR:

1. If key already exists:
   - Update its value.
   - Recalculate expiration from ttl (or defaultTTL).
   - Move entry to front of LRU list.
   - No eviction accounting — size did not grow.

2. If key does not exist:
   - Insert at front of LRU list, store reference in map.
   - If size now exceeds maxSize, evict the tail exactly once.

TIME COMPLEXITY:
O(1) average case.

This operation is fully protected by exclusive locking to ensure consistency.
*/

func (c *Cache) Put(key string, value interface{}, ttl ...time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}
	if len(ttl) > 1 {
		return ErrInvalidTTL
	}
	var explicit *time.Duration
	if len(ttl) == 1 {
		if ttl[0] <= 0 {
			return ErrInvalidTTL
		}
		explicit = &ttl[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown {
		return ErrShutdown
	}

	expiresAt := c.expiryFor(explicit)

	if elem, found := c.data[key]; found {
		e := elem.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		c.lru.MoveToFront(elem)
		return nil
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	elem := c.lru.PushFront(e)
	c.data[key] = elem

	if c.lru.Len() > c.maxSize {
		c.evictOldest()
	}

	return nil
}

// expiryFor computes the absolute deadline for a Put call. A nil ttl
// means the caller omitted it, so the cache's defaultTTL applies; a
// non-nil ttl is always strictly positive by the time it reaches here
// (Put has already rejected <= 0). Returns the zero time.Time when the
// effective TTL is zero, meaning "never expires".
func (c *Cache) expiryFor(ttl *time.Duration) time.Time {
	effective := c.defaultTTL
	if ttl != nil {
		effective = *ttl
	}
	if effective <= 0 {
		return time.Time{}
	}
	return time.Now().Add(effective)
}

/*
Get retrieves a value from the cache.

RETURNS:
- (interface{}, true)  -> If key exists and is not expired
- (nil, false)         -> If key does not exist, is expired, or the
                          cache has been shut down

EXECUTION FLOW:

1. Lookup key in O(1) using map.
2. If not found:
   - Increment Miss counter.
   - Return immediately.

3. If found:
   - Check expiration (lazy expiration).
   - If expired:
       - Remove element from LRU + map.
       - Increment ExpiredRemovals and Miss counters.
       - Return false.

4. If valid:
   - Move entry to front of LRU (mark as recently used).
   - Increment Hit counter.
   - Return value.

The hit counter and the recency promotion happen inside the same
locked section, so no concurrent observer can see one without the
other — get's atomicity guarantee.

TIME COMPLEXITY:
O(1) average case.
*/

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown {
		return nil, false
	}

	elem, found := c.data[key]
	if !found {
		c.stats.Misses++
		return nil, false
	}

	e := elem.Value.(*entry)

	if e.expired(time.Now()) {
		c.removeElement(elem)
		c.stats.ExpiredRemovals++
		c.stats.Misses++
		return nil, false
	}

	c.lru.MoveToFront(elem)
	c.stats.Hits++
	return e.value, true
}

/*
Delete removes a key from the cache.

BEHAVIOR:
- If key exists → remove from map and LRU list, return nil.
- If key does not exist → return ErrNotFound. This does not count as a
  miss; Delete and Get track independent outcomes.

TIME COMPLEXITY:
O(1) average case.
*/

func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown {
		return ErrShutdown
	}

	elem, found := c.data[key]
	if !found {
		return ErrNotFound
	}

	c.removeElement(elem)
	return nil
}

/*
Clear empties the cache entirely.

Counters are preserved — they are monotonic across the lifetime of the
engine — only current_size drops to zero.
*/

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]*list.Element)
	c.lru.Init()
}

// Stats returns a point-in-time snapshot of the cache's performance
// counters and current size. The snapshot is an immutable value, not a
// view over mutable state.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.stats
	snapshot.CurrentSize = c.lru.Len()
	snapshot.ShuttingDown = c.shutdown
	return snapshot
}

/*
All returns a snapshot of every non-expired entry, ordered MRU→LRU.

Lazily-expired entries encountered during the walk are not removed —
All is read-only by contract (§4.1) — they are simply excluded from
the result. The sweeper and the next Get on that key will reclaim them.
*/

func (c *Cache) All() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	out := make([]Entry, 0, c.lru.Len())
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(*entry)
		if e.expired(now) {
			continue
		}
		out = append(out, Entry{Key: e.key, Value: e.value})
	}
	return out
}

/*
sweepBatch performs active expiration by scanning one bounded batch of
the LRU list and removing expired entries.

This method is invoked by the background sweeper at configured
intervals. It returns the number of entries it removed and whether it
stopped because it reached sweepBatchSize (more == true) rather than
the front of the list, letting the sweeper decide whether to yield and
continue.

ALGORITHM:
- Iterate from the back (oldest entries) toward the front.
- Check expiration status.
- Remove expired elements using removeElement().
- Stop after inspecting sweepBatchSize entries.

CONCURRENCY:
Acquires exclusive Lock() since it mutates internal structures and
releases it on return, so each call holds the lock for one batch only;
the sweeper calls it again for the next batch, so the lock is never
held across an unbounded-length sweep.
*/

func (c *Cache) sweepBatch() (removed int, more bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	inspected := 0

	for elem := c.lru.Back(); elem != nil && inspected < c.sweepBatchSize; inspected++ {
		prev := elem.Prev()
		e := elem.Value.(*entry)
		if e.expired(now) {
			c.removeElement(elem)
			removed++
			c.stats.ExpiredRemovals++
		}
		elem = prev
	}

	return removed, inspected >= c.sweepBatchSize
}

// Shutdown terminates the background sweeper and marks the cache
// terminal: subsequent Put/Delete calls return ErrShutdown and Get
// returns (nil, false). Safe to call more than once.
func (c *Cache) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()

	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}
