package cache

import (
	"time"
)

/*
entry represents a single cache entry stored inside the Cache's element map.

DESIGN PURPOSE

Each cache key maps to an entry instead of directly storing the value.
This allows the cache to associate metadata (such as expiration time)
with each stored value.

STRUCTURE

value     -> The actual stored data (generic via interface{}).
expiresAt -> Absolute deadline after which the entry is considered expired.

EXPIRATION STRATEGY

- If expiresAt is the zero time.Time:
  The entry does not expire (infinite lifetime).

- Otherwise:
  The entry is considered expired once time.Now() reaches expiresAt
  (the deadline itself counts as expired).

WHY time.Time INSTEAD OF A RAW UnixNano INT64?

time.Now() carries a monotonic reading alongside its wall clock reading,
and time.Time's Before/After comparisons prefer that monotonic reading
when both operands have one. That keeps expiry and sweep decisions
robust to wall-clock adjustments (NTP step, manual clock changes)
without any extra bookkeeping on our part.
*/

type entry struct {
	key       string
	value     interface{} // atomic unit of storage in the cache
	expiresAt time.Time   // zero means "never expires"
}

// expired reports whether the entry has exceeded its TTL as of now.
//
// BEHAVIOR:
//
// 1. If expiresAt is zero, the entry has no TTL and never expires.
// 2. Otherwise, compares now against the stored deadline.
//
// This supports both lazy expiration (checked during Get) and active
// expiration (checked by the background sweeper).
func (e *entry) expired(now time.Time) bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return !now.Before(e.expiresAt)
}

// Entry is the externally visible, read-only view of a cache entry
// returned by All(). It intentionally excludes recency-list plumbing.
type Entry struct {
	Key   string
	Value interface{}
}
