package cache

import (
	"time"
)

/*
Option defines a functional configuration modifier for Cache.

DESIGN PATTERN

This file implements the Functional Options Pattern, a common
idiomatic Go design used for flexible and extensible configuration.

Instead of passing multiple parameters to the constructor,
New() accepts a variadic list of Option functions:

    c := New(
        WithMaxSize(1000),
        WithDefaultTTL(30*time.Second),
        WithSweepInterval(2*time.Second),
    )

Each Option modifies the Cache instance before it becomes active.

BENEFITS

1. API Stability:
   Adding new configuration options does not change the New() signature.

2. Readability:
   Configuration is self-documenting and explicit.

3. Extensibility:
   Future options can be added without breaking existing callers.

Each Option is simply a function that mutates the Cache struct.
*/

type Option func(*Cache)

const (
	defaultMaxSize        = 1000
	defaultSweepInterval  = 2 * time.Second
	defaultSweepBatchSize = 1024
)

// WithMaxSize sets the maximum number of entries the cache holds before
// LRU eviction kicks in. Values <= 0 are ignored and the default is kept.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithDefaultTTL sets the TTL applied to entries whose Put call does not
// supply one. Zero means entries never expire by default.
func WithDefaultTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.defaultTTL = d
	}
}

// WithSweepInterval sets how often the background sweeper scans for
// expired entries. A value <= 0 disables the sweeper entirely, leaving
// expiry enforcement to the lazy path in Get.
func WithSweepInterval(d time.Duration) Option {
	return func(c *Cache) {
		c.sweepInterval = d
	}
}

// WithSweepBatchSize bounds how many entries the sweeper inspects per
// lock acquisition, so a very large cache cannot hold the lock for an
// unbounded stretch of time during a single sweep tick.
func WithSweepBatchSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.sweepBatchSize = n
		}
	}
}
