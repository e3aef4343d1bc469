package cache

import (
	"strconv"
	"testing"
	"time"
)

/*
BenchmarkPut measures the performance of the Put() operation.

PURPOSE

Benchmarks are used to evaluate:
- Execution time per operation (ns/op)
- Memory allocations (when run with -benchmem)
- Throughput under repeated execution

This benchmark focuses specifically on measuring the cost of:

1. Expiration timestamp calculation
2. Mutex Lock()/Unlock() overhead
3. Map lookup and LRU move-to-front (the key already exists)
4. Struct field assignment

WHAT THIS BENCHMARK REPRESENTS

- Ideal scenario where the same key is overwritten repeatedly.
- Map size does not grow significantly.
- Measures core write-path performance.

For more realistic benchmarks, variations could include:
- Using unique keys (map growth behavior, see BenchmarkPutUniqueKeys)
- Parallel benchmarking (mutex contention testing)
- Measuring allocations using: go test -bench=. -benchmem
*/

func BenchmarkPut(b *testing.B) {
	c := New()

	for i := 0; i < b.N; i++ {
		c.Put("key", "value", 5*time.Second)
	}
}

// BenchmarkPutUniqueKeys measures Put performance when every call
// grows the map, exercising the LRU eviction path once maxSize is
// reached.
func BenchmarkPutUniqueKeys(b *testing.B) {
	c := New(WithMaxSize(1000))

	for i := 0; i < b.N; i++ {
		c.Put(strconv.Itoa(i), i)
	}
}

// BenchmarkGetHit measures Get performance on the hit path, which
// also pays for the LRU move-to-front on every call.
func BenchmarkGetHit(b *testing.B) {
	c := New()
	c.Put("key", "value")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

// BenchmarkGetParallel measures throughput under lock contention from
// many goroutines sharing one cache.
func BenchmarkGetParallel(b *testing.B) {
	c := New()
	c.Put("key", "value")

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Get("key")
		}
	})
}
