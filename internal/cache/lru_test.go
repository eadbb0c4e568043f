package cache

import (
	"fmt"
	"testing"
	"time"
)

// TestLRUCacheEviction tests size-based eviction
func TestLRUCacheEviction(t *testing.T) {
	cache := NewLRUCache[string](3, time.Hour) // 3 items max

	// Fill beyond capacity
	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")
	cache.Set("key4", "value4") // Should evict key1

	// key1 should be evicted (LRU)
	if _, found := cache.Get("key1"); found {
		t.Error("key1 should have been evicted")
	}

	// Others should still exist
	if _, found := cache.Get("key2"); !found {
		t.Error("key2 should still exist")
	}
	if _, found := cache.Get("key3"); !found {
		t.Error("key3 should still exist")
	}
	if _, found := cache.Get("key4"); !found {
		t.Error("key4 should still exist")
	}
}

// TestLRUCacheRecentUseSurvivesEviction verifies Get refreshes recency
func TestLRUCacheRecentUseSurvivesEviction(t *testing.T) {
	cache := NewLRUCache[string](3, time.Hour)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")

	// Touch key1 so key2 becomes the oldest
	if _, found := cache.Get("key1"); !found {
		t.Fatal("key1 should exist before eviction")
	}

	cache.Set("key4", "value4") // Should evict key2

	if _, found := cache.Get("key1"); !found {
		t.Error("key1 was recently used and should survive")
	}
	if _, found := cache.Get("key2"); found {
		t.Error("key2 should have been evicted")
	}
}

// TestLRUCacheTTLExpiration tests time-based expiration
func TestLRUCacheTTLExpiration(t *testing.T) {
	cache := NewLRUCache[string](100, 50*time.Millisecond) // 50ms TTL

	cache.Set("key1", "value1")

	// Should exist immediately
	if _, found := cache.Get("key1"); !found {
		t.Error("key1 should exist immediately")
	}

	// Wait for expiration
	time.Sleep(60 * time.Millisecond)

	// Should be expired
	if _, found := cache.Get("key1"); found {
		t.Error("key1 should have expired")
	}
}

// TestLRUCacheCleanExpired tests the cleanup mechanism
func TestLRUCacheCleanExpired(t *testing.T) {
	cache := NewLRUCache[string](100, 50*time.Millisecond)

	// Add some items
	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")

	// Wait for expiration
	time.Sleep(60 * time.Millisecond)

	// Run cleanup
	removed := cache.CleanExpired()

	// Should have cleaned up all 3 items
	if removed != 3 {
		t.Errorf("Expected 3 items cleaned, got %d", removed)
	}
	if cache.Size() != 0 {
		t.Errorf("Size = %d after cleanup, want 0", cache.Size())
	}
}

// TestLRUCachePurge tests full invalidation
func TestLRUCachePurge(t *testing.T) {
	cache := NewLRUCache[string](100, time.Hour)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	cache.Purge()

	if cache.Size() != 0 {
		t.Errorf("Size = %d after purge, want 0", cache.Size())
	}
	if _, found := cache.Get("key1"); found {
		t.Error("key1 should be gone after purge")
	}

	// Cache stays usable after a purge
	cache.Set("key3", "value3")
	if _, found := cache.Get("key3"); !found {
		t.Error("key3 should exist after re-populating")
	}
}

func TestLRUCacheDelete(t *testing.T) {
	cache := NewLRUCache[string](100, time.Hour)

	cache.Set("key1", "value1")
	cache.Delete("key1")
	cache.Delete("missing") // no-op

	if _, found := cache.Get("key1"); found {
		t.Error("key1 should be gone after delete")
	}
}

// TestManagerCleanup verifies the manager sweeps registered caches
func TestManagerCleanup(t *testing.T) {
	cache := NewLRUCache[string](100, 10*time.Millisecond)
	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	manager := NewManager()
	manager.Register(cache)
	manager.StartCleanup(20 * time.Millisecond)
	defer manager.Stop()

	deadline := time.Now().Add(time.Second)
	for cache.Size() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if cache.Size() != 0 {
		t.Errorf("Size = %d, want 0 after manager cleanup", cache.Size())
	}
}

func TestManagerStopTwice(t *testing.T) {
	manager := NewManager()
	manager.StartCleanup(time.Millisecond)

	manager.Stop()
	manager.Stop() // must not panic
}

// BenchmarkLRUCache benchmarks cache performance
func BenchmarkLRUCache(b *testing.B) {
	cache := NewLRUCache[string](1000, time.Hour)

	b.ResetTimer()

	// Test mixed read/write workload
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("bench-key-%d", i%100)
		if i%10 == 0 {
			// 10% writes
			cache.Set(key, "value")
		} else {
			// 90% reads
			cache.Get(key)
		}
	}
}

// BenchmarkCacheCleanup benchmarks the cleanup mechanism
func BenchmarkCacheCleanup(b *testing.B) {
	cache := NewLRUCache[string](1000, time.Nanosecond) // Very short TTL

	// Fill cache with expired items
	for i := 0; i < 100; i++ {
		cache.Set("key", "value")
	}

	// Wait for expiration
	time.Sleep(time.Millisecond)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cache.CleanExpired()
	}
}
