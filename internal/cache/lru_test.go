package cache

import (
	"fmt"
	"testing"
	"time"

	"gastos/internal/core"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache[T any](size int, ttl time.Duration) (*LRUCache[T], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRUCache[T](size, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRUCacheEviction(t *testing.T) {
	cache, _ := newTestCache[string](3, time.Hour)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	cache.Set("key3", "value3")
	cache.Set("key4", "value4") // evicts key1

	if _, found := cache.Get("key1"); found {
		t.Error("key1 should have been evicted")
	}
	for _, key := range []string{"key2", "key3", "key4"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("%s should still exist", key)
		}
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	cache, _ := newTestCache[string](2, time.Hour)
	cache.Set("a", "1")
	cache.Set("b", "2")
	cache.Get("a")
	cache.Set("c", "3")

	if _, found := cache.Get("b"); found {
		t.Error("b was least recently used and should be gone")
	}
	if _, found := cache.Get("a"); !found {
		t.Error("a should survive after being read")
	}
}

func TestLRUCacheTTLExpiration(t *testing.T) {
	cache, clock := newTestCache[string](100, 50*time.Millisecond)

	cache.Set("key1", "value1")
	if _, found := cache.Get("key1"); !found {
		t.Error("key1 should exist immediately")
	}

	clock.advance(60 * time.Millisecond)
	if _, found := cache.Get("key1"); found {
		t.Error("key1 should have expired")
	}

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	cache, clock := newTestCache[string](10, 0)
	cache.Set("k", "v")
	clock.advance(24 * time.Hour)
	if _, found := cache.Get("k"); !found {
		t.Error("zero TTL entry should not expire")
	}
	if removed := cache.CleanExpired(); removed != 0 {
		t.Errorf("CleanExpired() = %d, want 0", removed)
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	cache, clock := newTestCache[string](100, 50*time.Millisecond)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")
	clock.advance(60 * time.Millisecond)
	cache.Set("key3", "value3")

	if removed := cache.CleanExpired(); removed != 2 {
		t.Errorf("Expected 2 items cleaned, got %d", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
}

func TestLRUCacheDeletePrefixAndPurge(t *testing.T) {
	cache, _ := newTestCache[core.LegislatorDetail](10, time.Hour)
	cache.Set("detalhes/1.json", core.LegislatorDetail{ID: "1"})
	cache.Set("detalhes/2.json", core.LegislatorDetail{ID: "2"})
	cache.Set("deputados.json", core.LegislatorDetail{})

	if n := cache.DeletePrefix("detalhes/"); n != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", n)
	}
	if _, found := cache.Get("deputados.json"); !found {
		t.Error("unrelated key should survive DeletePrefix")
	}
	if n := cache.Purge(); n != 1 || cache.Size() != 0 {
		t.Errorf("Purge() = %d, size %d", n, cache.Size())
	}
	cache.Set("again", core.LegislatorDetail{})
	if cache.Size() != 1 {
		t.Error("cache should be usable after Purge")
	}
}

func TestManagerCleanNow(t *testing.T) {
	a, clock := newTestCache[string](10, time.Second)
	b, _ := newTestCache[int](10, time.Second)
	b.now = clock.now

	a.Set("x", "1")
	b.Set("y", 2)
	clock.advance(2 * time.Second)

	m := NewManager(nil)
	m.Register(a)
	m.Register(b)
	if n := m.CleanNow(); n != 2 {
		t.Errorf("CleanNow() = %d, want 2", n)
	}

	m.StartCleanup(time.Hour)
	m.Stop()
	m.Stop()
}

func BenchmarkLRUCache(b *testing.B) {
	cache := NewLRUCache[core.LegislatorSummary](1000, time.Hour)
	summary := core.LegislatorSummary{ID: "204554", Name: "Ana", YearTotal: 1000}
	keys := make([]string, 64)
	for i := range keys {
		keys[i] = fmt.Sprintf("detalhes/%d.json", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		if i%10 == 0 {
			cache.Set(key, summary)
		} else {
			cache.Get(key)
		}
	}
}
