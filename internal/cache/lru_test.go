package cache

import (
	"testing"
	"time"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v; want 1, true", v, ok)
	}

	// "b" is now least recently used and is evicted.
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found an entry that should have been evicted")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestLRU_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU[string](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", "v")
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) returned an expired entry")
	}

	c.Set("x", "1")
	c.Set("y", "2")
	now = now.Add(2 * time.Minute)
	if n := c.CleanExpired(); n != 2 {
		t.Errorf("CleanExpired() = %d, want 2", n)
	}
}

func TestLRU_DeletePrefix(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Set("owner-1:summary", 1)
	c.Set("owner-1:yearly:2024", 2)
	c.Set("owner-2:summary", 3)

	if n := c.DeletePrefix("owner-1:"); n != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", n)
	}
	if _, ok := c.Get("owner-2:summary"); !ok {
		t.Error("DeletePrefix removed a key of another owner")
	}

	c.Delete("owner-2:summary")
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
}

type countingCleaner struct{ n int }

func (c *countingCleaner) CleanExpired() int { return c.n }

func TestJanitor_Sweep(t *testing.T) {
	j := &Janitor{}
	j.Register(&countingCleaner{n: 2})
	j.Register(&countingCleaner{n: 3})

	if got := j.Sweep(); got != 5 {
		t.Errorf("Sweep() = %d, want 5", got)
	}
}
