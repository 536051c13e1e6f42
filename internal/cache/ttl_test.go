package cache

import (
	"testing"
	"time"
)

func TestTTLCacheGetSetDelete(t *testing.T) {
	c := NewTTLCache[int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("got %d, %v", v, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted key should miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string](50 * time.Millisecond)
	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should be live immediately after set")
	}

	time.Sleep(75 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewTTLCache[int](50 * time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)

	if removed := c.CleanExpired(); removed != 0 {
		t.Fatalf("removed %d before TTL, want 0", removed)
	}

	time.Sleep(75 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("removed %d after TTL, want 2", removed)
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d after cleanup, want 0", c.Size())
	}
}

func TestManagerCleanup(t *testing.T) {
	c := NewTTLCache[int](10 * time.Millisecond)
	c.Set("a", 1)

	m := NewManager()
	m.Register(c)
	m.StartCleanup(20 * time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	m.Stop()

	if c.Size() != 0 {
		t.Errorf("Size() = %d after manager cleanup, want 0", c.Size())
	}
}
