package cache

import (
	"testing"
	"time"

	"github.com/shoplens/backend/internal/domain"
)

func TestMemoryCacheSetAndGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	ident := domain.ProductIdentification{English: "Blue Mug", French: "Tasse bleue"}
	c.Set("digest-1", ident)

	got, ok := c.Get("digest-1")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got != ident {
		t.Errorf("Get() = %+v, want %+v", got, ident)
	}
}

func TestMemoryCacheMissForUnknownKey(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if _, ok := c.Get("never-set"); ok {
		t.Error("Get() hit for a key that was never set")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)

	c.Set("digest-1", domain.ProductIdentification{English: "Blue Mug"})
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("digest-1"); ok {
		t.Error("Get() hit after TTL elapsed")
	}
}

func TestMemoryCacheSizeAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	c.Set("a", domain.ProductIdentification{English: "A"})
	c.Set("b", domain.ProductIdentification{English: "B"})
	if got := c.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	c.Clear()
	if got := c.Size(); got != 0 {
		t.Errorf("Size() after Clear = %d, want 0", got)
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	c.Set("digest-1", domain.ProductIdentification{English: "First"})
	c.Set("digest-1", domain.ProductIdentification{English: "Second"})

	got, ok := c.Get("digest-1")
	if !ok || got.English != "Second" {
		t.Errorf("Get() = (%+v, %t), want the second value", got, ok)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}
