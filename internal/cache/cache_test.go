package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[int](time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 42)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestExpiryIsLazy(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New[string](time.Minute).WithNow(func() time.Time { return clock })

	c.Set("k", "v")
	assert.Equal(t, 1, c.Len())

	clock = clock.Add(2 * time.Minute)

	// Entry survives in memory until read.
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetTTLOverridesDefault(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New[string](time.Minute).WithNow(func() time.Time { return clock })

	c.SetTTL("long", "v", time.Hour)
	clock = clock.Add(30 * time.Minute)
	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestStats(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	assert.Equal(t, 1, s.Entries)
	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
}

func TestClear(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
