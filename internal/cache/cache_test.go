// ABOUTME: Tests for the TTL cache
// ABOUTME: Covers hit, miss, expiry and explicit clearing

package cache

import (
	"testing"
	"time"
)

func TestCache_HitAndMiss(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.Set("k", "v")
	val, ok := c.Get("k")
	if !ok || val != "v" {
		t.Errorf("expected hit with v, got %v %v", val, ok)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New(time.Minute)
	c.Set("k", "v")
	c.Clear("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected cleared key to miss")
	}
}
