package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CET", 3600)
	c := NewFixed(time.Date(2026, 2, 18, 10, 0, 0, 0, loc))
	first, second := c.Now(), c.Now()
	if !first.Equal(second) {
		t.Fatalf("expected a pinned time, got %v and %v", first, second)
	}
	if first.Location() != time.UTC || first.Hour() != 9 {
		t.Fatalf("expected 09:00 UTC, got %v", first)
	}
}

func TestStepped(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)
	c := NewStepped(start, time.Minute)
	for i := 0; i < 3; i++ {
		want := start.Add(time.Duration(i) * time.Minute)
		if got := c.Now(); !got.Equal(want) {
			t.Fatalf("call %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestSystem(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := NewSystem().Now()
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}
	if got.Before(before.Add(-time.Second)) {
		t.Fatalf("expected a current time, got %v", got)
	}
}
