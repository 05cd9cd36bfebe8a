package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/sieve/pkg/core"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	var fired []core.Event
	record := func(e core.Event) {
		mu.Lock()
		fired = append(fired, e)
		mu.Unlock()
	}

	// Three events for the same ID inside one window: only the last survives.
	d.add(core.Event{ID: "a.md", Type: core.EventCreate}, record)
	d.add(core.Event{ID: "a.md", Type: core.EventModify}, record)
	d.add(core.Event{ID: "a.md", Type: core.EventDelete}, record)

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("fired %d events, want 1: %v", len(fired), fired)
	}
	if fired[0].Type != core.EventDelete {
		t.Errorf("surviving event = %s, want DELETE", fired[0].Type)
	}
}

func TestDebouncerSeparatesIDs(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	seen := make(map[string]int)
	record := func(e core.Event) {
		mu.Lock()
		seen[e.ID]++
		mu.Unlock()
	}

	d.add(core.Event{ID: "a.md", Type: core.EventModify}, record)
	d.add(core.Event{ID: "b.md", Type: core.EventModify}, record)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if seen["a.md"] != 1 || seen["b.md"] != 1 {
		t.Errorf("seen = %v, want one event per ID", seen)
	}
}

func TestDebouncerStopAndWait(t *testing.T) {
	d := newDebouncer(200 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	record := func(core.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.add(core.Event{ID: "pending.md", Type: core.EventModify}, record)
	d.stopAndWait(time.Second)

	// The pending timer was cancelled, and new events are rejected.
	d.add(core.Event{ID: "late.md", Type: core.EventModify}, record)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("fired %d events after stop, want 0", count)
	}
}
