package fs

import (
	"sync"
	"time"

	"github.com/aretw0/sieve/pkg/core"
)

// debouncer collapses bursts of events per record ID: editors routinely
// produce several writes (and temp-file renames) for one logical save.
// Only the latest event in a burst survives.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	timer *time.Timer
	event core.Event
	fire  func(core.Event)
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules fire(event) after the delay. Adding again for the same ID
// before the timer fires replaces the event and restarts the window, so a
// write followed by a quick remove ends up delivered as a single delete.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[event.ID]; ok {
		p.event = event
		p.fire = fire
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: event, fire: fire}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() { d.flush(event.ID) })
	d.pending[event.ID] = p
}

// flush delivers the pending event for id, if one is still registered.
// Whichever caller removes the entry settles its WaitGroup slot, so a stale
// timer left over from a Reset race is a no-op.
func (d *debouncer) flush(id string) {
	d.mu.Lock()
	p, ok := d.pending[id]
	if ok {
		delete(d.pending, id)
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	p.fire(p.event)
	d.wg.Done()
}

// stopAndWait rejects further events, cancels timers that have not fired and
// waits (bounded by timeout) for in-flight deliveries to finish.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for id, p := range d.pending {
		if p.timer.Stop() {
			// Stopped before firing: flush will never run for this entry.
			delete(d.pending, id)
			d.wg.Done()
		}
		// Stop() == false means the timer already fired; its flush call
		// settles the entry.
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
