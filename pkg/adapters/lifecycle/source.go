package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/sieve/pkg/core"
)

type checkSource struct {
	events <-chan core.CheckEvent
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits sieve check events.
// It bridges the typed check event channel (Service.Watch) to the generic
// lifecycle Event interface, so a host application can supervise the checker
// alongside its other event sources.
func NewSource(events <-chan core.CheckEvent) lifecycle.Source {
	return &checkSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *checkSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *checkSource) Start(ctx context.Context) error {
	// 1. Bridges the check event channel to the generic lifecycle Event interface
	// 2. Uses lifecycle.Go to ensure the bridge itself is tracked and safe
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.CheckEvent implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
