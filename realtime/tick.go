package realtime

import (
	"errors"
	"fmt"
)

// Tick processes one complete tick: queued triggers are delivered in order,
// then every started instance executes once. Failures do not stop the tick;
// they are joined into the returned error.
func (rt *Runtime) Tick() error {
	if rt.beforeTick != nil {
		rt.beforeTick(rt, rt.TickNumber()+1)
	}
	triggers := rt.collectTriggers()
	sortTriggers(triggers)

	var errs []error
	for _, tr := range triggers {
		inst := rt.entries[rt.index[tr.Target]].inst
		if err := inst.(triggerable).MakeTransition(tr.ID); err != nil {
			errs = append(errs, fmt.Errorf("trigger %d to %q: %w", tr.ID, tr.Target, err))
		}
	}
	for _, e := range rt.entries {
		if !e.inst.IsStarted() {
			continue
		}
		if err := e.inst.Execute(); err != nil {
			errs = append(errs, fmt.Errorf("execute %q: %w", e.name, err))
		}
	}

	rt.mu.Lock()
	rt.tickNum++
	tick := rt.tickNum
	rt.mu.Unlock()

	err := errors.Join(errs...)
	if err != nil && rt.logger != nil {
		rt.logger.Warn("tick failed", "tick", tick, "failures", len(errs), "err", err)
	}
	return err
}

// collectTriggers atomically retrieves and clears the queue.
func (rt *Runtime) collectTriggers() []Trigger {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	triggers := rt.queue
	rt.queue = make([]Trigger, 0, cap(rt.queue))
	return triggers
}
