package sm

import (
	"fmt"

	"github.com/comalice/fwgraph/internal/primitives"
)

// Start fires the initial transition of a stopped machine and resets both
// execution counters. It does nothing on a started machine and refuses to
// run while an error is latched.
//
// The returned error is the machine's own flow error or, failing that, the
// first error returned by an embedded machine started on the way.
func (m *Machine) Start() error {
	if m.err != primitives.Success {
		return fmt.Errorf("start %s: %w", m.name, m.err)
	}
	m.top.Freeze()
	if m.current != 0 {
		return nil
	}
	m.execCount = 0
	m.stateExecCount = 0
	return m.fire(0)
}

// Stop stops the embedded machine of the current state, runs the state's exit
// action and leaves the machine stopped. It does nothing on a stopped machine.
func (m *Machine) Stop() {
	if m.current == 0 {
		return
	}
	if sub := m.embedded[m.current-1]; sub != nil {
		sub.Stop()
	}
	m.actions.At(m.top.Node(m.current).Behaviors[primitives.BehaviorExit]).fn(m)
	m.current = 0
}

// Execute sends ExecuteTrigger.
func (m *Machine) Execute() error {
	return m.MakeTransition(ExecuteTrigger)
}

// MakeTransition sends trigger to a started machine. ExecuteTrigger first
// advances the counters and runs the do action of the current state. The
// trigger is then forwarded to the embedded machine of the current state,
// if any, and finally the first outgoing transition, in registration order,
// whose trigger matches and whose guard holds is fired.
func (m *Machine) MakeTransition(trigger TriggerID) error {
	if m.err != primitives.Success {
		return fmt.Errorf("make transition %d on %s: %w", trigger, m.name, m.err)
	}
	if m.current == 0 {
		return nil
	}
	state := m.top.Node(m.current)
	if trigger == ExecuteTrigger {
		m.execCount++
		m.stateExecCount++
		m.actions.At(state.Behaviors[primitives.BehaviorDo]).fn(m)
	}
	var subErr error
	sub := m.embedded[m.current-1]
	if sub != nil {
		subErr = sub.MakeTransition(trigger)
	}
	for i := state.EdgeStart; i < state.EdgeStart+state.EdgeCount; i++ {
		e := m.top.Edge(i)
		if TriggerID(e.Trigger) != trigger || !m.guards.At(e.Guard).fn(m) {
			continue
		}
		if sub != nil {
			sub.Stop()
		}
		m.actions.At(state.Behaviors[primitives.BehaviorExit]).fn(m)
		if err := m.fire(i); err != nil {
			return err
		}
		return subErr
	}
	return subErr
}

// fire runs the transition in slot and follows choices until a state or the
// final pseudo-state is reached.
func (m *Machine) fire(slot int) error {
	e := m.top.Edge(slot)
	m.actions.At(e.Action).fn(m)
	for hops := 0; ; hops++ {
		dest := e.Packed()
		if dest > 0 {
			return m.enter(dest)
		}
		if dest == 0 {
			m.current = 0
			return nil
		}
		id := -dest
		// a longer chain must revisit a choice
		if hops >= m.top.DecisionCount() {
			return m.flowError(id)
		}
		next, ok := m.choose(m.top.Decision(id))
		if !ok {
			return m.flowError(id)
		}
		e = m.top.Edge(next)
		m.actions.At(e.Action).fn(m)
	}
}

// choose returns the first slot out of d whose guard holds.
func (m *Machine) choose(d primitives.Decision) (int, bool) {
	for i := d.EdgeStart; i < d.EdgeStart+d.EdgeCount; i++ {
		if m.guards.At(m.top.Edge(i).Guard).fn(m) {
			return i, true
		}
	}
	return 0, false
}

func (m *Machine) enter(id int) error {
	m.current = id
	m.stateExecCount = 0
	m.actions.At(m.top.Node(id).Behaviors[primitives.BehaviorEntry]).fn(m)
	if sub := m.embedded[id-1]; sub != nil {
		return sub.Start()
	}
	return nil
}

func (m *Machine) flowError(choice int) error {
	m.err = primitives.ErrFlow
	if m.logger != nil {
		m.logger.Warn("no guard holds", "machine", m.name, "choice", choice, "state", m.current)
	}
	return fmt.Errorf("choice %d of %s: %w", choice, m.name, primitives.ErrFlow)
}
