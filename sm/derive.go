package sm

import "github.com/comalice/fwgraph/internal/primitives"

// Derive returns a stopped machine sharing the topology of base, with copies
// of its action and guard tables, its logger and its latched error. The
// derived machine has no user data and no embedded machines. Deriving
// freezes the shared topology.
func Derive(base *Machine) *Machine {
	base.top.Freeze()
	return &Machine{
		name:     base.name,
		top:      base.top,
		logger:   base.logger,
		actions:  base.actions.Clone(),
		guards:   base.guards.Clone(),
		embedded: make([]*Machine, len(base.embedded)),
		err:      base.err,
	}
}

// DeriveRecursive derives base and then, for every state of base with an
// embedded machine, derives that machine recursively and embeds the result.
func DeriveRecursive(base *Machine) *Machine {
	d := Derive(base)
	for i, sub := range base.embedded {
		if sub != nil {
			d.embedded[i] = DeriveRecursive(sub)
		}
	}
	return d
}

// InitDerived turns dst, created by New, into a machine derived from base.
// The action and guard capacities of dst must equal those of base; dst's own
// topology is dropped.
func InitDerived(dst, base *Machine) error {
	if dst.actions.Capacity() != base.actions.Capacity() {
		return dst.fail("init derived", 0, primitives.ErrWrongActionCount)
	}
	if dst.guards.Capacity() != base.guards.Capacity() {
		return dst.fail("init derived", 0, primitives.ErrWrongGuardCount)
	}
	base.top.Freeze()
	dst.top = base.top
	dst.actions.CopyFrom(&base.actions)
	dst.guards.CopyFrom(&base.guards)
	if len(dst.embedded) != len(base.embedded) {
		dst.embedded = make([]*Machine, len(base.embedded))
	} else {
		clear(dst.embedded)
	}
	dst.err = base.err
	dst.execCount = 0
	dst.stateExecCount = 0
	dst.cursor = 0
	dst.current = 0
	return nil
}

// OverrideAction replaces oldAction with newAction in the action table of a derived
// machine. Every state and transition that used oldAction now runs newAction.
func (m *Machine) OverrideAction(oldAction, newAction *Action) error {
	if !m.IsDerived() {
		return m.fail("override action", 0, primitives.ErrNotDerived)
	}
	if newAction == nil {
		return m.fail("override action", 0, primitives.ErrNullAction)
	}
	if oldAction == nil || !m.actions.Replace(oldAction, newAction) {
		return m.fail("override action", 0, primitives.ErrUndefinedAction)
	}
	return nil
}

// OverrideGuard replaces oldGuard with newGuard in the guard table of a derived
// machine.
func (m *Machine) OverrideGuard(oldGuard, newGuard *Guard) error {
	if !m.IsDerived() {
		return m.fail("override guard", 0, primitives.ErrNotDerived)
	}
	if newGuard == nil {
		return m.fail("override guard", 0, primitives.ErrNullGuard)
	}
	if oldGuard == nil || !m.guards.Replace(oldGuard, newGuard) {
		return m.fail("override guard", 0, primitives.ErrUndefinedGuard)
	}
	return nil
}

// Embed places sub in state id of a derived machine. Base machines embed
// through AddState.
func (m *Machine) Embed(id int, sub *Machine) error {
	if !m.IsDerived() {
		return m.fail("embed in state", id, primitives.ErrNotDerived)
	}
	if id < 1 || id > len(m.embedded) {
		return m.fail("embed in state", id, primitives.ErrIllegalNodeID)
	}
	if m.embedded[id-1] != nil {
		return m.fail("embed in state", id, primitives.ErrAlreadyEmbedded)
	}
	m.embedded[id-1] = sub
	return nil
}
