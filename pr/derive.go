package pr

import "github.com/comalice/fwgraph/internal/primitives"

// Derive returns a stopped procedure sharing the topology of base, with
// copies of its action and guard tables, its logger and its latched error.
func Derive(base *Procedure) *Procedure {
	base.top.Freeze()
	return &Procedure{
		name:    base.name,
		top:     base.top,
		logger:  base.logger,
		actions: base.actions.Clone(),
		guards:  base.guards.Clone(),
		err:     base.err,
	}
}

// InitDerived turns dst, created by New, into a procedure derived from base.
func InitDerived(dst, base *Procedure) error {
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
	dst.err = base.err
	dst.execCount = 0
	dst.nodeExecCount = 0
	dst.cursor = 0
	dst.current = 0
	return nil
}

func (p *Procedure) OverrideAction(oldAction, newAction *Action) error {
	if !p.IsDerived() {
		return p.fail("override action", 0, primitives.ErrNotDerived)
	}
	if newAction == nil {
		return p.fail("override action", 0, primitives.ErrNullAction)
	}
	if oldAction == nil || !p.actions.Replace(oldAction, newAction) {
		return p.fail("override action", 0, primitives.ErrUndefinedAction)
	}
	return nil
}

func (p *Procedure) OverrideGuard(oldGuard, newGuard *Guard) error {
	if !p.IsDerived() {
		return p.fail("override guard", 0, primitives.ErrNotDerived)
	}
	if newGuard == nil {
		return p.fail("override guard", 0, primitives.ErrNullGuard)
	}
	if oldGuard == nil || !p.guards.Replace(oldGuard, newGuard) {
		return p.fail("override guard", 0, primitives.ErrUndefinedGuard)
	}
	return nil
}
