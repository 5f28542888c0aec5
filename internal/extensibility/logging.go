package extensibility

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// LoggingAction wraps a so that each run is logged at Debug, with the
// machine, its current state and the time spent in a.
func LoggingAction(l *log.Logger, a *sm.Action) *sm.Action {
	return sm.NewAction(a.Name(), func(m *sm.Machine) {
		l.Debug("running action", "action", a.Name(), "machine", m.Name(), "state", m.Current())
		start := time.Now()
		a.Run(m)
		l.Debug("action done", "action", a.Name(), "machine", m.Name(), "elapsed", time.Since(start))
	})
}

// LoggingGuard wraps g so that each evaluation is logged with its result.
func LoggingGuard(l *log.Logger, g *sm.Guard) *sm.Guard {
	return sm.NewGuard(g.Name(), func(m *sm.Machine) bool {
		ok := g.Eval(m)
		l.Debug("guard evaluated", "guard", g.Name(), "machine", m.Name(), "state", m.Current(), "result", ok)
		return ok
	})
}

// LoggingNodeAction is LoggingAction for procedures.
func LoggingNodeAction(l *log.Logger, a *pr.Action) *pr.Action {
	return pr.NewAction(a.Name(), func(p *pr.Procedure) {
		l.Debug("running action", "action", a.Name(), "procedure", p.Name(), "node", p.Current())
		start := time.Now()
		a.Run(p)
		l.Debug("action done", "action", a.Name(), "procedure", p.Name(), "elapsed", time.Since(start))
	})
}

// LoggingFlowGuard is LoggingGuard for procedures.
func LoggingFlowGuard(l *log.Logger, g *pr.Guard) *pr.Guard {
	return pr.NewGuard(g.Name(), func(p *pr.Procedure) bool {
		ok := g.Eval(p)
		l.Debug("guard evaluated", "guard", g.Name(), "procedure", p.Name(), "node", p.Current(), "result", ok)
		return ok
	})
}

// TraceMachine overrides every registered action and guard of the derived
// machine m, and of the derived machines embedded in it, with logging
// wrappers. The base machine and its siblings are unaffected.
func TraceMachine(l *log.Logger, m *sm.Machine) error {
	for i := 1; i <= m.RegisteredActions(); i++ {
		a := m.ActionAt(i)
		if err := m.OverrideAction(a, LoggingAction(l, a)); err != nil {
			return err
		}
	}
	for i := 1; i <= m.RegisteredGuards(); i++ {
		g := m.GuardAt(i)
		if err := m.OverrideGuard(g, LoggingGuard(l, g)); err != nil {
			return err
		}
	}
	for id := 1; id <= m.Capacity().States; id++ {
		if sub := m.Embedded(id); sub != nil && sub.IsDerived() {
			if err := TraceMachine(l, sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// TraceProcedure is TraceMachine for procedures.
func TraceProcedure(l *log.Logger, p *pr.Procedure) error {
	for i := 1; i <= p.RegisteredActions(); i++ {
		a := p.ActionAt(i)
		if err := p.OverrideAction(a, LoggingNodeAction(l, a)); err != nil {
			return err
		}
	}
	for i := 1; i <= p.RegisteredGuards(); i++ {
		g := p.GuardAt(i)
		if err := p.OverrideGuard(g, LoggingFlowGuard(l, g)); err != nil {
			return err
		}
	}
	return nil
}
