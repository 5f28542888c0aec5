package sm

import "github.com/comalice/fwgraph/internal/primitives"

// AddState registers state id with nOut outgoing transitions. Nil actions use
// the no-op action. sub, when not nil, is embedded in the state.
func (m *Machine) AddState(id, nOut int, entry, exit, do *Action, sub *Machine) error {
	if code := m.top.ReserveNode(id, nOut, m.cursor); code != primitives.Success {
		return m.fail("add state", id, code)
	}
	m.cursor += nOut
	var b [3]int
	var full bool
	for i, a := range [3]*Action{entry, do, exit} {
		slot, ok := m.actions.Add(a)
		b[primitives.BehaviorEntry+i] = slot
		full = full || !ok
	}
	m.top.SetBehaviors(id, b)
	if sub != nil {
		m.embedded[id-1] = sub
	}
	if full {
		return m.fail("add state", id, primitives.ErrTooManyActions)
	}
	return nil
}

// AddChoice registers choice pseudo-state id with nOut >= 1 outgoing
// transitions.
func (m *Machine) AddChoice(id, nOut int) error {
	if code := m.top.ReserveDecision(id, nOut, 1, m.cursor); code != primitives.Success {
		return m.fail("add choice", id, code)
	}
	m.cursor += nOut
	return nil
}

// AddInitToState registers the transition out of the initial pseudo-state.
func (m *Machine) AddInitToState(dest int, action *Action) error {
	return m.AddTransition(primitives.FromInitial(), ExecuteTrigger, primitives.ToNode(dest), action, nil)
}

func (m *Machine) AddInitToChoice(dest int, action *Action) error {
	return m.AddTransition(primitives.FromInitial(), ExecuteTrigger, primitives.ToDecision(dest), action, nil)
}

func (m *Machine) AddStateToState(src int, trigger TriggerID, dest int, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromNode(src), trigger, primitives.ToNode(dest), action, guard)
}

func (m *Machine) AddStateToChoice(src int, trigger TriggerID, dest int, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromNode(src), trigger, primitives.ToDecision(dest), action, guard)
}

func (m *Machine) AddStateToFinal(src int, trigger TriggerID, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromNode(src), trigger, primitives.ToFinal(), action, guard)
}

func (m *Machine) AddChoiceToState(src, dest int, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromDecision(src), ExecuteTrigger, primitives.ToNode(dest), action, guard)
}

func (m *Machine) AddChoiceToChoice(src, dest int, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromDecision(src), ExecuteTrigger, primitives.ToDecision(dest), action, guard)
}

func (m *Machine) AddChoiceToFinal(src int, action *Action, guard *Guard) error {
	return m.AddTransition(primitives.FromDecision(src), ExecuteTrigger, primitives.ToFinal(), action, guard)
}

// AddTransition stores a transition in the next free slot of its source.
// The trigger is ignored for transitions out of the initial pseudo-state and
// out of choices. A nil guard is always true.
func (m *Machine) AddTransition(src primitives.Source, trigger TriggerID, dest primitives.Dest, action *Action, guard *Guard) error {
	if !dest.Valid() {
		if dest.Kind() == primitives.DestDecision {
			return m.fail("add transition to", dest.ID(), primitives.ErrIllegalDecisionDest)
		}
		return m.fail("add transition to", dest.ID(), primitives.ErrIllegalNodeDest)
	}
	slot, code := m.top.FreeSlot(src)
	if code != primitives.Success {
		return m.fail("add transition from", src.ID, code)
	}
	a, aok := m.actions.Add(action)
	g, gok := m.guards.Add(guard)
	m.top.SetEdge(slot, primitives.NewEdge(dest, uint16(trigger), a, g))
	if !aok {
		return m.fail("add transition from", src.ID, primitives.ErrTooManyActions)
	}
	if !gok {
		return m.fail("add transition from", src.ID, primitives.ErrTooManyGuards)
	}
	return nil
}
