package pr

import "github.com/comalice/fwgraph/internal/primitives"

// AddNode registers action node id. Every action node has exactly one
// outgoing control flow and a non-nil action.
func (p *Procedure) AddNode(id int, action *Action) error {
	if action == nil {
		return p.fail("add node", id, primitives.ErrNullAction)
	}
	if code := p.top.ReserveNode(id, 1, p.cursor); code != primitives.Success {
		return p.fail("add node", id, code)
	}
	p.cursor++
	slot, ok := p.actions.Add(action)
	p.top.SetBehaviors(id, [3]int{primitives.BehaviorAction: slot})
	if !ok {
		return p.fail("add node", id, primitives.ErrTooManyActions)
	}
	return nil
}

// AddDecision registers decision node id with nOut >= 2 outgoing flows.
func (p *Procedure) AddDecision(id, nOut int) error {
	if code := p.top.ReserveDecision(id, nOut, 2, p.cursor); code != primitives.Success {
		return p.fail("add decision", id, code)
	}
	p.cursor += nOut
	return nil
}

func (p *Procedure) AddFlowInitToNode(dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromInitial(), primitives.ToNode(dest), guard)
}

func (p *Procedure) AddFlowInitToDecision(dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromInitial(), primitives.ToDecision(dest), guard)
}

func (p *Procedure) AddFlowNodeToNode(src, dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromNode(src), primitives.ToNode(dest), guard)
}

func (p *Procedure) AddFlowNodeToDecision(src, dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromNode(src), primitives.ToDecision(dest), guard)
}

func (p *Procedure) AddFlowNodeToFinal(src int, guard *Guard) error {
	return p.AddFlow(primitives.FromNode(src), primitives.ToFinal(), guard)
}

func (p *Procedure) AddFlowDecisionToNode(src, dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromDecision(src), primitives.ToNode(dest), guard)
}

func (p *Procedure) AddFlowDecisionToDecision(src, dest int, guard *Guard) error {
	return p.AddFlow(primitives.FromDecision(src), primitives.ToDecision(dest), guard)
}

func (p *Procedure) AddFlowDecisionToFinal(src int, guard *Guard) error {
	return p.AddFlow(primitives.FromDecision(src), primitives.ToFinal(), guard)
}

// AddFlow stores a control flow in the next free slot of its source. A nil
// guard is always true.
func (p *Procedure) AddFlow(src primitives.Source, dest primitives.Dest, guard *Guard) error {
	if !dest.Valid() {
		if dest.Kind() == primitives.DestDecision {
			return p.fail("add flow to", dest.ID(), primitives.ErrIllegalDecisionDest)
		}
		return p.fail("add flow to", dest.ID(), primitives.ErrIllegalNodeDest)
	}
	slot, code := p.top.FreeSlot(src)
	if code != primitives.Success {
		return p.fail("add flow from", src.ID, code)
	}
	g, ok := p.guards.Add(guard)
	p.top.SetEdge(slot, primitives.NewEdge(dest, 0, 0, g))
	if !ok {
		return p.fail("add flow from", src.ID, primitives.ErrTooManyGuards)
	}
	return nil
}
