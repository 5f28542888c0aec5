package pr

import (
	"fmt"

	"github.com/comalice/fwgraph/internal/primitives"
)

// Start moves a stopped procedure to Pending and resets both counters.
func (p *Procedure) Start() error {
	if p.err != primitives.Success {
		return fmt.Errorf("start %s: %w", p.name, p.err)
	}
	p.top.Freeze()
	if p.current == 0 {
		p.current = Pending
		p.execCount = 0
		p.nodeExecCount = 0
	}
	return nil
}

// Stop stops the procedure. Procedures have no exit actions.
func (p *Procedure) Stop() {
	p.current = 0
}

// Execute advances the counters and then follows control flows from the
// current position while their guards hold. Entering a node runs its action
// and resets NodeExecCount. Out of a decision the first flow, in
// registration order, whose guard holds is taken; if none holds the
// procedure latches ErrFlow and stays where it is.
func (p *Procedure) Execute() error {
	if p.err != primitives.Success {
		return fmt.Errorf("execute %s: %w", p.name, p.err)
	}
	if p.current == 0 {
		return nil
	}
	p.execCount++
	p.nodeExecCount++

	var e primitives.Edge
	if p.current == Pending {
		e = p.top.Edge(0)
	} else {
		e = p.top.Edge(p.top.Node(p.current).EdgeStart)
	}
	ok := p.guards.At(e.Guard).fn(p)
	hops := 0
	for ok {
		dest := e.Packed()
		if dest == 0 {
			p.current = 0
			return nil
		}
		if dest > 0 {
			p.current = dest
			p.nodeExecCount = 0
			n := p.top.Node(dest)
			p.actions.At(n.Behaviors[primitives.BehaviorAction]).fn(p)
			e = p.top.Edge(n.EdgeStart)
			ok = p.guards.At(e.Guard).fn(p)
			hops = 0
			continue
		}
		// a longer run of decisions must revisit one
		if hops >= p.top.DecisionCount() {
			return p.flowError(-dest)
		}
		hops++
		slot, found := p.choose(p.top.Decision(-dest))
		if !found {
			return p.flowError(-dest)
		}
		e = p.top.Edge(slot)
	}
	return nil
}

// Run starts, executes and stops the procedure in one call.
func (p *Procedure) Run() error {
	if err := p.Start(); err != nil {
		return err
	}
	err := p.Execute()
	p.Stop()
	return err
}

func (p *Procedure) choose(d primitives.Decision) (int, bool) {
	for i := d.EdgeStart; i < d.EdgeStart+d.EdgeCount; i++ {
		if p.guards.At(p.top.Edge(i).Guard).fn(p) {
			return i, true
		}
	}
	return 0, false
}

func (p *Procedure) flowError(decision int) error {
	p.err = primitives.ErrFlow
	if p.logger != nil {
		p.logger.Warn("no guard holds", "procedure", p.name, "decision", decision, "node", p.current)
	}
	return fmt.Errorf("decision %d of %s: %w", decision, p.name, primitives.ErrFlow)
}
