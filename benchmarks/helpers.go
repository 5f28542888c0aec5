// Package benchmarks provides model generators and benchmarks for the
// execution hot path.
package benchmarks

import (
	"fmt"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// Tick is the trigger that moves a ring machine to its next state.
const Tick sm.TriggerID = 1

var (
	noop  = sm.NewAction("noop", nil)
	holds = sm.NewGuard("holds", nil)
)

// GenRing creates n states in a ring: Tick moves state i to state i+1 and
// the last state back to the first. Every state has entry, do and exit
// actions.
func GenRing(n int, opts ...sm.Option) (*sm.Machine, error) {
	if n < 1 {
		n = 1
	}
	m, err := sm.New(sm.Capacity{States: n, Transitions: n + 1, Actions: 1}, opts...)
	if err != nil {
		return nil, err
	}
	for id := 1; id <= n; id++ {
		if err := m.AddState(id, 1, noop, noop, noop, nil); err != nil {
			return nil, err
		}
	}
	if err := m.AddInitToState(1, nil); err != nil {
		return nil, err
	}
	for id := 1; id <= n; id++ {
		if err := m.AddStateToState(id, Tick, id%n+1, nil, nil); err != nil {
			return nil, err
		}
	}
	return m, m.Check()
}

// GenChoiceChain creates two states joined through depth choices in
// sequence. Each choice has a failing guard before the one that holds, so
// every hop evaluates two guards.
func GenChoiceChain(depth int) (*sm.Machine, error) {
	if depth < 1 {
		depth = 1
	}
	never := sm.NewGuard("never", func(*sm.Machine) bool { return false })
	m, err := sm.New(sm.Capacity{States: 2, Choices: depth, Transitions: 3 + 2*depth, Actions: 1, Guards: 2})
	if err != nil {
		return nil, err
	}
	steps := []error{
		m.AddState(1, 1, noop, nil, nil, nil),
		m.AddState(2, 1, noop, nil, nil, nil),
		m.AddInitToState(1, nil),
		m.AddStateToChoice(1, Tick, 1, nil, nil),
		m.AddStateToState(2, Tick, 1, nil, nil),
	}
	for c := 1; c <= depth; c++ {
		steps = append(steps, m.AddChoice(c, 2), m.AddChoiceToState(c, 1, nil, never))
		if c < depth {
			steps = append(steps, m.AddChoiceToChoice(c, c+1, nil, holds))
		} else {
			steps = append(steps, m.AddChoiceToState(c, 2, nil, holds))
		}
	}
	for _, err := range steps {
		if err != nil {
			return nil, fmt.Errorf("choice chain: %w", err)
		}
	}
	return m, m.Check()
}

// GenNested creates depth machines, each embedded in the single state of the
// one above it. Execute on the outermost machine reaches all of them.
func GenNested(depth int) (*sm.Machine, error) {
	var inner *sm.Machine
	for i, n := 0, max(depth, 1); i < n; i++ {
		m, err := sm.New(sm.Capacity{States: 1, Transitions: 1, Actions: 1})
		if err != nil {
			return nil, err
		}
		if err := m.AddState(1, 0, noop, noop, noop, inner); err != nil {
			return nil, err
		}
		if err := m.AddInitToState(1, nil); err != nil {
			return nil, err
		}
		if err := m.Check(); err != nil {
			return nil, err
		}
		inner = m
	}
	return inner, nil
}

// GenProcedureLoop creates n action nodes in sequence followed by a decision
// that returns to the first node, so the procedure never terminates. Each
// flow between nodes waits one execution cycle.
func GenProcedureLoop(n int, opts ...pr.Option) (*pr.Procedure, error) {
	if n < 1 {
		n = 1
	}
	work := pr.NewAction("work", nil)
	next := pr.NewGuard("next", func(p *pr.Procedure) bool { return p.NodeExecCount() >= 1 })
	p, err := pr.New(pr.Capacity{Nodes: n, Decisions: 1, Flows: n + 3, Actions: 1, Guards: 1}, opts...)
	if err != nil {
		return nil, err
	}
	for id := 1; id <= n; id++ {
		if err := p.AddNode(id, work); err != nil {
			return nil, err
		}
	}
	if err := p.AddDecision(1, 2); err != nil {
		return nil, err
	}
	if err := p.AddFlowInitToNode(1, nil); err != nil {
		return nil, err
	}
	for id := 1; id < n; id++ {
		if err := p.AddFlowNodeToNode(id, id+1, next); err != nil {
			return nil, err
		}
	}
	if err := p.AddFlowNodeToDecision(n, 1, next); err != nil {
		return nil, err
	}
	if err := p.AddFlow(primitives.FromDecision(1), primitives.ToNode(1), nil); err != nil {
		return nil, err
	}
	if err := p.AddFlowDecisionToFinal(1, nil); err != nil {
		return nil, err
	}
	return p, p.Check()
}
