package production

import (
	"testing"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// nested is a two-state machine whose second state embeds a one-state
// machine:
//
//	init -> S1 -T1-> C1 -[ready]-> S2 (entry arrive, embeds inner) -T2-> final
//	                    -else----> S1 (exit leave)
func nested(t *testing.T) *sm.Machine {
	t.Helper()
	inner, err := sm.New(sm.Capacity{States: 1, Transitions: 1}, sm.WithName("inner"))
	if err != nil {
		t.Fatal(err)
	}
	must(t, inner.AddState(1, 0, nil, nil, nil, nil))
	must(t, inner.AddInitToState(1, nil))

	m, err := sm.New(sm.Capacity{States: 2, Choices: 1, Transitions: 5, Actions: 2, Guards: 1}, sm.WithName("switch"))
	if err != nil {
		t.Fatal(err)
	}
	ready := sm.NewGuard("ready", nil)
	must(t, m.AddState(1, 1, nil, sm.NewAction("leave", nil), nil, nil))
	must(t, m.AddState(2, 1, sm.NewAction("arrive", nil), nil, nil, inner))
	must(t, m.AddChoice(1, 2))
	must(t, m.AddInitToState(1, nil))
	must(t, m.AddStateToChoice(1, 1, 1, nil, nil))
	must(t, m.AddStateToFinal(2, 2, nil, nil))
	must(t, m.AddChoiceToState(1, 2, nil, ready))
	must(t, m.AddChoiceToState(1, 1, nil, nil))
	must(t, m.CheckRecursive())
	return m
}

// loop runs node 1 until the done flag is set:
//
//	init -> N1 (work) -> D1 -[done]-> final
//	                       -else---> N1
func loop(t *testing.T) *pr.Procedure {
	t.Helper()
	ctx := primitives.NewContext()
	ctx.Set("runs", 0)
	p, err := pr.New(pr.Capacity{Nodes: 1, Decisions: 1, Flows: 4, Actions: 1, Guards: 1},
		pr.WithName("loop"), pr.WithData(ctx))
	if err != nil {
		t.Fatal(err)
	}
	work := pr.NewAction("work", func(p *pr.Procedure) {
		c := p.Data().(*primitives.Context)
		n, _ := c.Int("runs")
		c.Set("runs", n+1)
	})
	done := pr.NewGuard("done", func(p *pr.Procedure) bool {
		n, _ := p.Data().(*primitives.Context).Int("runs")
		return n >= 2
	})
	must(t, p.AddNode(1, work))
	must(t, p.AddDecision(1, 2))
	must(t, p.AddFlowInitToNode(1, nil))
	must(t, p.AddFlowNodeToDecision(1, 1, nil))
	must(t, p.AddFlowDecisionToFinal(1, done))
	must(t, p.AddFlowDecisionToNode(1, 1, nil))
	must(t, p.Check())
	return p
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
