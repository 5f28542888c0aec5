package pr_test

import (
	"errors"
	"testing"

	"github.com/comalice/fwgraph"
	"github.com/comalice/fwgraph/pr"
)

func TestNewRejectsCapacity(t *testing.T) {
	tests := []struct {
		name string
		c    pr.Capacity
	}{
		{"one flow", pr.Capacity{Nodes: 1, Flows: 1, Actions: 1}},
		{"no nodes", pr.Capacity{Flows: 2, Actions: 1}},
		{"negative decisions", pr.Capacity{Nodes: 1, Decisions: -1, Flows: 2, Actions: 1}},
		{"no actions", pr.Capacity{Nodes: 1, Flows: 2}},
		{"more actions than nodes", pr.Capacity{Nodes: 1, Flows: 2, Actions: 2}},
		{"negative guards", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1, Guards: -1}},
		{"more guards than flows", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1, Guards: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := pr.New(tt.c); !errors.Is(err, fwgraph.ErrInvalidCapacity) {
				t.Errorf("New(%+v) = %v, want ErrInvalidCapacity", tt.c, err)
			}
		})
	}
}

func TestRegistrationErrors(t *testing.T) {
	a := pr.NewAction("a", nil)
	tests := []struct {
		name string
		run  func(p *pr.Procedure) error
		want fwgraph.ErrCode
	}{
		{"nil action", func(p *pr.Procedure) error {
			return p.AddNode(1, nil)
		}, fwgraph.ErrNullAction},
		{"node id zero", func(p *pr.Procedure) error {
			return p.AddNode(0, a)
		}, fwgraph.ErrIllegalNodeID},
		{"node id too large", func(p *pr.Procedure) error {
			return p.AddNode(3, a)
		}, fwgraph.ErrIllegalNodeID},
		{"node id in use", func(p *pr.Procedure) error {
			p.AddNode(1, a)
			return p.AddNode(1, a)
		}, fwgraph.ErrNodeIDInUse},
		{"decision id too large", func(p *pr.Procedure) error {
			return p.AddDecision(2, 2)
		}, fwgraph.ErrIllegalDecisionID},
		{"decision id in use", func(p *pr.Procedure) error {
			p.AddDecision(1, 2)
			return p.AddDecision(1, 2)
		}, fwgraph.ErrDecisionIDInUse},
		{"decision with one flow", func(p *pr.Procedure) error {
			return p.AddDecision(1, 1)
		}, fwgraph.ErrIllegalOutCount},
		{"decision overflows flows", func(p *pr.Procedure) error {
			return p.AddDecision(1, 5)
		}, fwgraph.ErrTooManyOutEdges},
		{"node overflows flows", func(p *pr.Procedure) error {
			p.AddDecision(1, 3)
			return p.AddNode(1, a)
		}, fwgraph.ErrTooManyOutEdges},
		{"source out of range", func(p *pr.Procedure) error {
			return p.AddFlowNodeToFinal(9, nil)
		}, fwgraph.ErrIllegalSource},
		{"decision source out of range", func(p *pr.Procedure) error {
			return p.AddFlowDecisionToFinal(0, nil)
		}, fwgraph.ErrIllegalSource},
		{"source not registered", func(p *pr.Procedure) error {
			return p.AddFlowNodeToNode(1, 2, nil)
		}, fwgraph.ErrUndefinedSource},
		{"second flow out of a node", func(p *pr.Procedure) error {
			p.AddNode(1, a)
			p.AddFlowNodeToFinal(1, nil)
			return p.AddFlowNodeToNode(1, 2, nil)
		}, fwgraph.ErrTooManyEdges},
		{"third flow out of a decision", func(p *pr.Procedure) error {
			p.AddDecision(1, 2)
			p.AddFlowDecisionToFinal(1, nil)
			p.AddFlowDecisionToFinal(1, nil)
			return p.AddFlowDecisionToFinal(1, nil)
		}, fwgraph.ErrTooManyEdges},
		{"node destination zero", func(p *pr.Procedure) error {
			return p.AddFlowInitToNode(0, nil)
		}, fwgraph.ErrIllegalNodeDest},
		{"decision destination zero", func(p *pr.Procedure) error {
			return p.AddFlowInitToDecision(0, nil)
		}, fwgraph.ErrIllegalDecisionDest},
		{"too many actions", func(p *pr.Procedure) error {
			p.AddNode(1, a)
			return p.AddNode(2, pr.NewAction("b", nil))
		}, fwgraph.ErrTooManyActions},
		{"too many guards", func(p *pr.Procedure) error {
			p.AddDecision(1, 2)
			p.AddFlowDecisionToFinal(1, pr.NewGuard("g", nil))
			return p.AddFlowDecisionToFinal(1, pr.NewGuard("h", nil))
		}, fwgraph.ErrTooManyGuards},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pr.New(pr.Capacity{Nodes: 2, Decisions: 1, Flows: 4, Actions: 1, Guards: 1})
			must(t, err)
			err = tt.run(p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if p.ErrCode() != tt.want {
				t.Errorf("latched %v, want %v", p.ErrCode(), tt.want)
			}
			if !errors.Is(p.Check(), fwgraph.ErrConfig) {
				t.Errorf("Check() = %v, want ErrConfig", p.Check())
			}
		})
	}
}

func TestCheckOrder(t *testing.T) {
	a, b := pr.NewAction("a", nil), pr.NewAction("b", nil)
	g := pr.NewGuard("g", nil)
	tests := []struct {
		name  string
		c     pr.Capacity
		build func(p *pr.Procedure)
		want  fwgraph.ErrCode
	}{
		{"valid", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToFinal(1, nil)
		}, fwgraph.Success},
		{"latched error", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, nil)
		}, fwgraph.ErrConfig},
		{"missing node", pr.Capacity{Nodes: 2, Flows: 3, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
		}, fwgraph.ErrNullNode},
		{"missing decision", pr.Capacity{Nodes: 1, Decisions: 1, Flows: 4, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
		}, fwgraph.ErrNullDecision},
		{"missing flow", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddFlowInitToNode(1, nil)
		}, fwgraph.ErrNullEdge},
		{"node destination out of range", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToNode(1, 2, nil)
		}, fwgraph.ErrIllegalNodeDest},
		{"decision destination out of range", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToDecision(1, 1, nil)
		}, fwgraph.ErrIllegalDecisionDest},
		{"too few actions", pr.Capacity{Nodes: 2, Flows: 3, Actions: 2}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddNode(2, a)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToNode(1, 2, nil)
			p.AddFlowNodeToFinal(2, nil)
		}, fwgraph.ErrTooFewActions},
		{"too few guards", pr.Capacity{Nodes: 1, Flows: 2, Actions: 1, Guards: 2}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddFlowInitToNode(1, g)
			p.AddFlowNodeToFinal(1, nil)
		}, fwgraph.ErrTooFewGuards},
		{"unreachable node", pr.Capacity{Nodes: 2, Flows: 3, Actions: 2}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddNode(2, b)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToFinal(1, nil)
			p.AddFlowNodeToFinal(2, nil)
		}, fwgraph.ErrUnreachableNode},
		{"unreachable decision", pr.Capacity{Nodes: 1, Decisions: 1, Flows: 4, Actions: 1}, func(p *pr.Procedure) {
			p.AddNode(1, a)
			p.AddDecision(1, 2)
			p.AddFlowInitToNode(1, nil)
			p.AddFlowNodeToFinal(1, nil)
			p.AddFlowDecisionToNode(1, 1, nil)
			p.AddFlowDecisionToFinal(1, nil)
		}, fwgraph.ErrUnreachableDecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pr.New(tt.c)
			must(t, err)
			tt.build(p)
			got := p.Check()
			if tt.want == fwgraph.Success {
				if got != nil {
					t.Fatalf("Check() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistrationAfterStartIsFrozen(t *testing.T) {
	p, err := pr.New(pr.Capacity{Nodes: 2, Flows: 3, Actions: 1})
	must(t, err)
	a := pr.NewAction("a", nil)
	must(t, p.AddNode(1, a))
	must(t, p.Start())
	if err := p.AddNode(2, a); !errors.Is(err, fwgraph.ErrFrozen) {
		t.Errorf("AddNode after Start = %v, want ErrFrozen", err)
	}
}
