package builder

import (
	"fmt"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
)

type flow struct {
	target string
	guard  *pr.Guard
}

type node struct {
	name   string
	action *pr.Action
	out    *flow
}

type decision struct {
	name string
	out  []flow
}

// ProcedureBuilder constructs a procedure from node and decision names.
type ProcedureBuilder struct {
	opts       []pr.Option
	nodes      []*node
	decisions  []*decision
	nodeID     map[string]int
	decisionID map[string]int
	initial    *flow
	err        error
}

func NewProcedure(opts ...pr.Option) *ProcedureBuilder {
	return &ProcedureBuilder{
		opts:       opts,
		nodeID:     make(map[string]int),
		decisionID: make(map[string]int),
	}
}

// Node declares an action node, or replaces the action of an existing one.
func (b *ProcedureBuilder) Node(name string, action *pr.Action) *ProcedureBuilder {
	if id, ok := b.nodeID[name]; ok {
		b.nodes[id-1].action = action
		return b
	}
	b.nodes = append(b.nodes, &node{name: name, action: action})
	b.nodeID[name] = len(b.nodes)
	return b
}

// Decision declares a decision node.
func (b *ProcedureBuilder) Decision(name string) *ProcedureBuilder {
	if _, ok := b.decisionID[name]; ok {
		return b
	}
	b.decisions = append(b.decisions, &decision{name: name})
	b.decisionID[name] = len(b.decisions)
	return b
}

// Start sets the flow out of the initial node.
func (b *ProcedureBuilder) Start(target string, guard *pr.Guard) *ProcedureBuilder {
	b.initial = &flow{target: target, guard: guard}
	return b
}

// Flow adds a control flow from a declared node or decision. A node has
// exactly one outgoing flow; flows out of a decision are tried in the order
// they are added.
func (b *ProcedureBuilder) Flow(from, to string, guard *pr.Guard) *ProcedureBuilder {
	f := flow{target: to, guard: guard}
	if id, ok := b.nodeID[from]; ok {
		b.nodes[id-1].out = &f
		return b
	}
	if id, ok := b.decisionID[from]; ok {
		b.decisions[id-1].out = append(b.decisions[id-1].out, f)
		return b
	}
	if b.err == nil {
		b.err = fmt.Errorf("flow from undeclared %q", from)
	}
	return b
}

func (b *ProcedureBuilder) NodeID(name string) int { return b.nodeID[name] }

func (b *ProcedureBuilder) DecisionID(name string) int { return b.decisionID[name] }

// Capacity counts what Build will declare.
func (b *ProcedureBuilder) Capacity() pr.Capacity {
	c := pr.Capacity{Nodes: len(b.nodes), Decisions: len(b.decisions), Flows: 1 + len(b.nodes)}
	actions := map[*pr.Action]struct{}{}
	guards := map[*pr.Guard]struct{}{}
	addG := func(f *flow) {
		if f != nil && f.guard != nil {
			guards[f.guard] = struct{}{}
		}
	}
	addG(b.initial)
	for _, n := range b.nodes {
		if n.action != nil {
			actions[n.action] = struct{}{}
		}
		addG(n.out)
	}
	for _, d := range b.decisions {
		c.Flows += len(d.out)
		for i := range d.out {
			addG(&d.out[i])
		}
	}
	c.Actions = len(actions)
	c.Guards = len(guards)
	return c
}

// Build creates, configures and checks the procedure.
func (b *ProcedureBuilder) Build() (*pr.Procedure, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	p, err := pr.New(b.Capacity(), b.opts...)
	if err != nil {
		return nil, err
	}
	for i, n := range b.nodes {
		if err := p.AddNode(i+1, n.action); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.name, err)
		}
	}
	for i, d := range b.decisions {
		if err := p.AddDecision(i+1, len(d.out)); err != nil {
			return nil, fmt.Errorf("decision %q: %w", d.name, err)
		}
	}
	if err := p.AddFlow(primitives.FromInitial(), b.dest(b.initial.target), b.initial.guard); err != nil {
		return nil, fmt.Errorf("initial flow: %w", err)
	}
	for i, n := range b.nodes {
		if err := p.AddFlow(primitives.FromNode(i+1), b.dest(n.out.target), n.out.guard); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.name, err)
		}
	}
	for i, d := range b.decisions {
		for _, f := range d.out {
			if err := p.AddFlow(primitives.FromDecision(i+1), b.dest(f.target), f.guard); err != nil {
				return nil, fmt.Errorf("decision %q: %w", d.name, err)
			}
		}
	}
	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return p, nil
}

func (b *ProcedureBuilder) dest(target string) primitives.Dest {
	if target == Final {
		return primitives.ToFinal()
	}
	if id, ok := b.nodeID[target]; ok {
		return primitives.ToNode(id)
	}
	return primitives.ToDecision(b.decisionID[target])
}

func (b *ProcedureBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.initial == nil {
		return fmt.Errorf("procedure has no initial flow")
	}
	known := func(target string) bool {
		_, n := b.nodeID[target]
		_, d := b.decisionID[target]
		return target == Final || n || d
	}
	if !known(b.initial.target) {
		return fmt.Errorf("initial flow to unknown target %q", b.initial.target)
	}
	for _, n := range b.nodes {
		if _, dup := b.decisionID[n.name]; dup {
			return fmt.Errorf("name %q used for a node and a decision", n.name)
		}
		if n.out == nil {
			return fmt.Errorf("node %q has no outgoing flow", n.name)
		}
		if !known(n.out.target) {
			return fmt.Errorf("node %q has flow to unknown target %q", n.name, n.out.target)
		}
	}
	for _, d := range b.decisions {
		for _, f := range d.out {
			if !known(f.target) {
				return fmt.Errorf("decision %q has flow to unknown target %q", d.name, f.target)
			}
		}
	}
	return nil
}
