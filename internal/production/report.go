// Package production renders diagnostic views of configured instances: a
// YAML report of the whole configuration, recursive over embedded machines,
// and a Graphviz DOT export. Reports are write-only; nothing here builds an
// instance back from them.
package production

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// MachineReport describes a state machine and its current status.
type MachineReport struct {
	Name        string             `yaml:"name,omitempty"`
	Topology    string             `yaml:"topology"`
	Derived     bool               `yaml:"derived"`
	Capacity    sm.Capacity        `yaml:"capacity"`
	Current     string             `yaml:"current"`
	ExecCount   uint64             `yaml:"exec_count"`
	Error       string             `yaml:"error,omitempty"`
	Data        map[string]any     `yaml:"data,omitempty"`
	States      []StateReport      `yaml:"states"`
	Choices     []int              `yaml:"choices,omitempty"`
	Transitions []TransitionReport `yaml:"transitions"`
}

type StateReport struct {
	ID       int            `yaml:"id"`
	Entry    string         `yaml:"entry,omitempty"`
	Do       string         `yaml:"do,omitempty"`
	Exit     string         `yaml:"exit,omitempty"`
	Embedded *MachineReport `yaml:"embedded,omitempty"`
}

type TransitionReport struct {
	Slot    int    `yaml:"slot"`
	From    string `yaml:"from"`
	Trigger uint16 `yaml:"trigger,omitempty"`
	To      string `yaml:"to"`
	Action  string `yaml:"action,omitempty"`
	Guard   string `yaml:"guard,omitempty"`
}

// ProcedureReport describes a procedure and its current status.
type ProcedureReport struct {
	Name      string         `yaml:"name,omitempty"`
	Topology  string         `yaml:"topology"`
	Derived   bool           `yaml:"derived"`
	Capacity  pr.Capacity    `yaml:"capacity"`
	Current   string         `yaml:"current"`
	ExecCount uint64         `yaml:"exec_count"`
	Error     string         `yaml:"error,omitempty"`
	Data      map[string]any `yaml:"data,omitempty"`
	Nodes     []NodeReport   `yaml:"nodes"`
	Decisions []int          `yaml:"decisions,omitempty"`
	Flows     []FlowReport   `yaml:"flows"`
}

type NodeReport struct {
	ID     int    `yaml:"id"`
	Action string `yaml:"action"`
}

type FlowReport struct {
	Slot  int    `yaml:"slot"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Guard string `yaml:"guard,omitempty"`
}

// DescribeMachine builds the report for m and, recursively, for the machines
// embedded in its states. Unregistered states and unfilled transition slots
// are left out, so a partially configured machine can be described too.
func DescribeMachine(m *sm.Machine) MachineReport {
	top := m.Topology()
	r := MachineReport{
		Name:      m.Name(),
		Topology:  top.ID().String(),
		Derived:   m.IsDerived(),
		Capacity:  m.Capacity(),
		Current:   "stopped",
		ExecCount: m.ExecCount(),
		Error:     errorName(m.ErrCode()),
		Data:      blackboard(m.Data()),
	}
	if m.IsStarted() {
		r.Current = place(stateNames, primitives.ToNode(m.Current()))
	}
	for id := 1; id <= top.NodeCount(); id++ {
		n := top.Node(id)
		if !n.Registered() {
			continue
		}
		s := StateReport{
			ID:    id,
			Entry: actionName(m, n.Behaviors[primitives.BehaviorEntry]),
			Do:    actionName(m, n.Behaviors[primitives.BehaviorDo]),
			Exit:  actionName(m, n.Behaviors[primitives.BehaviorExit]),
		}
		if sub := m.Embedded(id); sub != nil {
			rep := DescribeMachine(sub)
			s.Embedded = &rep
		}
		r.States = append(r.States, s)
		r.Transitions = appendTransitions(r.Transitions, m, primitives.ToNode(id), n.EdgeStart, n.EdgeCount)
	}
	for id := 1; id <= top.DecisionCount(); id++ {
		d := top.Decision(id)
		if !d.Registered() {
			continue
		}
		r.Choices = append(r.Choices, id)
		r.Transitions = appendTransitions(r.Transitions, m, primitives.ToDecision(id), d.EdgeStart, d.EdgeCount)
	}
	if top.Edge(0).Filled() {
		r.Transitions = append([]TransitionReport{transition(m, 0, "initial")}, r.Transitions...)
	}
	return r
}

func appendTransitions(dst []TransitionReport, m *sm.Machine, src primitives.Dest, start, count int) []TransitionReport {
	from := place(stateNames, src)
	for slot := start; slot < start+count; slot++ {
		if m.Topology().Edge(slot).Filled() {
			dst = append(dst, transition(m, slot, from))
		}
	}
	return dst
}

func transition(m *sm.Machine, slot int, from string) TransitionReport {
	e := m.Topology().Edge(slot)
	return TransitionReport{
		Slot:    slot,
		From:    from,
		Trigger: e.Trigger,
		To:      place(stateNames, e.Dest()),
		Action:  actionName(m, e.Action),
		Guard:   guardName(m, e.Guard),
	}
}

// DescribeProcedure builds the report for p.
func DescribeProcedure(p *pr.Procedure) ProcedureReport {
	top := p.Topology()
	r := ProcedureReport{
		Name:      p.Name(),
		Topology:  top.ID().String(),
		Derived:   p.IsDerived(),
		Capacity:  p.Capacity(),
		Current:   "stopped",
		ExecCount: p.ExecCount(),
		Error:     errorName(p.ErrCode()),
		Data:      blackboard(p.Data()),
	}
	switch {
	case p.Current() == pr.Pending:
		r.Current = "pending"
	case p.IsStarted():
		r.Current = place(nodeNames, primitives.ToNode(p.Current()))
	}
	flows := func(src primitives.Dest, start, count int) {
		for slot := start; slot < start+count; slot++ {
			if top.Edge(slot).Filled() {
				r.Flows = append(r.Flows, flow(p, slot, place(nodeNames, src)))
			}
		}
	}
	if top.Edge(0).Filled() {
		r.Flows = append(r.Flows, flow(p, 0, "initial"))
	}
	for id := 1; id <= top.NodeCount(); id++ {
		n := top.Node(id)
		if !n.Registered() {
			continue
		}
		r.Nodes = append(r.Nodes, NodeReport{ID: id, Action: p.ActionAt(n.Behaviors[primitives.BehaviorAction]).Name()})
		flows(primitives.ToNode(id), n.EdgeStart, n.EdgeCount)
	}
	for id := 1; id <= top.DecisionCount(); id++ {
		d := top.Decision(id)
		if !d.Registered() {
			continue
		}
		r.Decisions = append(r.Decisions, id)
		flows(primitives.ToDecision(id), d.EdgeStart, d.EdgeCount)
	}
	return r
}

func flow(p *pr.Procedure, slot int, from string) FlowReport {
	e := p.Topology().Edge(slot)
	f := FlowReport{Slot: slot, From: from, To: place(nodeNames, e.Dest())}
	if e.Guard > 0 {
		f.Guard = p.GuardAt(e.Guard).Name()
	}
	return f
}

// MarshalMachine renders DescribeMachine(m) as YAML.
func MarshalMachine(m *sm.Machine) ([]byte, error) {
	out, err := yaml.Marshal(DescribeMachine(m))
	if err != nil {
		return nil, fmt.Errorf("marshal machine report: %w", err)
	}
	return out, nil
}

// MarshalProcedure renders DescribeProcedure(p) as YAML.
func MarshalProcedure(p *pr.Procedure) ([]byte, error) {
	out, err := yaml.Marshal(DescribeProcedure(p))
	if err != nil {
		return nil, fmt.Errorf("marshal procedure report: %w", err)
	}
	return out, nil
}

type vocabulary struct{ node, decision string }

var (
	stateNames = vocabulary{"state", "choice"}
	nodeNames  = vocabulary{"node", "decision"}
)

func place(v vocabulary, d primitives.Dest) string {
	switch d.Kind() {
	case primitives.DestNode:
		return fmt.Sprintf("%s %d", v.node, d.ID())
	case primitives.DestDecision:
		return fmt.Sprintf("%s %d", v.decision, d.ID())
	default:
		return "final"
	}
}

// actionName leaves the no-op slot unnamed.
func actionName(m *sm.Machine, slot int) string {
	if slot <= 0 {
		return ""
	}
	return m.ActionAt(slot).Name()
}

func guardName(m *sm.Machine, slot int) string {
	if slot <= 0 {
		return ""
	}
	return m.GuardAt(slot).Name()
}

func errorName(code primitives.ErrCode) string {
	if code == primitives.Success {
		return ""
	}
	return code.String()
}

// blackboard snapshots user data held as a Context; other payloads are opaque.
func blackboard(data any) map[string]any {
	if ctx, ok := data.(*primitives.Context); ok {
		return ctx.Snapshot()
	}
	return nil
}
