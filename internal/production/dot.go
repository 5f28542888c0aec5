package production

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// ExportDOT generates Graphviz DOT source for m. The current state is
// filled, choices are diamonds and each embedded machine is drawn as a
// cluster inside the state that holds it.
func ExportDOT(m *sm.Machine) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Machine {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	renderMachine(&buf, m, "m", "  ")
	buf.WriteString("}\n")
	return buf.String()
}

func renderMachine(buf *bytes.Buffer, m *sm.Machine, prefix, indent string) {
	r := DescribeMachine(m)
	fmt.Fprintf(buf, "%s\"%s_init\" [shape=point];\n", indent, prefix)
	fmt.Fprintf(buf, "%s\"%s_final\" [shape=doublecircle, label=\"\"];\n", indent, prefix)
	for _, s := range r.States {
		id := fmt.Sprintf("%s_s%d", prefix, s.ID)
		style := ""
		if m.IsStarted() && m.Current() == s.ID {
			style = ", style=filled, fillcolor=lightgreen"
		}
		fmt.Fprintf(buf, "%s\"%s\" [label=\"%s\"%s];\n", indent, id, stateLabel(s), style)
		if s.Embedded != nil {
			fmt.Fprintf(buf, "%ssubgraph cluster_%s {\n", indent, id)
			fmt.Fprintf(buf, "%s  label=\"in state %d\";\n", indent, s.ID)
			renderMachine(buf, m.Embedded(s.ID), id, indent+"  ")
			fmt.Fprintf(buf, "%s}\n", indent)
		}
	}
	for _, c := range r.Choices {
		fmt.Fprintf(buf, "%s\"%s_c%d\" [shape=diamond, label=\"C%d\"];\n", indent, prefix, c, c)
	}
	for _, t := range r.Transitions {
		e := m.Topology().Edge(t.Slot)
		from := prefix + "_init"
		if t.Slot > 0 {
			from = sourceID(m.Topology(), prefix, "s", "c", t.Slot)
		}
		fmt.Fprintf(buf, "%s\"%s\" -> \"%s\" [label=\"%s\"];\n", indent, from, destID(prefix, "s", "c", e.Dest()), transitionLabel(t))
	}
}

// ExportProcedureDOT generates Graphviz DOT source for p. Decisions are
// diamonds and the current node is filled.
func ExportProcedureDOT(p *pr.Procedure) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Procedure {
  rankdir=TB;
  node [shape=box, fontsize=10];
  edge [fontsize=9];
  "p_init" [shape=point];
  "p_final" [shape=doublecircle, label=""];
`)
	r := DescribeProcedure(p)
	for _, n := range r.Nodes {
		style := ""
		if p.Current() == n.ID {
			style = ", style=filled, fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  \"p_n%d\" [label=\"N%d\\n%s\"%s];\n", n.ID, n.ID, n.Action, style)
	}
	for _, d := range r.Decisions {
		fmt.Fprintf(&buf, "  \"p_d%d\" [shape=diamond, label=\"D%d\"];\n", d, d)
	}
	for _, f := range r.Flows {
		e := p.Topology().Edge(f.Slot)
		from := "p_init"
		if f.Slot > 0 {
			from = sourceID(p.Topology(), "p", "n", "d", f.Slot)
		}
		label := ""
		if f.Guard != "" {
			label = "[" + f.Guard + "]"
		}
		fmt.Fprintf(&buf, "  \"%s\" -> \"%s\" [label=\"%s\"];\n", from, destID("p", "n", "d", e.Dest()), label)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func stateLabel(s StateReport) string {
	label := fmt.Sprintf("S%d", s.ID)
	for _, b := range []struct{ kind, name string }{{"entry", s.Entry}, {"do", s.Do}, {"exit", s.Exit}} {
		if b.name != "" {
			label += fmt.Sprintf("\\n%s / %s", b.kind, b.name)
		}
	}
	return label
}

func transitionLabel(t TransitionReport) string {
	label := ""
	if t.Trigger != 0 {
		label = fmt.Sprintf("T%d", t.Trigger)
	}
	if t.Guard != "" {
		label += " [" + t.Guard + "]"
	}
	if t.Action != "" {
		label += " / " + t.Action
	}
	return strings.TrimSpace(label)
}

// sourceID finds the node or decision whose edge range holds slot.
func sourceID(top *primitives.Topology, prefix, node, decision string, slot int) string {
	for id := 1; id <= top.NodeCount(); id++ {
		if n := top.Node(id); n.Registered() && slot >= n.EdgeStart && slot < n.EdgeStart+n.EdgeCount {
			return fmt.Sprintf("%s_%s%d", prefix, node, id)
		}
	}
	for id := 1; id <= top.DecisionCount(); id++ {
		if d := top.Decision(id); d.Registered() && slot >= d.EdgeStart && slot < d.EdgeStart+d.EdgeCount {
			return fmt.Sprintf("%s_%s%d", prefix, decision, id)
		}
	}
	return prefix + "_init"
}

func destID(prefix, node, decision string, d primitives.Dest) string {
	switch d.Kind() {
	case primitives.DestNode:
		return fmt.Sprintf("%s_%s%d", prefix, node, d.ID())
	case primitives.DestDecision:
		return fmt.Sprintf("%s_%s%d", prefix, decision, d.ID())
	default:
		return prefix + "_final"
	}
}
