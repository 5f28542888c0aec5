package production

import (
	"strings"
	"testing"
)

func TestExportDOT(t *testing.T) {
	m := nested(t)
	must(t, m.Start())
	must(t, m.MakeTransition(1))

	dot := ExportDOT(m)
	for _, want := range []string{
		"digraph Machine {",
		`"m_init" -> "m_s1" [label=""];`,
		`"m_s1" -> "m_c1" [label="T1"];`,
		`"m_s2" -> "m_final" [label="T2"];`,
		`"m_c1" -> "m_s2" [label="[ready]"];`,
		`"m_c1" [shape=diamond, label="C1"];`,
		`subgraph cluster_m_s2 {`,
		`"m_s2_init" -> "m_s2_s1" [label=""];`,
		`fillcolor=lightgreen`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"m_s2" [label="S2\nentry / arrive", style=filled, fillcolor=lightgreen];`) {
		t.Errorf("current state not highlighted:\n%s", dot)
	}
	if strings.Contains(dot, `"m_s1" [label="S1\nexit / leave", style=filled`) {
		t.Error("S1 is not current")
	}
}

func TestExportDOTStopped(t *testing.T) {
	dot := ExportDOT(nested(t))
	if strings.Contains(dot, "fillcolor") {
		t.Errorf("stopped machine should have no highlight:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("missing closing brace")
	}
}

func TestExportProcedureDOT(t *testing.T) {
	dot := ExportProcedureDOT(loop(t))
	for _, want := range []string{
		"digraph Procedure {",
		`"p_n1" [label="N1\nwork"];`,
		`"p_d1" [shape=diamond, label="D1"];`,
		`"p_init" -> "p_n1" [label=""];`,
		`"p_n1" -> "p_d1" [label=""];`,
		`"p_d1" -> "p_final" [label="[done]"];`,
		`"p_d1" -> "p_n1" [label=""];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}
