package extensibility

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

func debugLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestLoggingAction(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	inner := sm.NewAction("count", func(*sm.Machine) { calls++ })
	a := LoggingAction(debugLogger(&buf), inner)
	if a.Name() != "count" {
		t.Errorf("name = %q, want count", a.Name())
	}

	m, err := sm.New(sm.Capacity{Transitions: 1}, sm.WithName("logged"))
	if err != nil {
		t.Fatal(err)
	}
	a.Run(m)
	if calls != 1 {
		t.Errorf("inner ran %d times, want 1", calls)
	}
	out := buf.String()
	for _, want := range []string{"running action", "action done", "action=count", "machine=logged", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLoggingGuard(t *testing.T) {
	var buf bytes.Buffer
	g := LoggingGuard(debugLogger(&buf), sm.NewGuard("never", func(*sm.Machine) bool { return false }))
	m, err := sm.New(sm.Capacity{Transitions: 1})
	if err != nil {
		t.Fatal(err)
	}
	if g.Eval(m) {
		t.Error("wrapped guard should stay false")
	}
	if out := buf.String(); !strings.Contains(out, "result=false") || !strings.Contains(out, "guard=never") {
		t.Errorf("unexpected log:\n%s", out)
	}
}

func TestLoggingQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	p, err := pr.New(pr.Capacity{Nodes: 1, Flows: 2, Actions: 1})
	if err != nil {
		t.Fatal(err)
	}
	LoggingNodeAction(l, pr.NewAction("A", nil)).Run(p)
	LoggingFlowGuard(l, pr.NewGuard("G", nil)).Eval(p)
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got:\n%s", buf.String())
	}
}

func TestTraceMachineNeedsDerived(t *testing.T) {
	m := counter(t)
	err := TraceMachine(log.New(&bytes.Buffer{}), m)
	if !errors.Is(err, primitives.ErrNotDerived) {
		t.Errorf("err = %v, want ErrNotDerived", err)
	}
}

func TestTraceProcedure(t *testing.T) {
	var buf bytes.Buffer
	p, err := pr.New(pr.Capacity{Nodes: 1, Flows: 2, Actions: 1, Guards: 1})
	if err != nil {
		t.Fatal(err)
	}
	ran := 0
	if err := p.AddNode(1, pr.NewAction("work", func(*pr.Procedure) { ran++ })); err != nil {
		t.Fatal(err)
	}
	if err := p.AddFlowInitToNode(1, pr.NewGuard("go", nil)); err != nil {
		t.Fatal(err)
	}
	if err := p.AddFlowNodeToFinal(1, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Check(); err != nil {
		t.Fatal(err)
	}

	d := pr.Derive(p)
	if err := TraceProcedure(debugLogger(&buf), d); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if ran != 1 {
		t.Errorf("work ran %d times, want 1", ran)
	}
	out := buf.String()
	for _, want := range []string{"action=work", "guard=go", "result=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("base procedure should not be traced:\n%s", buf.String())
	}
}
