package pr_test

import (
	"errors"
	"testing"

	"github.com/comalice/fwgraph"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/testutil"
)

func TestDeriveSharesTopology(t *testing.T) {
	var rec testutil.Recorder
	base := decisions(t, &rec)
	d := pr.Derive(base)
	if d.Topology() != base.Topology() || !d.IsDerived() || base.IsDerived() {
		t.Fatal("derived procedure must share the base topology")
	}
	c := base.Capacity()
	for i := 0; i <= c.Actions; i++ {
		if d.ActionAt(i) != base.ActionAt(i) {
			t.Errorf("action slot %d differs", i)
		}
	}
	for i := 0; i <= c.Guards; i++ {
		if d.GuardAt(i) != base.GuardAt(i) {
			t.Errorf("guard slot %d differs", i)
		}
	}
	if d.Name() != "decisions" || d.Data() != nil || d.IsStarted() {
		t.Error("derived procedure must be stopped and without data")
	}
}

func TestOverrideActionAndGuard(t *testing.T) {
	var rec testutil.Recorder
	base := decisions(t, &rec)
	d := pr.Derive(base)

	a1 := base.ActionAt(1)
	must(t, d.OverrideAction(a1, rec.PR("B1")))
	// G3 is the second guard registered; overriding it lets N2 pass at once
	g3 := base.GuardAt(2)
	must(t, d.OverrideGuard(g3, pr.NewGuard("yes", nil)))
	must(t, d.Start())
	must(t, testutil.Drive(d, 4))
	if d.IsStarted() {
		t.Fatal("derived procedure did not terminate")
	}
	if rec.String() != "B1,A2,B1" {
		t.Errorf("calls = %q", rec.String())
	}

	rec.Reset()
	must(t, base.Run())
	if rec.String() != "A1,A2" {
		t.Errorf("base calls = %q", rec.String())
	}
}

func TestOverrideErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func(base, d *pr.Procedure) error
		want fwgraph.ErrCode
	}{
		{"on base", func(base, d *pr.Procedure) error {
			return base.OverrideAction(base.ActionAt(1), pr.NewAction("x", nil))
		}, fwgraph.ErrNotDerived},
		{"guard on base", func(base, d *pr.Procedure) error {
			return base.OverrideGuard(base.GuardAt(1), pr.NewGuard("x", nil))
		}, fwgraph.ErrNotDerived},
		{"unknown action", func(base, d *pr.Procedure) error {
			return d.OverrideAction(pr.NewAction("x", nil), base.ActionAt(1))
		}, fwgraph.ErrUndefinedAction},
		{"unknown guard", func(base, d *pr.Procedure) error {
			return d.OverrideGuard(pr.NewGuard("x", nil), base.GuardAt(1))
		}, fwgraph.ErrUndefinedGuard},
		{"nil action", func(base, d *pr.Procedure) error {
			return d.OverrideAction(base.ActionAt(1), nil)
		}, fwgraph.ErrNullAction},
		{"nil guard", func(base, d *pr.Procedure) error {
			return d.OverrideGuard(base.GuardAt(1), nil)
		}, fwgraph.ErrNullGuard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec testutil.Recorder
			base := decisions(t, &rec)
			d := pr.Derive(base)
			if err := tt.run(base, d); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInitDerived(t *testing.T) {
	var rec testutil.Recorder
	base := decisions(t, &rec)
	c := base.Capacity()

	small, err := pr.New(pr.Capacity{Nodes: 1, Flows: 2, Actions: 1})
	must(t, err)
	if err := pr.InitDerived(small, base); !errors.Is(err, fwgraph.ErrWrongActionCount) {
		t.Errorf("got %v, want ErrWrongActionCount", err)
	}
	noGuards, err := pr.New(pr.Capacity{Nodes: 2, Flows: 2, Actions: c.Actions})
	must(t, err)
	if err := pr.InitDerived(noGuards, base); !errors.Is(err, fwgraph.ErrWrongGuardCount) {
		t.Errorf("got %v, want ErrWrongGuardCount", err)
	}

	dst, err := pr.New(c)
	must(t, err)
	must(t, pr.InitDerived(dst, base))
	if dst.Topology() != base.Topology() || !dst.IsDerived() {
		t.Fatal("InitDerived did not share the topology")
	}
	must(t, dst.Check())
	must(t, dst.Start())
	must(t, testutil.Drive(dst, 4))
	if dst.IsStarted() {
		t.Error("derived procedure did not terminate")
	}
}
