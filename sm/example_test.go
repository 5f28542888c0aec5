package sm_test

import (
	"testing"

	"github.com/comalice/fwgraph/sm"
	"github.com/comalice/fwgraph/testutil"
)

const (
	s1 = 1
	s2 = 2
	c1 = 1

	t1 sm.TriggerID = 1
	t2 sm.TriggerID = 2
)

// twoState is the classic two-state machine with one choice:
//
//	init -A1-> S1 -T1-> C1 -[G1]-> S1
//	                       -[G2]-> S2 -T2/[G2] A2-> final
//
// S1 exits with A2, S2 enters with A4 and does A3. G1 is false, G2 is true.
type twoState struct {
	m      *sm.Machine
	rec    *testutil.Recorder
	a1, a2 *sm.Action
	a3, a4 *sm.Action
	g1, g2 *testutil.Flag
	guard1 *sm.Guard
	guard2 *sm.Guard
}

func newTwoState(t *testing.T, opts ...sm.Option) *twoState {
	t.Helper()
	m, err := sm.New(sm.Capacity{States: 2, Choices: 1, Transitions: 5, Actions: 4, Guards: 2}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	rec := &testutil.Recorder{}
	x := &twoState{
		m: m, rec: rec,
		a1: rec.SM("A1"), a2: rec.SM("A2"), a3: rec.SM("A3"), a4: rec.SM("A4"),
		g1: testutil.NewFlag("G1", false), g2: testutil.NewFlag("G2", true),
	}
	x.guard1, x.guard2 = x.g1.SM(), x.g2.SM()

	must(t, m.AddState(s1, 1, nil, x.a2, nil, nil))
	must(t, m.AddState(s2, 1, x.a4, nil, x.a3, nil))
	must(t, m.AddChoice(c1, 2))
	must(t, m.AddInitToState(s1, x.a1))
	must(t, m.AddStateToChoice(s1, t1, c1, nil, nil))
	must(t, m.AddChoiceToState(c1, s1, nil, x.guard1))
	must(t, m.AddChoiceToState(c1, s2, nil, x.guard2))
	must(t, m.AddStateToFinal(s2, t2, x.a2, x.guard2))
	must(t, m.Check())
	return x
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
