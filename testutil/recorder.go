package testutil

import (
	"strings"

	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// Recorder collects the names of the actions it created, in call order.
type Recorder struct {
	Calls []string
}

// SM returns a state machine action that records name.
func (r *Recorder) SM(name string) *sm.Action {
	return sm.NewAction(name, func(*sm.Machine) { r.Calls = append(r.Calls, name) })
}

// PR returns a procedure action that records name.
func (r *Recorder) PR(name string) *pr.Action {
	return pr.NewAction(name, func(*pr.Procedure) { r.Calls = append(r.Calls, name) })
}

func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

func (r *Recorder) String() string { return strings.Join(r.Calls, ",") }

// Flag is a settable boolean exposed as guards.
type Flag struct {
	Name  string
	Value bool
	Evals int
}

func NewFlag(name string, value bool) *Flag {
	return &Flag{Name: name, Value: value}
}

func (f *Flag) SM() *sm.Guard {
	return sm.NewGuard(f.Name, func(*sm.Machine) bool {
		f.Evals++
		return f.Value
	})
}

func (f *Flag) PR() *pr.Guard {
	return pr.NewGuard(f.Name, func(*pr.Procedure) bool {
		f.Evals++
		return f.Value
	})
}
