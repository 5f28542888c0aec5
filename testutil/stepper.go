// Package testutil holds helpers shared by the tests of sm, pr, builder,
// realtime and the examples.
package testutil

import (
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// Stepper is the execution surface shared by state machines and procedures,
// so one test table can drive both.
type Stepper interface {
	Start() error
	Stop()
	Execute() error
	IsStarted() bool
	Current() int
}

var (
	_ Stepper = (*sm.Machine)(nil)
	_ Stepper = (*pr.Procedure)(nil)
)

// Drive executes s n times and returns the first error.
func Drive(s Stepper, n int) error {
	for i := 0; i < n; i++ {
		if err := s.Execute(); err != nil {
			return err
		}
	}
	return nil
}

// Trace executes s n times and records the position after each step.
func Trace(s Stepper, n int) ([]int, error) {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if err := s.Execute(); err != nil {
			return out, err
		}
		out = append(out, s.Current())
	}
	return out, nil
}
