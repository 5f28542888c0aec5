package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/examples"
	"github.com/comalice/fwgraph/internal/extensibility"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/realtime"
	"github.com/comalice/fwgraph/sm"
)

// instance is a built state machine or procedure with the name it runs under.
type instance struct {
	name string
	inst realtime.Instance
}

type model struct {
	name  string
	build func(l *log.Logger) ([]instance, error)
}

var models = []model{
	{"switch", func(l *log.Logger) ([]instance, error) {
		m, err := examples.Switch(l)
		return machines(err, m)
	}},
	{"embedded", func(l *log.Logger) ([]instance, error) {
		m, err := examples.Embedded(l)
		return machines(err, m)
	}},
	{"derived", func(l *log.Logger) ([]instance, error) {
		base, derived, err := examples.Derived(l, l)
		return machines(err, base, derived)
	}},
	{"two-branch", func(l *log.Logger) ([]instance, error) {
		p, err := examples.TwoBranch(l)
		if err != nil {
			return nil, err
		}
		return []instance{{p.Name(), p}}, nil
	}},
}

func machines(err error, ms ...*sm.Machine) ([]instance, error) {
	if err != nil {
		return nil, err
	}
	out := make([]instance, len(ms))
	for i, m := range ms {
		out[i] = instance{m.Name(), m}
	}
	return out, nil
}

func modelList() string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.name
	}
	return strings.Join(names, ", ")
}

// selectModels returns the named models, or all of them when names is empty.
func selectModels(names []string) ([]model, error) {
	if len(names) == 0 {
		return models, nil
	}
	var out []model
	for _, name := range names {
		i := slices.IndexFunc(models, func(m model) bool { return m.name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown model %q (have %s)", name, modelList())
		}
		out = append(out, models[i])
	}
	return out, nil
}

// buildAll builds every selected model. With trace set, each instance is
// replaced by a derived copy whose actions and guards log at Debug.
func buildAll(selected []model, l *log.Logger, trace bool) ([]instance, error) {
	var out []instance
	for _, m := range selected {
		insts, err := m.build(l)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", m.name, err)
		}
		for _, in := range insts {
			if trace {
				traced, err := traceCopy(in.inst, l)
				if err != nil {
					return nil, fmt.Errorf("trace %s: %w", in.name, err)
				}
				in.inst = traced
			}
			out = append(out, in)
		}
	}
	return out, nil
}

func traceCopy(inst realtime.Instance, l *log.Logger) (realtime.Instance, error) {
	switch v := inst.(type) {
	case *sm.Machine:
		d := v
		if !v.IsDerived() {
			d = sm.DeriveRecursive(v)
		}
		return d, extensibility.TraceMachine(l, d)
	case *pr.Procedure:
		d := v
		if !v.IsDerived() {
			d = pr.Derive(v)
		}
		return d, extensibility.TraceProcedure(l, d)
	default:
		return nil, fmt.Errorf("cannot trace %T", inst)
	}
}
