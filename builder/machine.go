package builder

import (
	"fmt"

	"github.com/comalice/fwgraph/internal/primitives"
	"github.com/comalice/fwgraph/sm"
)

type transition struct {
	trigger sm.TriggerID
	target  string
	guard   *sm.Guard
	action  *sm.Action
}

type state struct {
	name            string
	entry, exit, do *sm.Action
	sub             *sm.Machine
	out             []transition
}

type choice struct {
	name string
	out  []transition
}

// MachineBuilder provides a fluent API for constructing state machines using
// state, choice and event names.
type MachineBuilder struct {
	opts     []sm.Option
	states   []*state
	choices  []*choice
	stateID  map[string]int
	choiceID map[string]int
	events   map[string]sm.TriggerID
	initial  *transition
}

// StateBuilder configures one state.
type StateBuilder struct {
	b     *MachineBuilder
	state *state
}

// ChoiceBuilder configures one choice pseudo-state.
type ChoiceBuilder struct {
	b      *MachineBuilder
	choice *choice
}

// NewMachine creates a builder whose Build passes opts to sm.New.
func NewMachine(opts ...sm.Option) *MachineBuilder {
	return &MachineBuilder{
		opts:     opts,
		stateID:  make(map[string]int),
		choiceID: make(map[string]int),
		events:   make(map[string]sm.TriggerID),
	}
}

// State creates or retrieves a state by name. Ids follow declaration order
// starting at 1.
func (b *MachineBuilder) State(name string) *StateBuilder {
	if id, ok := b.stateID[name]; ok {
		return &StateBuilder{b: b, state: b.states[id-1]}
	}
	s := &state{name: name}
	b.states = append(b.states, s)
	b.stateID[name] = len(b.states)
	return &StateBuilder{b: b, state: s}
}

// Choice creates or retrieves a choice pseudo-state by name.
func (b *MachineBuilder) Choice(name string) *ChoiceBuilder {
	if id, ok := b.choiceID[name]; ok {
		return &ChoiceBuilder{b: b, choice: b.choices[id-1]}
	}
	c := &choice{name: name}
	b.choices = append(b.choices, c)
	b.choiceID[name] = len(b.choices)
	return &ChoiceBuilder{b: b, choice: c}
}

// Initial sets the target of the transition out of the initial pseudo-state.
func (b *MachineBuilder) Initial(target string, action *sm.Action) *MachineBuilder {
	b.initial = &transition{target: target, action: action}
	return b
}

// Trigger returns the id assigned to an event name, creating it when needed.
// Ids start at 1; ExecuteTrigger is never assigned to a name.
func (b *MachineBuilder) Trigger(event string) sm.TriggerID {
	if id, ok := b.events[event]; ok {
		return id
	}
	id := sm.TriggerID(len(b.events) + 1)
	b.events[event] = id
	return id
}

// StateID returns the id of a state, or 0 if the name is unknown.
func (b *MachineBuilder) StateID(name string) int { return b.stateID[name] }

// ChoiceID returns the id of a choice, or 0 if the name is unknown.
func (b *MachineBuilder) ChoiceID(name string) int { return b.choiceID[name] }

// Entry sets the entry action.
func (sb *StateBuilder) Entry(a *sm.Action) *StateBuilder {
	sb.state.entry = a
	return sb
}

// Exit sets the exit action.
func (sb *StateBuilder) Exit(a *sm.Action) *StateBuilder {
	sb.state.exit = a
	return sb
}

// Do sets the action run on every Execute while the state is current.
func (sb *StateBuilder) Do(a *sm.Action) *StateBuilder {
	sb.state.do = a
	return sb
}

// Embed places sub in the state.
func (sb *StateBuilder) Embed(sub *sm.Machine) *StateBuilder {
	sb.state.sub = sub
	return sb
}

// On adds a transition to target, a state, a choice or Final, fired by the
// named event. guard and action may be nil.
func (sb *StateBuilder) On(event, target string, guard *sm.Guard, action *sm.Action) *StateBuilder {
	sb.state.out = append(sb.state.out, transition{
		trigger: sb.b.Trigger(event),
		target:  target,
		guard:   guard,
		action:  action,
	})
	return sb
}

// OnExecute adds a transition fired by Execute.
func (sb *StateBuilder) OnExecute(target string, guard *sm.Guard, action *sm.Action) *StateBuilder {
	sb.state.out = append(sb.state.out, transition{
		trigger: sm.ExecuteTrigger,
		target:  target,
		guard:   guard,
		action:  action,
	})
	return sb
}

// Branch adds an outgoing transition. Branches are tried in the order they
// are added.
func (cb *ChoiceBuilder) Branch(target string, guard *sm.Guard, action *sm.Action) *ChoiceBuilder {
	cb.choice.out = append(cb.choice.out, transition{target: target, guard: guard, action: action})
	return cb
}

// Capacity counts what Build will declare.
func (b *MachineBuilder) Capacity() sm.Capacity {
	c := sm.Capacity{States: len(b.states), Choices: len(b.choices), Transitions: 1}
	actions := map[*sm.Action]struct{}{}
	guards := map[*sm.Guard]struct{}{}
	addT := func(t transition) {
		if t.action != nil {
			actions[t.action] = struct{}{}
		}
		if t.guard != nil {
			guards[t.guard] = struct{}{}
		}
	}
	if b.initial != nil {
		addT(*b.initial)
	}
	for _, s := range b.states {
		c.Transitions += len(s.out)
		for _, a := range []*sm.Action{s.entry, s.exit, s.do} {
			if a != nil {
				actions[a] = struct{}{}
			}
		}
		for _, t := range s.out {
			addT(t)
		}
	}
	for _, ch := range b.choices {
		c.Transitions += len(ch.out)
		for _, t := range ch.out {
			addT(t)
		}
	}
	c.Actions = len(actions)
	c.Guards = len(guards)
	return c
}

// Build creates, configures and checks the machine.
func (b *MachineBuilder) Build() (*sm.Machine, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	m, err := sm.New(b.Capacity(), b.opts...)
	if err != nil {
		return nil, err
	}
	for i, s := range b.states {
		if err := m.AddState(i+1, len(s.out), s.entry, s.exit, s.do, s.sub); err != nil {
			return nil, fmt.Errorf("state %q: %w", s.name, err)
		}
	}
	for i, c := range b.choices {
		if err := m.AddChoice(i+1, len(c.out)); err != nil {
			return nil, fmt.Errorf("choice %q: %w", c.name, err)
		}
	}
	first := b.initial
	if err := m.AddTransition(primitives.FromInitial(), sm.ExecuteTrigger, b.dest(first.target), first.action, nil); err != nil {
		return nil, fmt.Errorf("initial transition: %w", err)
	}
	for i, s := range b.states {
		for _, t := range s.out {
			if err := m.AddTransition(primitives.FromNode(i+1), t.trigger, b.dest(t.target), t.action, t.guard); err != nil {
				return nil, fmt.Errorf("state %q: %w", s.name, err)
			}
		}
	}
	for i, c := range b.choices {
		for _, t := range c.out {
			if err := m.AddTransition(primitives.FromDecision(i+1), sm.ExecuteTrigger, b.dest(t.target), t.action, t.guard); err != nil {
				return nil, fmt.Errorf("choice %q: %w", c.name, err)
			}
		}
	}
	if err := m.Check(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return m, nil
}

func (b *MachineBuilder) dest(target string) primitives.Dest {
	if target == Final {
		return primitives.ToFinal()
	}
	if id, ok := b.stateID[target]; ok {
		return primitives.ToNode(id)
	}
	return primitives.ToDecision(b.choiceID[target])
}

// validate checks names before anything is registered.
func (b *MachineBuilder) validate() error {
	if b.initial == nil {
		return fmt.Errorf("machine has no initial transition")
	}
	for name := range b.stateID {
		if _, dup := b.choiceID[name]; dup {
			return fmt.Errorf("name %q used for a state and a choice", name)
		}
	}
	known := func(target string) bool {
		_, s := b.stateID[target]
		_, c := b.choiceID[target]
		return target == Final || s || c
	}
	if !known(b.initial.target) {
		return fmt.Errorf("initial transition to unknown target %q", b.initial.target)
	}
	for _, s := range b.states {
		for _, t := range s.out {
			if !known(t.target) {
				return fmt.Errorf("state %q has transition to unknown target %q", s.name, t.target)
			}
		}
	}
	for _, c := range b.choices {
		for _, t := range c.out {
			if !known(t.target) {
				return fmt.Errorf("choice %q has transition to unknown target %q", c.name, t.target)
			}
		}
	}
	return nil
}
