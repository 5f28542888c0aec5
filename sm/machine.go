package sm

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/internal/primitives"
)

// TriggerID selects the transitions a call to MakeTransition may fire.
type TriggerID uint16

// ExecuteTrigger is the reserved trigger sent by Execute. It also runs the
// current state's do action and advances the execution counters.
const ExecuteTrigger TriggerID = 0

// Capacity declares the size of a machine at creation.
type Capacity struct {
	States      int
	Choices     int
	Transitions int
	Actions     int
	Guards      int
}

func (c Capacity) valid() bool {
	return c.States >= 0 && c.Choices >= 0 && c.Transitions >= 1 &&
		c.Actions >= 0 && c.Guards >= 0
}

// Option configures a Machine at creation.
type Option func(*Machine)

// WithAllocator carves the topology from alloc instead of the heap.
func WithAllocator(alloc primitives.Allocator) Option {
	return func(m *Machine) {
		m.alloc = alloc
	}
}

// WithData sets the user payload available to actions and guards.
func WithData(data any) Option {
	return func(m *Machine) {
		m.data = data
	}
}

func WithName(name string) Option {
	return func(m *Machine) {
		m.name = name
	}
}

// WithLogger reports configuration failures at Debug and flow errors at
// Warn. A nil logger keeps the machine silent.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		m.logger = l
	}
}

// Machine is one state machine instance: a shared Topology plus its own
// behaviour tables, embedded machines and execution state.
type Machine struct {
	name   string
	top    *primitives.Topology
	alloc  primitives.Allocator
	logger *log.Logger
	data   any

	actions  primitives.Table[*Action]
	guards   primitives.Table[*Guard]
	embedded []*Machine

	// next free edge slot while configuring; zero on derived machines
	cursor int

	current        int
	execCount      uint64
	stateExecCount uint64
	err            primitives.ErrCode
}

// New creates a base machine with an empty topology of the given capacity.
func New(c Capacity, opts ...Option) (*Machine, error) {
	if !c.valid() {
		return nil, fmt.Errorf("new state machine: %w", primitives.ErrInvalidCapacity)
	}
	m := &Machine{cursor: 1}
	for _, opt := range opts {
		opt(m)
	}
	top, code := primitives.NewTopology(c.States, c.Choices, c.Transitions, m.alloc)
	if code != primitives.Success {
		return nil, fmt.Errorf("new state machine: %w", code)
	}
	m.top = top
	m.actions = primitives.NewTable(c.Actions, noAction)
	m.guards = primitives.NewTable(c.Guards, trueGuard)
	m.embedded = make([]*Machine, c.States)
	return m, nil
}

func (m *Machine) Name() string { return m.name }

// SetName renames the instance, typically after Derive.
func (m *Machine) SetName(name string) { m.name = name }

// SetData replaces the user payload.
func (m *Machine) SetData(data any) { m.data = data }

func (m *Machine) Data() any { return m.data }

// Logger returns the logger set with WithLogger, or nil.
func (m *Machine) Logger() *log.Logger { return m.logger }

func (m *Machine) SetLogger(l *log.Logger) { m.logger = l }

// Topology returns the graph shared with every derived machine.
func (m *Machine) Topology() *primitives.Topology { return m.top }

// Capacity reports the declared sizes.
func (m *Machine) Capacity() Capacity {
	return Capacity{
		States:      m.top.NodeCount(),
		Choices:     m.top.DecisionCount(),
		Transitions: m.top.EdgeCount(),
		Actions:     m.actions.Capacity(),
		Guards:      m.guards.Capacity(),
	}
}

// ActionAt returns the action in table slot i; slot 0 is the no-op action.
func (m *Machine) ActionAt(i int) *Action { return m.actions.At(i) }

// GuardAt returns the guard in table slot i; slot 0 is always true.
func (m *Machine) GuardAt(i int) *Guard { return m.guards.At(i) }

// RegisteredActions is the number of filled action slots, slot 0 excluded.
func (m *Machine) RegisteredActions() int { return m.actions.Registered() }

func (m *Machine) RegisteredGuards() int { return m.guards.Registered() }

// Current returns the current state id, or 0 when stopped.
func (m *Machine) Current() int { return m.current }

func (m *Machine) IsStarted() bool { return m.current != 0 }

// ErrCode returns the latched error code.
func (m *Machine) ErrCode() primitives.ErrCode { return m.err }

// Err returns the latched error, or nil.
func (m *Machine) Err() error { return m.err.Err() }

// ExecCount counts Execute calls since the last Start.
func (m *Machine) ExecCount() uint64 { return m.execCount }

// StateExecCount counts Execute calls since the current state was entered.
func (m *Machine) StateExecCount() uint64 { return m.stateExecCount }

// Embedded returns the machine embedded in state id, or nil.
func (m *Machine) Embedded(id int) *Machine {
	if id < 1 || id > len(m.embedded) {
		return nil
	}
	return m.embedded[id-1]
}

// EmbeddedCurrent returns the machine embedded in the current state, or nil.
func (m *Machine) EmbeddedCurrent() *Machine {
	if m.current == 0 {
		return nil
	}
	return m.embedded[m.current-1]
}

// CurrentEmbeddedState returns the current state of the machine embedded in
// the current state. ok is false when there is none.
func (m *Machine) CurrentEmbeddedState() (id int, ok bool) {
	sub := m.EmbeddedCurrent()
	if sub == nil {
		return 0, false
	}
	return sub.current, true
}

// IsDerived reports whether the machine was created by Derive or InitDerived.
func (m *Machine) IsDerived() bool { return m.cursor == 0 }

func (m *Machine) fail(op string, id int, code primitives.ErrCode) error {
	m.err = code
	if m.logger != nil {
		m.logger.Debug("configuration failed", "machine", m.name, "op", op, "id", id, "code", code.String())
	}
	return fmt.Errorf("%s %d: %w", op, id, code)
}
