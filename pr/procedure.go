package pr

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/internal/primitives"
)

// Pending is the position of a started procedure that has not yet left its
// initial node.
const Pending = -1

// Capacity declares the size of a procedure at creation.
type Capacity struct {
	Nodes     int
	Decisions int
	Flows     int
	Actions   int
	Guards    int
}

func (c Capacity) valid() bool {
	return c.Nodes >= 1 && c.Decisions >= 0 && c.Flows >= 2 &&
		c.Actions >= 1 && c.Actions <= c.Nodes &&
		c.Guards >= 0 && c.Guards <= c.Flows
}

type Option func(*Procedure)

// WithAllocator carves the topology from alloc instead of the heap.
func WithAllocator(alloc primitives.Allocator) Option {
	return func(p *Procedure) {
		p.alloc = alloc
	}
}

func WithData(data any) Option {
	return func(p *Procedure) {
		p.data = data
	}
}

func WithName(name string) Option {
	return func(p *Procedure) {
		p.name = name
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Procedure) {
		p.logger = l
	}
}

// Procedure is one procedure instance.
type Procedure struct {
	name   string
	top    *primitives.Topology
	alloc  primitives.Allocator
	logger *log.Logger
	data   any

	actions primitives.Table[*Action]
	guards  primitives.Table[*Guard]

	// next free flow slot while configuring; zero on derived procedures
	cursor int

	current       int
	execCount     uint64
	nodeExecCount uint64
	err           primitives.ErrCode
}

// New creates a base procedure with an empty topology of the given capacity.
func New(c Capacity, opts ...Option) (*Procedure, error) {
	if !c.valid() {
		return nil, fmt.Errorf("new procedure: %w", primitives.ErrInvalidCapacity)
	}
	p := &Procedure{cursor: 1}
	for _, opt := range opts {
		opt(p)
	}
	top, code := primitives.NewTopology(c.Nodes, c.Decisions, c.Flows, p.alloc)
	if code != primitives.Success {
		return nil, fmt.Errorf("new procedure: %w", code)
	}
	p.top = top
	p.actions = primitives.NewTable(c.Actions, noAction)
	p.guards = primitives.NewTable(c.Guards, trueGuard)
	return p, nil
}

func (p *Procedure) Name() string { return p.name }

// SetName renames the instance, typically after Derive.
func (p *Procedure) SetName(name string) { p.name = name }

func (p *Procedure) SetData(data any) { p.data = data }

func (p *Procedure) Data() any { return p.data }

func (p *Procedure) Logger() *log.Logger { return p.logger }

func (p *Procedure) SetLogger(l *log.Logger) { p.logger = l }

func (p *Procedure) Topology() *primitives.Topology { return p.top }

func (p *Procedure) Capacity() Capacity {
	return Capacity{
		Nodes:     p.top.NodeCount(),
		Decisions: p.top.DecisionCount(),
		Flows:     p.top.EdgeCount(),
		Actions:   p.actions.Capacity(),
		Guards:    p.guards.Capacity(),
	}
}

func (p *Procedure) ActionAt(i int) *Action { return p.actions.At(i) }

func (p *Procedure) GuardAt(i int) *Guard { return p.guards.At(i) }

// RegisteredActions is the number of filled action slots, slot 0 excluded.
func (p *Procedure) RegisteredActions() int { return p.actions.Registered() }

func (p *Procedure) RegisteredGuards() int { return p.guards.Registered() }

// Current returns 0 when stopped, Pending before the initial flow was taken,
// and the current node id otherwise.
func (p *Procedure) Current() int { return p.current }

func (p *Procedure) IsStarted() bool { return p.current != 0 }

func (p *Procedure) ErrCode() primitives.ErrCode { return p.err }

func (p *Procedure) Err() error { return p.err.Err() }

// ExecCount counts Execute calls since the last Start.
func (p *Procedure) ExecCount() uint64 { return p.execCount }

// NodeExecCount counts Execute calls since the current node was entered.
func (p *Procedure) NodeExecCount() uint64 { return p.nodeExecCount }

func (p *Procedure) IsDerived() bool { return p.cursor == 0 }

func (p *Procedure) fail(op string, id int, code primitives.ErrCode) error {
	p.err = code
	if p.logger != nil {
		p.logger.Debug("configuration failed", "procedure", p.name, "op", op, "id", id, "code", code.String())
	}
	return fmt.Errorf("%s %d: %w", op, id, code)
}
