package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/comalice/fwgraph/sm"
)

var (
	ErrQueueFull      = errors.New("trigger queue full")
	ErrUnknownTarget  = errors.New("unknown target")
	ErrDuplicateName  = errors.New("name already registered")
	ErrNotTriggerable = errors.New("target takes no triggers")
)

// Instance is a state machine or procedure stepped by the runtime. Both
// *sm.Machine and *pr.Procedure satisfy it.
type Instance interface {
	Start() error
	Stop()
	Execute() error
	IsStarted() bool
}

// triggerable is implemented by instances that accept triggers.
type triggerable interface {
	MakeTransition(sm.TriggerID) error
}

// Config configures the runtime.
type Config struct {
	TickRate           time.Duration // fixed tick period (default 16.67ms)
	MaxTriggersPerTick int           // queue capacity (default 1000)
	Logger             *log.Logger   // nil is silent

	// BeforeTick, when set, runs at the start of every tick with the number
	// the tick will have once it completes. Triggers sent from it are
	// delivered in that tick.
	BeforeTick func(rt *Runtime, tick uint64)
}

type entry struct {
	name string
	inst Instance
}

// Runtime is a cyclic executive. Registration and Tick belong to the owning
// goroutine; Send and TickNumber may be called from any goroutine.
type Runtime struct {
	tickRate   time.Duration
	logger     *log.Logger
	beforeTick func(*Runtime, uint64)

	entries []entry
	index   map[string]int

	mu          sync.Mutex
	queue       []Trigger
	sequenceNum uint64
	tickNum     uint64
}

// NewRuntime creates a runtime with no instances.
func NewRuntime(cfg Config) *Runtime {
	if cfg.MaxTriggersPerTick <= 0 {
		cfg.MaxTriggersPerTick = 1000
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	return &Runtime{
		tickRate:   cfg.TickRate,
		logger:     cfg.Logger,
		beforeTick: cfg.BeforeTick,
		index:      map[string]int{},
		queue:      make([]Trigger, 0, cfg.MaxTriggersPerTick),
	}
}

// Register adds inst under name. Instances execute in registration order.
func (rt *Runtime) Register(name string, inst Instance) error {
	if _, ok := rt.index[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateName)
	}
	rt.index[name] = len(rt.entries)
	rt.entries = append(rt.entries, entry{name: name, inst: inst})
	return nil
}

// Names lists the registered instances in execution order.
func (rt *Runtime) Names() []string {
	names := make([]string, len(rt.entries))
	for i, e := range rt.entries {
		names[i] = e.name
	}
	return names
}

// Instance returns the instance registered under name, or nil.
func (rt *Runtime) Instance(name string) Instance {
	i, ok := rt.index[name]
	if !ok {
		return nil
	}
	return rt.entries[i].inst
}

// Send queues trigger id for the state machine named target. It is delivered
// at the start of the next tick.
func (rt *Runtime) Send(target string, id sm.TriggerID) error {
	return rt.SendWithPriority(target, id, 0)
}

// SendWithPriority queues a trigger with priority. Higher priorities are
// delivered first within a tick.
func (rt *Runtime) SendWithPriority(target string, id sm.TriggerID, priority int) error {
	i, ok := rt.index[target]
	if !ok {
		return fmt.Errorf("send to %q: %w", target, ErrUnknownTarget)
	}
	if _, ok := rt.entries[i].inst.(triggerable); !ok {
		return fmt.Errorf("send to %q: %w", target, ErrNotTriggerable)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(rt.queue) >= cap(rt.queue) {
		return ErrQueueFull
	}
	rt.queue = append(rt.queue, Trigger{
		Target:      target,
		ID:          id,
		Priority:    priority,
		SequenceNum: rt.sequenceNum,
	})
	rt.sequenceNum++
	return nil
}

// TickNumber returns the number of completed ticks.
func (rt *Runtime) TickNumber() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.tickNum
}

// Start starts every registered instance in registration order.
func (rt *Runtime) Start() error {
	for _, e := range rt.entries {
		if err := e.inst.Start(); err != nil {
			return fmt.Errorf("start %q: %w", e.name, err)
		}
	}
	return nil
}

// Stop stops every registered instance in reverse registration order.
func (rt *Runtime) Stop() {
	for i := len(rt.entries) - 1; i >= 0; i-- {
		rt.entries[i].inst.Stop()
	}
}

// Run starts the instances and ticks at the configured rate until ctx is
// done, n ticks have run (n > 0), or a tick fails. The instances are stopped
// before Run returns. Cancellation is not an error.
func (rt *Runtime) Run(ctx context.Context, n uint64) error {
	if err := rt.Start(); err != nil {
		return err
	}
	defer rt.Stop()

	ticker := time.NewTicker(rt.tickRate)
	defer ticker.Stop()
	for ran := uint64(0); n == 0 || ran < n; ran++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := rt.Tick(); err != nil {
				return err
			}
		}
	}
	return nil
}
