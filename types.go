package fwgraph

import "github.com/comalice/fwgraph/internal/primitives"

type (
	ErrCode       = primitives.ErrCode
	Dest          = primitives.Dest
	DestKind      = primitives.DestKind
	Topology      = primitives.Topology
	Allocator     = primitives.Allocator
	HeapAllocator = primitives.HeapAllocator
	Arena         = primitives.Arena
	Context       = primitives.Context
	Source        = primitives.Source
)

// Unset marks an unregistered node or an unfilled edge slot.
const Unset = primitives.Unset

const (
	DestFinal    = primitives.DestFinal
	DestNode     = primitives.DestNode
	DestDecision = primitives.DestDecision
)

const (
	Success                = primitives.Success
	ErrOutOfMemory         = primitives.ErrOutOfMemory
	ErrInvalidCapacity     = primitives.ErrInvalidCapacity
	ErrConfig              = primitives.ErrConfig
	ErrIllegalNodeID       = primitives.ErrIllegalNodeID
	ErrNodeIDInUse         = primitives.ErrNodeIDInUse
	ErrIllegalDecisionID   = primitives.ErrIllegalDecisionID
	ErrDecisionIDInUse     = primitives.ErrDecisionIDInUse
	ErrNegativeOutCount    = primitives.ErrNegativeOutCount
	ErrIllegalOutCount     = primitives.ErrIllegalOutCount
	ErrTooManyOutEdges     = primitives.ErrTooManyOutEdges
	ErrTooManyEdges        = primitives.ErrTooManyEdges
	ErrIllegalSource       = primitives.ErrIllegalSource
	ErrUndefinedSource     = primitives.ErrUndefinedSource
	ErrIllegalNodeDest     = primitives.ErrIllegalNodeDest
	ErrIllegalDecisionDest = primitives.ErrIllegalDecisionDest
	ErrTooManyActions      = primitives.ErrTooManyActions
	ErrTooManyGuards       = primitives.ErrTooManyGuards
	ErrTooFewActions       = primitives.ErrTooFewActions
	ErrTooFewGuards        = primitives.ErrTooFewGuards
	ErrNullAction          = primitives.ErrNullAction
	ErrNullGuard           = primitives.ErrNullGuard
	ErrNullNode            = primitives.ErrNullNode
	ErrNullDecision        = primitives.ErrNullDecision
	ErrNullEdge            = primitives.ErrNullEdge
	ErrUnreachableNode     = primitives.ErrUnreachableNode
	ErrUnreachableDecision = primitives.ErrUnreachableDecision
	ErrUndefinedAction     = primitives.ErrUndefinedAction
	ErrUndefinedGuard      = primitives.ErrUndefinedGuard
	ErrNotDerived          = primitives.ErrNotDerived
	ErrAlreadyEmbedded     = primitives.ErrAlreadyEmbedded
	ErrWrongActionCount    = primitives.ErrWrongActionCount
	ErrWrongGuardCount     = primitives.ErrWrongGuardCount
	ErrFrozen              = primitives.ErrFrozen
	ErrFlow                = primitives.ErrFlow
)

// ToNode targets a state or action node.
func ToNode(id int) Dest { return primitives.ToNode(id) }

// ToDecision targets a choice pseudo-state or decision node.
func ToDecision(id int) Dest { return primitives.ToDecision(id) }

// ToFinal targets the final node.
func ToFinal() Dest { return primitives.ToFinal() }

// NewArena preallocates backing storage for several topologies.
func NewArena(nodes, decisions, edges int) *Arena {
	return primitives.NewArena(nodes, decisions, edges)
}

func NewContext() *Context { return primitives.NewContext() }

// FromInitial selects the initial pseudo-node as an edge source.
func FromInitial() Source { return primitives.FromInitial() }

func FromNode(id int) Source { return primitives.FromNode(id) }

func FromDecision(id int) Source { return primitives.FromDecision(id) }
