package primitives

import "github.com/google/uuid"

// Unset marks an unregistered node or decision (EdgeStart) and an unfilled
// edge slot (Guard).
const Unset = -1

// Behaviour slots of a Node. State machines use all three; procedures only
// use BehaviorAction.
const (
	BehaviorEntry  = 0
	BehaviorDo     = 1
	BehaviorExit   = 2
	BehaviorAction = 0
)

// Node is a state (state machine) or an action node (procedure).
// Its outgoing edges occupy [EdgeStart, EdgeStart+EdgeCount) in the edge array.
type Node struct {
	EdgeStart int
	EdgeCount int
	Behaviors [3]int
}

// Registered reports whether the node has been added.
func (n Node) Registered() bool { return n.EdgeStart != Unset }

// Decision is a choice pseudo-state (state machine) or a decision node
// (procedure).
type Decision struct {
	EdgeStart int
	EdgeCount int
}

func (d Decision) Registered() bool { return d.EdgeStart != Unset }

// Edge is a transition (state machine) or a control flow (procedure).
type Edge struct {
	dest    int
	Trigger uint16
	Action  int
	Guard   int
}

func NewEdge(dest Dest, trigger uint16, action, guard int) Edge {
	return Edge{dest: dest.Pack(), Trigger: trigger, Action: action, Guard: guard}
}

// Dest returns the tagged destination.
func (e Edge) Dest() Dest { return UnpackDest(e.dest) }

// Packed returns the signed destination encoding.
func (e Edge) Packed() int { return e.dest }

// Filled reports whether the slot holds a registered edge.
func (e Edge) Filled() bool { return e.Guard != Unset }

// SourceKind selects where an edge starts.
type SourceKind uint8

const (
	SourceInitial SourceKind = iota
	SourceNode
	SourceDecision
)

// Source names the origin of an edge. ID is ignored for SourceInitial.
type Source struct {
	Kind SourceKind
	ID   int
}

// Topology is the immutable-after-configuration graph shared by a base
// instance and every instance derived from it.
//
// Ids are 1-based. Edge slot 0 holds the edge leaving the initial pseudo-node.
type Topology struct {
	id        uuid.UUID
	nodes     []Node
	decisions []Decision
	edges     []Edge
	frozen    bool
}

// NewTopology carves the three arrays from alloc (a HeapAllocator when nil)
// and marks every entry as unset.
func NewTopology(nodes, decisions, edges int, alloc Allocator) (*Topology, ErrCode) {
	if nodes < 0 || decisions < 0 || edges < 1 {
		return nil, ErrInvalidCapacity
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	t := &Topology{id: uuid.New()}
	var ok bool
	if t.nodes, ok = alloc.Nodes(nodes); !ok {
		return nil, ErrOutOfMemory
	}
	if t.decisions, ok = alloc.Decisions(decisions); !ok {
		return nil, ErrOutOfMemory
	}
	if t.edges, ok = alloc.Edges(edges); !ok {
		return nil, ErrOutOfMemory
	}
	for i := range t.nodes {
		t.nodes[i] = Node{EdgeStart: Unset}
	}
	for i := range t.decisions {
		t.decisions[i] = Decision{EdgeStart: Unset}
	}
	for i := range t.edges {
		t.edges[i] = Edge{Action: Unset, Guard: Unset}
	}
	return t, Success
}

// ID identifies the store; derived instances report the same ID as their base.
func (t *Topology) ID() uuid.UUID { return t.id }

// Freeze makes the store read-only. Calling it again is a read, so frozen
// stores may be shared across goroutines.
func (t *Topology) Freeze() {
	if !t.frozen {
		t.frozen = true
	}
}

func (t *Topology) Frozen() bool { return t.frozen }

func (t *Topology) NodeCount() int     { return len(t.nodes) }
func (t *Topology) DecisionCount() int { return len(t.decisions) }
func (t *Topology) EdgeCount() int     { return len(t.edges) }

// Node returns node id. The id must be in [1, NodeCount()].
func (t *Topology) Node(id int) Node { return t.nodes[id-1] }

// Decision returns decision id. The id must be in [1, DecisionCount()].
func (t *Topology) Decision(id int) Decision { return t.decisions[id-1] }

func (t *Topology) Edge(slot int) Edge { return t.edges[slot] }

// ReserveNode registers node id with nOut outgoing edges starting at cursor.
func (t *Topology) ReserveNode(id, nOut, cursor int) ErrCode {
	if t.frozen {
		return ErrFrozen
	}
	if id < 1 || id > len(t.nodes) {
		return ErrIllegalNodeID
	}
	if t.nodes[id-1].Registered() {
		return ErrNodeIDInUse
	}
	if nOut < 0 {
		return ErrNegativeOutCount
	}
	if cursor+nOut > len(t.edges) {
		return ErrTooManyOutEdges
	}
	t.nodes[id-1] = Node{EdgeStart: cursor, EdgeCount: nOut}
	return Success
}

// SetBehaviors stores behaviour table indices on a registered node.
func (t *Topology) SetBehaviors(id int, b [3]int) {
	t.nodes[id-1].Behaviors = b
}

// ReserveDecision registers decision id with nOut outgoing edges starting at
// cursor. Fewer than minOut edges is ErrIllegalOutCount.
func (t *Topology) ReserveDecision(id, nOut, minOut, cursor int) ErrCode {
	if t.frozen {
		return ErrFrozen
	}
	if id < 1 || id > len(t.decisions) {
		return ErrIllegalDecisionID
	}
	if t.decisions[id-1].Registered() {
		return ErrDecisionIDInUse
	}
	if nOut < minOut {
		return ErrIllegalOutCount
	}
	if cursor+nOut > len(t.edges) {
		return ErrTooManyOutEdges
	}
	t.decisions[id-1] = Decision{EdgeStart: cursor, EdgeCount: nOut}
	return Success
}

// FreeSlot returns the first unfilled edge slot reserved for src.
func (t *Topology) FreeSlot(src Source) (int, ErrCode) {
	if t.frozen {
		return 0, ErrFrozen
	}
	var start, count int
	switch src.Kind {
	case SourceInitial:
		start, count = 0, 1
	case SourceNode:
		if src.ID < 1 || src.ID > len(t.nodes) {
			return 0, ErrIllegalSource
		}
		n := t.nodes[src.ID-1]
		if !n.Registered() {
			return 0, ErrUndefinedSource
		}
		if n.EdgeCount == 0 {
			return 0, ErrIllegalSource
		}
		start, count = n.EdgeStart, n.EdgeCount
	case SourceDecision:
		if src.ID < 1 || src.ID > len(t.decisions) {
			return 0, ErrIllegalSource
		}
		d := t.decisions[src.ID-1]
		if !d.Registered() {
			return 0, ErrUndefinedSource
		}
		start, count = d.EdgeStart, d.EdgeCount
	default:
		return 0, ErrIllegalSource
	}
	for i := start; i < start+count; i++ {
		if !t.edges[i].Filled() {
			return i, Success
		}
	}
	return 0, ErrTooManyEdges
}

// SetEdge writes a slot obtained from FreeSlot.
func (t *Topology) SetEdge(slot int, e Edge) {
	t.edges[slot] = e
}

func FromInitial() Source        { return Source{Kind: SourceInitial} }
func FromNode(id int) Source     { return Source{Kind: SourceNode, ID: id} }
func FromDecision(id int) Source { return Source{Kind: SourceDecision, ID: id} }
