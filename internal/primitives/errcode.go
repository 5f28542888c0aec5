package primitives

// ErrCode is the closed set of outcomes reported by configuration, validation
// and execution. The zero value is Success.
//
// ErrCode implements error so every code doubles as a sentinel for errors.Is.
type ErrCode int

const (
	Success ErrCode = iota
	// ErrOutOfMemory: an Arena could not satisfy a topology allocation.
	ErrOutOfMemory
	// ErrInvalidCapacity: declared capacities are out of range at creation.
	ErrInvalidCapacity
	// ErrConfig: a configuration error was latched before Check was called.
	ErrConfig
	ErrIllegalNodeID
	ErrNodeIDInUse
	ErrIllegalDecisionID
	ErrDecisionIDInUse
	ErrNegativeOutCount
	// ErrIllegalOutCount: a decision node declared too few outgoing edges.
	ErrIllegalOutCount
	// ErrTooManyOutEdges: the declared outgoing edges do not fit in the edge array.
	ErrTooManyOutEdges
	// ErrTooManyEdges: every slot reserved for the edge's source is already filled.
	ErrTooManyEdges
	ErrIllegalSource
	// ErrUndefinedSource: the edge's source has not been registered yet.
	ErrUndefinedSource
	ErrIllegalNodeDest
	ErrIllegalDecisionDest
	ErrTooManyActions
	ErrTooManyGuards
	ErrTooFewActions
	ErrTooFewGuards
	ErrNullAction
	ErrNullGuard
	ErrNullNode
	ErrNullDecision
	ErrNullEdge
	ErrUnreachableNode
	ErrUnreachableDecision
	// ErrUndefinedAction: the action to override is not in the table.
	ErrUndefinedAction
	// ErrUndefinedGuard: the guard to override is not in the table.
	ErrUndefinedGuard
	// ErrNotDerived: override or embed attempted on a base instance.
	ErrNotDerived
	ErrAlreadyEmbedded
	ErrWrongActionCount
	ErrWrongGuardCount
	// ErrFrozen: registration attempted after the topology was frozen.
	ErrFrozen
	// ErrFlow: no guard out of a decision node evaluated true.
	ErrFlow
)

var errCodeNames = [...]string{
	Success:                "success",
	ErrOutOfMemory:         "out of memory",
	ErrInvalidCapacity:     "invalid capacity",
	ErrConfig:              "configuration error",
	ErrIllegalNodeID:       "illegal node id",
	ErrNodeIDInUse:         "node id in use",
	ErrIllegalDecisionID:   "illegal decision id",
	ErrDecisionIDInUse:     "decision id in use",
	ErrNegativeOutCount:    "negative out-edge count",
	ErrIllegalOutCount:     "illegal out-edge count",
	ErrTooManyOutEdges:     "too many out-edges",
	ErrTooManyEdges:        "too many edges",
	ErrIllegalSource:       "illegal edge source",
	ErrUndefinedSource:     "undefined edge source",
	ErrIllegalNodeDest:     "illegal node destination",
	ErrIllegalDecisionDest: "illegal decision destination",
	ErrTooManyActions:      "too many actions",
	ErrTooManyGuards:       "too many guards",
	ErrTooFewActions:       "too few actions",
	ErrTooFewGuards:        "too few guards",
	ErrNullAction:          "null action",
	ErrNullGuard:           "null guard",
	ErrNullNode:            "undefined node",
	ErrNullDecision:        "undefined decision",
	ErrNullEdge:            "undefined edge",
	ErrUnreachableNode:     "unreachable node",
	ErrUnreachableDecision: "unreachable decision",
	ErrUndefinedAction:     "undefined override action",
	ErrUndefinedGuard:      "undefined override guard",
	ErrNotDerived:          "not derived",
	ErrAlreadyEmbedded:     "already embedded",
	ErrWrongActionCount:    "wrong action count",
	ErrWrongGuardCount:     "wrong guard count",
	ErrFrozen:              "topology frozen",
	ErrFlow:                "flow error",
}

// String returns the human-readable name of the code.
func (c ErrCode) String() string {
	if c < 0 || int(c) >= len(errCodeNames) {
		return "invalid error code"
	}
	return errCodeNames[c]
}

func (c ErrCode) Error() string {
	return "fwgraph: " + c.String()
}

// Err returns nil for Success and the code itself otherwise.
func (c ErrCode) Err() error {
	if c == Success {
		return nil
	}
	return c
}
