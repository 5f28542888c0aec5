// Dest provides the tagged edge destination.
//
// Internally an edge stores its destination as one signed integer: a positive
// value is a node id, a negative value is a negated decision id and zero is the
// final node. Dest is the explicit form used at the API boundary; Pack and
// UnpackDest convert between the two.
//
// Dest is a value type. Construct it with ToNode, ToDecision or ToFinal.
package primitives

import "strconv"

// DestKind tells which kind of vertex an edge leads to.
type DestKind uint8

const (
	DestFinal DestKind = iota
	DestNode
	DestDecision
)

func (k DestKind) String() string {
	switch k {
	case DestFinal:
		return "final"
	case DestNode:
		return "node"
	case DestDecision:
		return "decision"
	default:
		return "unknown"
	}
}

type Dest struct {
	kind DestKind
	id   int
}

// ToNode targets the node (state or action node) with the given id.
func ToNode(id int) Dest {
	return Dest{kind: DestNode, id: id}
}

// ToDecision targets the decision node (choice pseudo-state) with the given id.
func ToDecision(id int) Dest {
	return Dest{kind: DestDecision, id: id}
}

// ToFinal targets the final node.
func ToFinal() Dest {
	return Dest{kind: DestFinal}
}

func (d Dest) Kind() DestKind { return d.kind }

// ID returns the target id; it is 0 for the final node.
func (d Dest) ID() int { return d.id }

// Valid reports whether the id is usable for the kind.
func (d Dest) Valid() bool {
	switch d.kind {
	case DestFinal:
		return d.id == 0
	case DestNode, DestDecision:
		return d.id > 0
	default:
		return false
	}
}

// Pack returns the signed integer encoding stored in an Edge.
func (d Dest) Pack() int {
	switch d.kind {
	case DestNode:
		return d.id
	case DestDecision:
		return -d.id
	default:
		return 0
	}
}

// UnpackDest is the inverse of Pack.
func UnpackDest(v int) Dest {
	switch {
	case v > 0:
		return ToNode(v)
	case v < 0:
		return ToDecision(-v)
	default:
		return ToFinal()
	}
}

func (d Dest) String() string {
	if d.kind == DestFinal {
		return "final"
	}
	return d.kind.String() + " " + strconv.Itoa(d.id)
}
