package primitives

// Allocator provides the backing arrays of a Topology.
type Allocator interface {
	Nodes(n int) ([]Node, bool)
	Decisions(n int) ([]Decision, bool)
	Edges(n int) ([]Edge, bool)
}

// HeapAllocator allocates each array with make.
type HeapAllocator struct{}

func (HeapAllocator) Nodes(n int) ([]Node, bool)         { return make([]Node, n), true }
func (HeapAllocator) Decisions(n int) ([]Decision, bool) { return make([]Decision, n), true }
func (HeapAllocator) Edges(n int) ([]Edge, bool)         { return make([]Edge, n), true }

// Arena is a bump allocator over arrays sized once by NewArena. Several
// topologies can be carved from one arena. It is not safe for concurrent use.
type Arena struct {
	nodes     []Node
	decisions []Decision
	edges     []Edge
}

func NewArena(nodes, decisions, edges int) *Arena {
	return &Arena{
		nodes:     make([]Node, 0, nodes),
		decisions: make([]Decision, 0, decisions),
		edges:     make([]Edge, 0, edges),
	}
}

func (a *Arena) Nodes(n int) ([]Node, bool) {
	s, ok := carve(&a.nodes, n)
	return s, ok
}

func (a *Arena) Decisions(n int) ([]Decision, bool) {
	s, ok := carve(&a.decisions, n)
	return s, ok
}

func (a *Arena) Edges(n int) ([]Edge, bool) {
	s, ok := carve(&a.edges, n)
	return s, ok
}

// Remaining reports the unused capacity of each backing array.
func (a *Arena) Remaining() (nodes, decisions, edges int) {
	return cap(a.nodes) - len(a.nodes),
		cap(a.decisions) - len(a.decisions),
		cap(a.edges) - len(a.edges)
}

func carve[T any](buf *[]T, n int) ([]T, bool) {
	used := len(*buf)
	if n < 0 || used+n > cap(*buf) {
		return nil, false
	}
	*buf = (*buf)[:used+n]
	return (*buf)[used : used+n : used+n], true
}
