package sm

// Action is a named behaviour run as an entry, do or exit action of a state,
// or as the action of a transition. Actions are compared by pointer, so the
// same *Action registered twice occupies one table slot.
type Action struct {
	name string
	fn   func(*Machine)
}

// NewAction wraps fn. A nil fn does nothing.
func NewAction(name string, fn func(*Machine)) *Action {
	if fn == nil {
		fn = func(*Machine) {}
	}
	return &Action{name: name, fn: fn}
}

func (a *Action) Name() string { return a.name }

// Run invokes the action on m.
func (a *Action) Run(m *Machine) { a.fn(m) }

// Guard is a named predicate attached to a transition.
type Guard struct {
	name string
	fn   func(*Machine) bool
}

// NewGuard wraps fn. A nil fn is always true.
func NewGuard(name string, fn func(*Machine) bool) *Guard {
	if fn == nil {
		fn = func(*Machine) bool { return true }
	}
	return &Guard{name: name, fn: fn}
}

func (g *Guard) Name() string { return g.name }

func (g *Guard) Eval(m *Machine) bool { return g.fn(m) }

var (
	noAction  = NewAction("none", nil)
	trueGuard = NewGuard("true", nil)
)
