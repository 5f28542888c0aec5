package pr

// Action is the named behaviour of an action node. Actions are compared by
// pointer.
type Action struct {
	name string
	fn   func(*Procedure)
}

// NewAction wraps fn. A nil fn does nothing.
func NewAction(name string, fn func(*Procedure)) *Action {
	if fn == nil {
		fn = func(*Procedure) {}
	}
	return &Action{name: name, fn: fn}
}

func (a *Action) Name() string { return a.name }

// Run invokes the action on p.
func (a *Action) Run(p *Procedure) { a.fn(p) }

// Guard is a named predicate attached to a control flow.
type Guard struct {
	name string
	fn   func(*Procedure) bool
}

// NewGuard wraps fn. A nil fn is always true.
func NewGuard(name string, fn func(*Procedure) bool) *Guard {
	if fn == nil {
		fn = func(*Procedure) bool { return true }
	}
	return &Guard{name: name, fn: fn}
}

func (g *Guard) Name() string { return g.name }

func (g *Guard) Eval(p *Procedure) bool { return g.fn(p) }

var (
	noAction  = NewAction("none", nil)
	trueGuard = NewGuard("true", nil)
)
