package sm

import "github.com/comalice/fwgraph/internal/primitives"

// Check validates the configuration without changing it. It returns nil or
// the first failing ErrCode, in this order: a latched configuration error
// (ErrConfig), unregistered states, choices or transitions, destinations out
// of range, unregistered actions or guards, unreachable states or choices.
func (m *Machine) Check() error {
	return m.check().Err()
}

func (m *Machine) check() primitives.ErrCode {
	if m.err != primitives.Success {
		return primitives.ErrConfig
	}
	if code := m.top.CheckRegistered(); code != primitives.Success {
		return code
	}
	if code := m.top.CheckDestinations(); code != primitives.Success {
		return code
	}
	if m.actions.Registered() < m.actions.Capacity() {
		return primitives.ErrTooFewActions
	}
	if m.guards.Registered() < m.guards.Capacity() {
		return primitives.ErrTooFewGuards
	}
	return m.top.CheckReachability()
}

// CheckRecursive checks every embedded machine, depth first and in state
// order, before checking m. It stops at the first failure.
func (m *Machine) CheckRecursive() error {
	for _, sub := range m.embedded {
		if sub == nil {
			continue
		}
		if err := sub.CheckRecursive(); err != nil {
			return err
		}
	}
	return m.Check()
}
