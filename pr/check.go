package pr

import "github.com/comalice/fwgraph/internal/primitives"

// Check validates the configuration without changing it and returns nil or
// the first failing ErrCode, in the same order as sm.Machine.Check.
func (p *Procedure) Check() error {
	if p.err != primitives.Success {
		return primitives.ErrConfig
	}
	if code := p.top.CheckRegistered(); code != primitives.Success {
		return code
	}
	if code := p.top.CheckDestinations(); code != primitives.Success {
		return code
	}
	if p.actions.Registered() < p.actions.Capacity() {
		return primitives.ErrTooFewActions
	}
	if p.guards.Registered() < p.guards.Capacity() {
		return primitives.ErrTooFewGuards
	}
	return p.top.CheckReachability().Err()
}
