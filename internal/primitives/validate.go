package primitives

// CheckRegistered verifies that every node, decision and edge slot has been
// filled.
func (t *Topology) CheckRegistered() ErrCode {
	for _, n := range t.nodes {
		if !n.Registered() {
			return ErrNullNode
		}
	}
	for _, d := range t.decisions {
		if !d.Registered() {
			return ErrNullDecision
		}
	}
	for _, e := range t.edges {
		if !e.Filled() {
			return ErrNullEdge
		}
	}
	return Success
}

// CheckDestinations verifies that every edge points inside the id ranges.
func (t *Topology) CheckDestinations() ErrCode {
	for _, e := range t.edges {
		if e.dest > len(t.nodes) {
			return ErrIllegalNodeDest
		}
		if -e.dest > len(t.decisions) {
			return ErrIllegalDecisionDest
		}
	}
	return Success
}

// CheckReachability verifies that every node and decision is the destination
// of at least one edge. It does not allocate.
func (t *Topology) CheckReachability() ErrCode {
	for id := 1; id <= len(t.nodes); id++ {
		if !t.targeted(id) {
			return ErrUnreachableNode
		}
	}
	for id := 1; id <= len(t.decisions); id++ {
		if !t.targeted(-id) {
			return ErrUnreachableDecision
		}
	}
	return Success
}

func (t *Topology) targeted(packed int) bool {
	for _, e := range t.edges {
		if e.dest == packed {
			return true
		}
	}
	return false
}
