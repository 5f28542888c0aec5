package realtime

import (
	"sort"

	"github.com/comalice/fwgraph/sm"
)

// Trigger is a queued transition request for a registered state machine.
type Trigger struct {
	Target      string
	ID          sm.TriggerID
	Priority    int
	SequenceNum uint64
}

// sortTriggers orders triggers by descending priority, then by submission.
func sortTriggers(triggers []Trigger) {
	sort.SliceStable(triggers, func(i, j int) bool {
		if triggers[i].Priority != triggers[j].Priority {
			return triggers[i].Priority > triggers[j].Priority
		}
		return triggers[i].SequenceNum < triggers[j].SequenceNum
	})
}
