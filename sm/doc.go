// Package sm implements flat state machines with choice pseudo-states,
// trigger-driven transitions, derivation and embedding.
//
// A Machine is configured once with New and the Add* methods, validated with
// Check and then driven with Start, MakeTransition, Execute and Stop. All
// methods run to completion on the caller's goroutine and a Machine must not
// be used from several goroutines at once. Machines derived from the same
// base share its Topology, which is read-only after configuration and may be
// read concurrently.
//
// Configuration methods never panic. The first failure is latched into the
// machine (see ErrCode) and also returned wrapped with the operation, so it
// can be handled immediately or found later by Check.
//
// A state may embed another Machine. The embedded machine is started after
// the state's entry action, stopped before its exit action, and receives
// every trigger sent to the parent before the parent's transitions are
// scanned.
package sm
