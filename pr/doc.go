// Package pr implements procedures: flowcharts of action nodes and decision
// nodes connected by guarded control flows.
//
// Unlike a state machine a procedure has no triggers. Each call to Execute
// follows control flows for as long as their guards hold, running the action
// of every node it enters, and halts on the first false guard or on the
// final node.
package pr
