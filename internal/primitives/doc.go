// Package primitives provides the foundational data structures shared by the
// state machine and procedure engines.
//
// Everything here is index-packed: nodes, decision nodes and edges live in flat
// arrays and refer to each other by small integers, never by pointer. A
// Topology is built once by a base instance and is then shared read-only by any
// number of derived instances.
//
// Layout rules:
//   - Edges leaving the same source occupy contiguous slots, in the order they
//     were registered. That order is the guard evaluation order.
//   - Edge slot 0 belongs to the initial pseudo-node.
//   - A node's edge range is assigned exactly once; Unset marks a hole.
//   - Behaviour tables are append-only and deduplicated by identity; slot 0
//     holds the default callable.
//   - Nothing on the execution path allocates.
package primitives
