// Package fwgraph is a deterministic runtime for two kinds of behavioural
// models: state machines (package sm) and procedures (package pr).
//
// A model is a fixed graph configured once and then executed step by step.
// Nodes are states or action nodes, decisions are choice pseudo-states or
// decision nodes, and edges are transitions or control flows. Every graph has
// exactly one initial pseudo-node, whose single outgoing edge occupies edge
// slot 0, and one final node.
//
// Capacities are declared up front and the topology can be carved from a
// caller-owned Arena, so execution never allocates. Derived instances share
// the topology of their base and carry their own behaviour tables, which
// lets one configuration back many independently running instances.
//
// This package holds the vocabulary shared by sm and pr: error codes, tagged
// edge destinations, allocators and the Context blackboard.
package fwgraph
