// Package builder constructs state machines and procedures from names
// instead of numeric ids.
//
// The builders assign ids in declaration order, count every capacity
// (states, choices, transitions, distinct actions and distinct guards),
// register everything in a legal order and run Check before returning.
package builder

// Final names the final pseudo-state as a transition or flow target.
const Final = "[*]"
