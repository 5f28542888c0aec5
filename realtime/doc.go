// Package realtime provides a fixed-rate cyclic executive for fwgraph
// instances.
//
// Instances are single-threaded and never block, so the executive steps them
// from one loop instead of giving each a goroutine:
//   - Triggers are queued from any goroutine and delivered at tick boundaries
//   - Delivery order is deterministic: priority first, then submission order
//   - After delivery every registered instance executes once, in
//     registration order
//
// # Example Usage
//
//	rt := realtime.NewRuntime(realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 Hz
//	})
//	rt.Register("switch", machine)
//	rt.Register("dosing", procedure)
//	rt.Send("switch", 1)
//	err := rt.Run(ctx, 0)
//
// # Trigger Ordering Guarantees
//
// Triggers queued for the same tick are ordered by:
//  1. Priority (higher priority delivered first)
//  2. Sequence number (FIFO for same priority)
//
// Given the same sequence of Send calls between ticks, every run executes
// the same transitions in the same order, regardless of wall-clock timing.
//
// Tick can also be called directly, without Run, to drive instances from a
// test or a simulation clock.
package realtime
