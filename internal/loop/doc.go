// Package loop provides the cooperative scheduling primitives the engine runs
// on: a single event loop that owns all state mutation, cancellable timers,
// animation-frame batching and disposer bookkeeping.
//
// Nothing in the engine blocks. Work is either immediate or scheduled through
// a [Scheduler], and every scheduling call returns a [Cancel] disposer.
// [Loop] is the real frame-based loop; [Manual] drives the same interface from
// a virtual clock for deterministic tests.
package loop
