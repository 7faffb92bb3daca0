// Package progress animates progress bars with a spring and tracks their
// lifecycle.
//
// A [Bar] owns one spring, one style and a small state machine:
//
//	Idle ──Update──▶ Animating ──equilibrium, target 1──▶ Completed
//	                     │                                   │
//	                     └──equilibrium, target < 1──▶ Idle  └──Update(<1)──▶ Animating
//
// Cancel moves any state to Cancelled, which is terminal. Nothing in this
// package starts goroutines or reads the clock for simulation; the caller
// drives every bar with Tick and decides how often to call it.
//
// A [Group] coordinates named bars in insertion order and isolates per bar
// failures during TickAll. [Save] and [Restore] capture the numeric state of
// a bar as a [Snapshot]; styles are presentation and are supplied again on
// restore.
package progress
