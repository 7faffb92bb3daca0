// Package dynamo provides the primitives shared by every part of the
// progress engine:
//
//   - [ErrInvalidArgument]: sentinel for rejected input (negative dt,
//     non-positive width, malformed gradient stops)
//   - [ArgumentError]: carries the operation and field that failed
//   - [DuplicateNameError]: returned when a bar name is already taken
//   - [Clamp01]: the clamping rule applied at every mutation boundary
//
// # Thread Safety
//
// Nothing in the engine locks. Callers drive bars from a single goroutine.
package dynamo
