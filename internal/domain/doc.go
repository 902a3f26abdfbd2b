// Package domain contains the board model and its state transitions.
//
// This package is the innermost layer. It has no knowledge of storage,
// HTTP, or logging. Everything here is a value type plus pure functions
// over those values.
//
// # Entities
//
//   - [Board]: the root aggregate holding lists and transient UI state
//   - [List]: an ordered column of items
//   - [Item]: a single card belonging to exactly one list
//
// # Transitions
//
// [Transition] maps (Board, Action) to the next Board. It never mutates its
// input; lists and items that a transition does not touch are shared with
// the previous snapshot. The second return value reports whether list or
// item data changed, which is the signal callers use to persist.
package domain
