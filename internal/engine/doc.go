// Package engine holds the canonical in-memory card collection and the
// closed set of intents that mutate it.
//
// The engine is the single writer of collection state. Intents are
// applied one at a time under a mutex, each producing a new immutable
// snapshot; readers only ever see fully-applied states. Every applied
// intent (after the initial load) hands the new snapshot to a background
// autosave writer, so mutations are visible immediately and durability
// is asynchronous and non-blocking.
package engine
