// Package state defines the portfolio dataset and its pure mutators.
//
// AppState is treated as an immutable snapshot: every mutator returns a new
// value with a fresh slice for the mutated collection and shares the rest.
// Nothing in this package performs I/O; persistence timing is the persist
// package's concern, which keeps "what changed" separate from "when it is
// durably saved".
package state
