// Package cms hosts the per-process editing session: a single loaded
// snapshot, pure mutators, and debounced persistence behind one handle.
package cms
