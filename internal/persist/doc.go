// Package persist owns when the dataset is durably saved.
//
// The Loader reads and validates the slot at startup, substituting the
// built-in default dataset on absence or corruption. The Synchronizer observes
// snapshots after each mutation and debounces them into slot writes, reporting
// quota exhaustion without evicting anything. State mutation itself lives in
// the state package; this one never inspects snapshot contents beyond
// serializing them.
package persist
