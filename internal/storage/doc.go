// Package storage implements the quota-bounded persistent slot the dataset
// lives in.
//
// The Store is a small key-value table in SQLite with a byte quota enforced
// at write time, mirroring the size-constrained storage of the environments
// the exported site targets. A file lock acquired at Open gives single-writer
// semantics across concurrent CLI invocations; without it the last writer
// wins, which is a documented limitation rather than a guarantee.
//
// Treat this package as the single source of truth for slot semantics; the
// persist package decides when writes happen, this one decides whether they
// fit.
package storage
