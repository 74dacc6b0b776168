// Package imaging converts uploaded images into embeddable data-URI strings.
//
// The codec is the single lever the application has against the storage
// quota: it bounds pixel dimensions, strips alpha, and re-encodes lossily, so
// a media-rich dataset still fits a size-constrained slot. Decode failures
// are recoverable by contract and surface as an empty-string sentinel rather
// than an error.
package imaging
