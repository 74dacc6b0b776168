// Package ingest feeds selected image files through the codec sequentially.
//
// Files are processed strictly one at a time by design choice, not accident:
// parallel decodes would raise peak memory and could reorder results, and the
// output order contract is that it matches input order. Oversized files are
// rejected before any decode work happens.
package ingest
