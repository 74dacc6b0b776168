// Package transfer moves whole datasets in and out of the storage slot as
// JSON export files.
package transfer
