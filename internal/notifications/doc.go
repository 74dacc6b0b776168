// Package notifications delivers operator-facing events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Events cover the failures the operator must act on (storage quota
// exhaustion above all) plus ingest/transfer milestones.
//
// Application code depends only on the Service interface, so tests substitute
// recording fakes freely.
package notifications
