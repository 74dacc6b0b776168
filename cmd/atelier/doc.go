// Package main hosts the Atelier CLI entrypoint and command graph.
//
// The Cobra-based command tree edits the portfolio dataset through an
// editing session: project and archive maintenance, site settings, image
// ingestion, dataset export and import, and storage status. It centralizes
// configuration resolution, the passcode gate, and logger setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
