// Package main hosts the orderflow CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// order registration, stage transitions, filtered listings, dashboard
// counts, database diagnostics, configuration scaffolding, and the API
// server. It centralizes configuration resolution and store wiring so
// subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
