// Package logging builds slog loggers for orderflow with two output
// formats: a human console handler (timestamp, level, component prefix,
// key=value attrs) and a JSON handler with ts/level/msg key remapping.
// Components derive their loggers via NewComponentLogger so the console
// handler can lift the component attribute into the line prefix.
package logging
