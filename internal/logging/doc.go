// Package logging assembles the slog loggers used by the CLI and the
// catalog components.
//
// Two handlers are available: a console handler that prints a one-line
// header followed by indented fields (coloured when writing to a terminal),
// and a JSON handler with ts/level/msg keys. WarnWithContext and
// ErrorWithContext enforce the event_type, error_hint and impact fields on
// problems surfaced to the user, and NewNop serves tests and optional wiring.
package logging
