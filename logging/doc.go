// Package logging provides structured logging using Go's standard library
// log/slog. It outputs logs in JSON format and supplies the no-op logger
// the schema resolver defaults to.
package logging
