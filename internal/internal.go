// Package internal contains internal implementation details.
package internal

import "github.com/bassosimone/ftsim"

// NullLogger is a [ftsim.Logger] that does not emit logs, used by tests
// that do not want to assert anything about logging output.
type NullLogger struct{}

// Debug implements ftsim.Logger
func (nl *NullLogger) Debug(message string) {
	// nothing
}

// Debugf implements ftsim.Logger
func (nl *NullLogger) Debugf(format string, v ...any) {
	// nothing
}

// Info implements ftsim.Logger
func (nl *NullLogger) Info(message string) {
	// nothing
}

// Infof implements ftsim.Logger
func (nl *NullLogger) Infof(format string, v ...any) {
	// nothing
}

// Warn implements ftsim.Logger
func (nl *NullLogger) Warn(message string) {
	// nothing
}

// Warnf implements ftsim.Logger
func (nl *NullLogger) Warnf(format string, v ...any) {
	// nothing
}

var _ ftsim.Logger = &NullLogger{}
