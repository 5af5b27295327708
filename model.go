package ftsim

//
// Data model: the Logger contract every device and the kernel depend on.
//
// Grounded on the teacher's model.go, which defines exactly this interface
// for the same reason: the rest of the package must stay decoupled from
// any particular logging backend. internal/internal.go supplies a no-op
// implementation for tests; in production, cmd/ftsim-demo passes
// github.com/apex/log's package-level log.Log straight through, since its
// Logger/Entry types already satisfy this interface with no adapter
// needed (the same way the teacher's own cmd/calibrate does it).
//

// Logger is the logging interface the simulation kernel and every device
// use. It deliberately only has leveled formatting methods, not fields or
// structured key-value pairs, to stay adaptable to whatever backend a
// caller already uses.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}
