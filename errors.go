package ftsim

//
// Error taxonomy
//

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a [SimulationError].
type ErrorKind int

const (
	// ErrorKindInvalidTopology indicates a topology-construction error: a
	// non-positive Mbps, a negative propagation delay, or a port that is
	// already attached to a [Link].
	ErrorKindInvalidTopology = ErrorKind(iota)

	// ErrorKindInvalidPort indicates an attempt to instruct a transmission
	// on a port that is not owned by the instructing device.
	ErrorKindInvalidPort

	// ErrorKindInvalidMessage indicates a message whose size is outside
	// [MinFrameSizeBytes, MaxFrameSizeBytes].
	ErrorKindInvalidMessage
)

// String implements fmt.Stringer.
func (ek ErrorKind) String() string {
	switch ek {
	case ErrorKindInvalidTopology:
		return "InvalidTopology"
	case ErrorKindInvalidPort:
		return "InvalidPort"
	case ErrorKindInvalidMessage:
		return "InvalidMessage"
	default:
		return "Unknown"
	}
}

// SimulationError is the single error type surfaced by this package's
// construction-time and call-time validation. Internal kernel invariant
// violations are not represented here: they panic, because they indicate
// a bug in the simulator rather than a usage error (see spec §7).
type SimulationError struct {
	Kind ErrorKind
	msg  string
}

// Error implements the error interface.
func (e *SimulationError) Error() string {
	return fmt.Sprintf("ftsim: %s: %s", e.Kind, e.msg)
}

// newSimulationError constructs a [SimulationError] of the given kind.
func newSimulationError(kind ErrorKind, format string, v ...any) *SimulationError {
	return &SimulationError{Kind: kind, msg: fmt.Sprintf(format, v...)}
}

// ErrorKindOf returns the [ErrorKind] of err if err is a [SimulationError]
// (possibly wrapped), and false otherwise.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var se *SimulationError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}
