// Package ftsim is a discrete-event simulator for switched Ethernet
// networks running the FTT (Flexible Time-Triggered) master/slave
// protocol.
//
// The simulator models frame-level transmissions across point-to-point
// full-duplex links and learning-free forwarding switches, with timing
// accurate to the microsecond: Ethernet preamble, start-of-frame
// delimiter, frame payload, interframe gap, and wire propagation are all
// accounted for.
//
// Build a topology out of [NetworkDevice]s (use [NewPlaybackDevice],
// [NewRecordingDevice], [NewSwitch], [NewMaster], and [NewSlave] to obtain
// specialized devices) and [Link]s, drive traffic either by loading
// transmission commands into a playback device or by letting the FTT
// master/slave state machines generate it, then call [Env.Run] to advance
// the virtual clock to a horizon and inspect what the recording devices
// observed.
//
// Everything in this package runs on a single goroutine-per-process,
// cooperatively scheduled [Env] (see kernel.go): there is no wall-clock
// dependency, and two runs of the same topology against the same inputs
// produce byte-identical recordings.
package ftsim
