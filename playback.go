package ftsim

//
// PlaybackDevice: replays a fixed transmission schedule.
//
// Grounded on original_source/ft4fttsim/networking.py's PlaybackDevice,
// rebuilt on this package's [Env]/[Process]/[NetworkDevice] primitives in
// the style the teacher uses for its Router/UNetStack constructors
// (a plain struct embedding [NetworkDevice], configured before the
// simulation starts producing events).
//

import "sort"

// ScheduledTransmission is one entry in a [PlaybackDevice]'s schedule: at
// TimeUs, transmit Message on Port (one of the device's own ports).
type ScheduledTransmission struct {
	TimeUs  float64
	Port    *Port
	Message *Message
}

// PlaybackDevice transmits a fixed, caller-supplied schedule of messages
// at predetermined virtual times (spec §4.F), then falls silent. Two runs
// against the same schedule always produce the exact same sequence of
// transmissions.
type PlaybackDevice struct {
	*NetworkDevice
	schedule []ScheduledTransmission
}

// NewPlaybackDevice creates a [PlaybackDevice] with numPorts free ports
// and spawns its permanent playback process. schedule may reference the
// device's own ports (obtained from the same call via [PlaybackDevice.Ports]
// is not possible before construction returns, so most callers build the
// device first with an empty schedule and call [PlaybackDevice.Load]
// before the [Env] starts running).
func NewPlaybackDevice(env *Env, name string, numPorts int, schedule []ScheduledTransmission) *PlaybackDevice {
	pd := &PlaybackDevice{
		NetworkDevice: NewNetworkDevice(env, name, numPorts),
	}
	pd.Load(schedule)
	env.Spawn(name+"/playback", pd.run)
	return pd
}

// Load (re)sets the device's schedule. Must be called before the owning
// [Env] starts running this device's process — i.e. before any call to
// [Env.Run] — since the playback process reads the schedule once, the
// first time it is scheduled to run.
func (pd *PlaybackDevice) Load(schedule []ScheduledTransmission) {
	sorted := append([]ScheduledTransmission{}, schedule...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TimeUs < sorted[j].TimeUs })
	pd.schedule = sorted
}

func (pd *PlaybackDevice) run(p *Process) {
	now := pd.env.Now()
	for _, st := range pd.schedule {
		if st.TimeUs < now {
			panic("ftsim: PlaybackDevice: schedule entry is in the past")
		}
		p.Wait(st.TimeUs - now)
		now = st.TimeUs
		pd.spawnTransmission(pd.name+"/playback", st.Message, st.Port)
	}
}

// PlaybackRecordingDevice composes a playback behavior and a recording
// behavior over the same set of ports (supplemented feature, spec §9:
// "model as composition of two independent behaviors over a shared
// NetworkDevice base"), grounded on
// original_source/ft4fttsim/networking.py's
// MessagePlaybackAndRecordingDevice. Useful for round-trip tests where
// the same device both emits a schedule and records whatever comes back
// on its own ports.
//
// It embeds [NetworkDevice] directly rather than both [PlaybackDevice]
// and [RecordingDevice], to avoid the ambiguous-selector problem of
// promoting the same embedded [NetworkDevice] through two paths; the
// playback and recording halves are kept as unexported delegates and
// their behavior is exposed through [PlaybackRecordingDevice.Load],
// [PlaybackRecordingDevice.RecordedTimestamps],
// [PlaybackRecordingDevice.RecordedMessages], and
// [PlaybackRecordingDevice.InterArrivalStats].
type PlaybackRecordingDevice struct {
	*NetworkDevice
	playback  *PlaybackDevice
	recording *RecordingDevice
}

// NewPlaybackRecordingDevice creates a [PlaybackRecordingDevice] with
// numPorts ports shared between its playback and recording halves.
func NewPlaybackRecordingDevice(env *Env, name string, numPorts int, schedule []ScheduledTransmission) *PlaybackRecordingDevice {
	dev := NewNetworkDevice(env, name, numPorts)

	pd := &PlaybackDevice{NetworkDevice: dev}
	pd.Load(schedule)
	env.Spawn(name+"/playback", pd.run)

	rd := &RecordingDevice{NetworkDevice: dev}
	rd.ListenForMessages(rd.onReceive)

	return &PlaybackRecordingDevice{NetworkDevice: dev, playback: pd, recording: rd}
}

// Load (re)sets the playback schedule; see [PlaybackDevice.Load].
func (pd *PlaybackRecordingDevice) Load(schedule []ScheduledTransmission) {
	pd.playback.Load(schedule)
}

// RecordedTimestamps returns the ascending receive timestamps observed on
// this device's ports; see [RecordingDevice.RecordedTimestamps].
func (pd *PlaybackRecordingDevice) RecordedTimestamps() []float64 {
	return pd.recording.RecordedTimestamps()
}

// RecordedMessages returns the messages received on this device's ports,
// aligned index-for-index with [PlaybackRecordingDevice.RecordedTimestamps].
func (pd *PlaybackRecordingDevice) RecordedMessages() []*Message {
	return pd.recording.RecordedMessages()
}

// InterArrivalStats computes inter-arrival statistics over the recorded
// timestamps; see [RecordingDevice.InterArrivalStats].
func (pd *PlaybackRecordingDevice) InterArrivalStats() (mean, median, stddev float64, err error) {
	return pd.recording.InterArrivalStats()
}
