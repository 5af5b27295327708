package ftsim

//
// RecordingDevice: records everything it receives, for assertions in
// tests and end-to-end scenarios.
//
// Grounded on original_source/ft4fttsim/networking.py's RecordingDevice;
// the statistics helper is grounded on the teacher's own use of
// github.com/montanaflynn/stats for RTT percentiles in integration_test.go,
// generalized here to inter-arrival jitter.
//

import (
	"github.com/montanaflynn/stats"
)

// RecordingDevice records the virtual-time timestamp and payload of every
// message it receives, in arrival order. When two or more messages arrive
// at the exact same virtual instant, they are appended in the order
// [NetworkDevice.ListenForMessages] reports them (port order), never
// overwriting each other (spec §9: a documented fix over a reference
// implementation bug that only kept the last of simultaneous arrivals).
type RecordingDevice struct {
	*NetworkDevice
	timestamps []float64
	messages   []*Message
}

// NewRecordingDevice creates a [RecordingDevice] with numPorts free ports
// and spawns its permanent recording process.
func NewRecordingDevice(env *Env, name string, numPorts int) *RecordingDevice {
	rd := &RecordingDevice{NetworkDevice: NewNetworkDevice(env, name, numPorts)}
	rd.ListenForMessages(rd.onReceive)
	return rd
}

func (rd *RecordingDevice) onReceive(received []Reception) {
	now := rd.env.Now()
	for _, r := range received {
		rd.timestamps = append(rd.timestamps, now)
		rd.messages = append(rd.messages, r.Message)
	}
}

// RecordedTimestamps returns the virtual-time arrival timestamp of every
// message received so far, in arrival order, parallel to
// [RecordingDevice.RecordedMessages].
func (rd *RecordingDevice) RecordedTimestamps() []float64 {
	return append([]float64{}, rd.timestamps...)
}

// RecordedMessages returns every message received so far, in arrival
// order.
func (rd *RecordingDevice) RecordedMessages() []*Message {
	return append([]*Message{}, rd.messages...)
}

// InterArrivalStats returns descriptive statistics (mean, median, and
// population standard deviation, all in microseconds) of the gaps between
// consecutive recorded arrivals. It returns an error if fewer than two
// messages have been recorded.
func (rd *RecordingDevice) InterArrivalStats() (mean, median, stddev float64, err error) {
	if len(rd.timestamps) < 2 {
		return 0, 0, 0, newSimulationError(ErrorKindInvalidMessage, "need at least two recorded messages, have %d", len(rd.timestamps))
	}
	gaps := make(stats.Float64Data, 0, len(rd.timestamps)-1)
	for i := 1; i < len(rd.timestamps); i++ {
		gaps = append(gaps, rd.timestamps[i]-rd.timestamps[i-1])
	}
	if mean, err = gaps.Mean(); err != nil {
		return 0, 0, 0, err
	}
	if median, err = gaps.Median(); err != nil {
		return 0, 0, 0, err
	}
	if stddev, err = gaps.StandardDeviationPopulation(); err != nil {
		return 0, 0, 0, err
	}
	return mean, median, stddev, nil
}
