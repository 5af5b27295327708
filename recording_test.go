package ftsim_test

import (
	"testing"

	"github.com/bassosimone/ftsim"
	"github.com/bassosimone/ftsim/internal"
)

// TestRecordingDeviceAppendsSimultaneousArrivals guards the fix spec §9
// mandates: same-instant receptions must all be kept, not overwrite one
// another by timestamp key.
func TestRecordingDeviceAppendsSimultaneousArrivals(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	recorder := ftsim.NewRecordingDevice(env, "recorder", 2)
	sender1 := ftsim.NewNetworkDevice(env, "sender1", 1)
	sender2 := ftsim.NewNetworkDevice(env, "sender2", 1)
	ftsim.MustNewLink(env, sender1.Ports()[0], recorder.Ports()[0], testMbps, testPropagationDelayUs)
	ftsim.MustNewLink(env, sender2.Ports()[0], recorder.Ports()[1], testMbps, testPropagationDelayUs)

	msg1 := ftsim.Must1(ftsim.NewMessage(sender1, ftsim.UnicastTo(recorder.NetworkDevice), ftsim.MaxFrameSizeBytes, "data"))
	msg2 := ftsim.Must1(ftsim.NewMessage(sender2, ftsim.UnicastTo(recorder.NetworkDevice), ftsim.MaxFrameSizeBytes, "data"))

	env.Spawn("sender1-tx", func(p *ftsim.Process) {
		ftsim.Must0(sender1.InstructTransmission(p, msg1, sender1.Ports()[0]))
	})
	env.Spawn("sender2-tx", func(p *ftsim.Process) {
		ftsim.Must0(sender2.InstructTransmission(p, msg2, sender2.Ports()[0]))
	})

	env.RunToCompletion()

	messages := recorder.RecordedMessages()
	if len(messages) != 2 {
		t.Fatalf("expected both simultaneous arrivals to be recorded, got %d", len(messages))
	}
}

func TestInterArrivalStatsRequiresTwoMessages(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	recorder := ftsim.NewRecordingDevice(env, "recorder", 1)

	if _, _, _, err := recorder.InterArrivalStats(); err == nil {
		t.Fatal("expected an error with zero recorded messages")
	}
}
