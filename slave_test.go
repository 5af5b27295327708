package ftsim_test

import (
	"testing"

	"github.com/bassosimone/ftsim"
	"github.com/bassosimone/ftsim/internal"
)

func TestSlaveEmitsSyncMessagesOnTMReception(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	slave := ftsim.NewSlave(env, "slave", 2, ftsim.MessageDestination{})
	recorder1 := ftsim.NewRecordingDevice(env, "rec1", 1)
	recorder2 := ftsim.NewRecordingDevice(env, "rec2", 1)
	ftsim.MustNewLink(env, slave.Ports()[0], recorder1.Ports()[0], testMbps, testPropagationDelayUs)
	ftsim.MustNewLink(env, slave.Ports()[1], recorder2.Ports()[0], testMbps, testPropagationDelayUs)

	master := ftsim.NewNetworkDevice(env, "master", 0)
	tm := ftsim.Must1(ftsim.NewMessage(master, ftsim.UnicastTo(slave.NetworkDevice), ftsim.MaxFrameSizeBytes, ftsim.MessageTypeTM))

	// deliver the TM directly into the slave's first in-queue without a
	// link, to isolate the slave's reaction from transmission timing.
	env.Spawn("deliver-tm", func(p *ftsim.Process) {
		ftsim.Put(p, slave.Ports()[0].InQueue(), tm)
	})

	env.RunToCompletion()

	if len(recorder1.RecordedMessages()) != 2 {
		t.Fatalf("expected 2 sync messages on port 0, got %d", len(recorder1.RecordedMessages()))
	}
	if len(recorder2.RecordedMessages()) != 2 {
		t.Fatalf("expected 2 sync messages on port 1, got %d", len(recorder2.RecordedMessages()))
	}
	for _, msg := range recorder1.RecordedMessages() {
		if msg.MessageType() != ftsim.MessageTypeSync {
			t.Fatalf("expected sync message type, got %s", msg.MessageType())
		}
	}
}
