package ftsim_test

import (
	"testing"

	"github.com/bassosimone/ftsim"
	"github.com/bassosimone/ftsim/internal"
)

func TestNewLinearTopologyDeliversScheduledMessage(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	topo := ftsim.NewLinearTopology(env, testMbps, testPropagationDelayUs, nil)

	sent := ftsim.Must1(ftsim.NewMessage(topo.Player.NetworkDevice, ftsim.UnicastTo(topo.Recorder.NetworkDevice), ftsim.MaxFrameSizeBytes, "data"))
	topo.Player.Load([]ftsim.ScheduledTransmission{{TimeUs: 0, Port: topo.Player.Ports()[0], Message: sent}})

	env.Run(100000)

	if len(topo.Recorder.RecordedMessages()) != 1 {
		t.Fatalf("expected exactly one recorded message, got %d", len(topo.Recorder.RecordedMessages()))
	}
}

func TestNewStarFTTTopologyWiresAllSlaves(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	const numSlaves = 3
	topo := ftsim.NewStarFTTTopology(env, numSlaves, testMbps, testPropagationDelayUs, 1000, 1)

	env.Run(5000)

	if len(topo.Slaves) != numSlaves {
		t.Fatalf("expected %d slaves, got %d", numSlaves, len(topo.Slaves))
	}
	for i, slave := range topo.Slaves {
		tmCount := 0
		for _, msg := range slave.RecordedMessages() {
			if msg.MessageType() == ftsim.MessageTypeTM {
				tmCount++
			}
		}
		if tmCount == 0 {
			t.Fatalf("slave %d received no TMs", i)
		}
	}
}
