package ftsim_test

import (
	"testing"

	"github.com/bassosimone/ftsim"
	"github.com/bassosimone/ftsim/internal"
)

func TestPlaybackDeviceTransmitsEveryScheduledMessage(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	player := ftsim.NewPlaybackDevice(env, "player", 1, nil)
	recorder := ftsim.NewRecordingDevice(env, "recorder", 1)
	ftsim.MustNewLink(env, player.Ports()[0], recorder.Ports()[0], testMbps, testPropagationDelayUs)

	first := ftsim.Must1(ftsim.NewMessage(player.NetworkDevice, ftsim.UnicastTo(recorder.NetworkDevice), ftsim.MaxFrameSizeBytes, "data"))
	second := ftsim.Must1(ftsim.NewMessage(player.NetworkDevice, ftsim.UnicastTo(recorder.NetworkDevice), ftsim.MaxFrameSizeBytes, "data"))
	player.Load([]ftsim.ScheduledTransmission{
		{TimeUs: 0, Port: player.Ports()[0], Message: first},
		{TimeUs: 500, Port: player.Ports()[0], Message: second},
	})

	env.Run(100000)

	if len(recorder.RecordedMessages()) != 2 {
		t.Fatalf("expected both scheduled messages to arrive, got %d", len(recorder.RecordedMessages()))
	}
}

func TestPlaybackRecordingDeviceRoundTrip(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	echo := ftsim.NewEchoDevice(env, "echo", 1)
	combo := ftsim.NewPlaybackRecordingDevice(env, "combo", 1, nil)
	ftsim.MustNewLink(env, combo.Ports()[0], echo.Ports()[0], testMbps, testPropagationDelayUs)

	sent := ftsim.Must1(ftsim.NewMessage(combo.NetworkDevice, ftsim.UnicastTo(echo.NetworkDevice), ftsim.MinFrameSizeBytes, "ping"))
	combo.Load([]ftsim.ScheduledTransmission{{TimeUs: 0, Port: combo.Ports()[0], Message: sent}})

	env.Run(100000)

	messages := combo.RecordedMessages()
	if len(messages) != 1 {
		t.Fatalf("expected the echo to bounce back exactly once, got %d", len(messages))
	}
	if !messages[0].Equivalent(sent) {
		t.Fatal("expected the echoed message to be equivalent to the original")
	}
}
