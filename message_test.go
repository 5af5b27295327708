package ftsim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bassosimone/ftsim"
	"github.com/bassosimone/ftsim/internal"
)

func TestNewMessageRejectsOutOfBoundsSize(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	a := ftsim.NewNetworkDevice(env, "a", 1)
	b := ftsim.NewNetworkDevice(env, "b", 1)

	if _, err := ftsim.NewMessage(a, ftsim.UnicastTo(b), ftsim.MinFrameSizeBytes-1, "data"); err == nil {
		t.Fatal("expected an error for undersized frame")
	}
	if _, err := ftsim.NewMessage(a, ftsim.UnicastTo(b), ftsim.MaxFrameSizeBytes+1, "data"); err == nil {
		t.Fatal("expected an error for oversized frame")
	}

	_, err := ftsim.NewMessage(a, ftsim.UnicastTo(b), 0, "data")
	if kind, ok := ftsim.ErrorKindOf(err); !ok || kind != ftsim.ErrorKindInvalidMessage {
		t.Fatalf("expected ErrorKindInvalidMessage, got %v (ok=%v)", kind, ok)
	}
}

func TestMessageEquivalenceIgnoresID(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	a := ftsim.NewNetworkDevice(env, "a", 1)
	b := ftsim.NewNetworkDevice(env, "b", 1)

	m1 := ftsim.Must1(ftsim.NewMessage(a, ftsim.UnicastTo(b), ftsim.MaxFrameSizeBytes, "data"))
	m2 := ftsim.Must1(ftsim.NewMessage(a, ftsim.UnicastTo(b), ftsim.MaxFrameSizeBytes, "data"))

	if m1.ID() == m2.ID() {
		t.Fatal("expected distinct IDs")
	}
	if !m1.Equivalent(m2) {
		t.Fatal("expected equivalence regardless of ID")
	}

	wantDevices := []string{"b"}
	gotDevices := deviceNames(m2.Destination().Devices())
	if diff := cmp.Diff(wantDevices, gotDevices); diff != "" {
		t.Fatalf("destination mismatch (-want +got):\n%s", diff)
	}
}

func deviceNames(devices []*ftsim.NetworkDevice) []string {
	names := make([]string, len(devices))
	for i, dev := range devices {
		names[i] = dev.Name()
	}
	return names
}

func TestMessageEncodeEthernetFrame(t *testing.T) {
	env := ftsim.NewEnv(&internal.NullLogger{})
	a := ftsim.NewNetworkDevice(env, "a", 1)
	b := ftsim.NewNetworkDevice(env, "b", 1)

	m := ftsim.Must1(ftsim.NewMessage(a, ftsim.UnicastTo(b), ftsim.MaxFrameSizeBytes, ftsim.MessageTypeTM))
	frame, err := m.EncodeEthernetFrame()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(frame) < 14 {
		t.Fatalf("expected at least an Ethernet header, got %d bytes", len(frame))
	}
}
