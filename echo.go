package ftsim

//
// EchoDevice: a supplemented feature, grounded on
// original_source/ft4fttsim/networking.py's EchoDevice, which the spec's
// distillation dropped but which is useful for end-to-end round-trip
// scenarios and is cheap to keep around given the device base this
// package already has.
//

// EchoDevice retransmits every message it receives, unchanged apart from
// a fresh ID, back out of the same port it arrived on.
type EchoDevice struct {
	*NetworkDevice
}

// NewEchoDevice creates an [EchoDevice] with numPorts free ports and
// spawns its permanent echo process.
func NewEchoDevice(env *Env, name string, numPorts int) *EchoDevice {
	ed := &EchoDevice{NetworkDevice: NewNetworkDevice(env, name, numPorts)}
	ed.ListenForMessages(ed.onReceive)
	return ed
}

func (ed *EchoDevice) onReceive(received []Reception) {
	for _, r := range received {
		ed.spawnTransmission(ed.name+"/echo", fromMessage(r.Message), r.Port)
	}
}
