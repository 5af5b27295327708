package ftsim

//
// FTTSlave: reacts to trigger-message reception by emitting synchronous
// traffic.
//
// Grounded on original_source/ft4fttsim/networking.py's Slave. Unlike
// [Switch]/[RecordingDevice]/[EchoDevice], the slave cannot be built on
// [NetworkDevice.ListenForMessages] unmodified: spec §4.J requires the
// receive process itself to yield once (Wait(0)) after issuing its
// synchronous transmissions, to let the current virtual instant drain
// before re-arming the receive loop. So this file reimplements the
// any-of-wait loop directly against [Listener], the same combinator
// ListenForMessages uses.
//

// FTTSlave waits for a [MessageTypeTM] reception and responds with two
// [MessageTypeSync] messages on every one of its ports (spec §4.J). It
// also records every reception's timestamp and message (spec §8 scenario
// 5/6 speak of "the slave's recorder": this package models that as the
// slave keeping its own reception log rather than requiring a companion
// [RecordingDevice]).
type FTTSlave struct {
	*NetworkDevice
	syncDestination MessageDestination
	timestamps      []float64
	messages        []*Message
}

// NewSlave creates an [FTTSlave] with numPorts free ports and spawns its
// permanent receive process. syncDestination addresses the slave's
// synchronous messages; the base design self-addresses (pass the zero
// [MessageDestination]) when the deployment does not need a more specific
// destination (spec §4.J: "destination addressing TBD per deployment").
func NewSlave(env *Env, name string, numPorts int, syncDestination MessageDestination) *FTTSlave {
	s := &FTTSlave{NetworkDevice: NewNetworkDevice(env, name, numPorts)}
	if len(syncDestination.devices) == 0 {
		syncDestination = UnicastTo(s.NetworkDevice)
	}
	s.syncDestination = syncDestination
	env.Spawn(name+"/receive", s.run)
	return s
}

const syncMessagesPerTM = 2

func (s *FTTSlave) run(p *Process) {
	stores := make([]*Store[*Message], len(s.Ports()))
	for i, port := range s.Ports() {
		stores[i] = port.inQueue
	}
	listener := NewListener(p, stores)

	for {
		s.logger.Debugf("ftsim: %s waiting for next reception", s)
		ready := listener.Await()

		now := s.env.Now()
		sawTM := false
		for _, port := range s.Ports() {
			msg, ok := ready[port.inQueue]
			if !ok {
				continue
			}
			s.timestamps = append(s.timestamps, now)
			s.messages = append(s.messages, msg)
			if msg.MessageType() == MessageTypeTM {
				sawTM = true
			}
		}

		if sawTM {
			s.logger.Debugf("ftsim: %s received TM, emitting synchronous traffic", s)
			for _, port := range s.Ports() {
				for i := 0; i < syncMessagesPerTM; i++ {
					msg := mustNewMessage(s.NetworkDevice, s.syncDestination, MaxFrameSizeBytes, MessageTypeSync)
					s.spawnTransmission(s.name+"/sync", msg, port)
				}
			}
			p.Wait(0)
		}
	}
}

// RecordedTimestamps returns the virtual-time arrival timestamp of every
// message this slave has received so far, in arrival order.
func (s *FTTSlave) RecordedTimestamps() []float64 {
	return append([]float64{}, s.timestamps...)
}

// RecordedMessages returns every message this slave has received so far,
// in arrival order, parallel to [FTTSlave.RecordedTimestamps].
func (s *FTTSlave) RecordedMessages() []*Message {
	return append([]*Message{}, s.messages...)
}
