package ftsim

//
// Port and NetworkDevice: port ownership, outbound enqueue, and the
// any-of multi-port receive loop every consuming device builds on.
//
// Grounded on the teacher's Router/RouterPort (router.go) for the
// device/port composition idiom (one struct owns a fixed set of ports,
// each port owns its own queues), generalized from IP routing to the
// spec's exact any-of-receive semantics
// (original_source/ft4fttsim/networking.py, NetworkDevice).
//

import (
	"sync/atomic"
)

// deviceID is the process-wide device identity counter, mirroring
// messageID and the teacher's nicID (nic.go).
var deviceID = &atomic.Int64{}

// Port belongs to exactly one [NetworkDevice]. OutQueue has capacity 1
// (so at most one message is ever in flight per direction); InQueue is
// unbounded. IsFree flips from true to false exactly once, when a [Link]
// attaches to the port.
type Port struct {
	device   *NetworkDevice
	outQueue *Store[*Message]
	inQueue  *Store[*Message]
	isFree   bool
}

// Device returns the [NetworkDevice] that owns this port.
func (port *Port) Device() *NetworkDevice { return port.device }

// IsFree reports whether a [Link] has not yet attached to this port.
func (port *Port) IsFree() bool { return port.isFree }

// OutQueue returns the port's capacity-1 outbound [Store].
func (port *Port) OutQueue() *Store[*Message] { return port.outQueue }

// InQueue returns the port's unbounded inbound [Store].
func (port *Port) InQueue() *Store[*Message] { return port.inQueue }

func newPort(env *Env, device *NetworkDevice) *Port {
	return &Port{
		device:   device,
		outQueue: NewStore[*Message](env, 1),
		inQueue:  NewStore[*Message](env, 0),
		isFree:   true,
	}
}

// NetworkDevice is the base every specialized device (playback, recording,
// switch, FTT master/slave) embeds. It owns a fixed-size ordered list of
// ports established at construction; a device's pointer identity is its
// forwarding-table key (spec §3).
type NetworkDevice struct {
	env    *Env
	id     int64
	name   string
	ports  []*Port
	logger Logger
}

// NewNetworkDevice creates a device with numPorts free ports, none of
// which are yet attached to any [Link].
func NewNetworkDevice(env *Env, name string, numPorts int) *NetworkDevice {
	dev := &NetworkDevice{
		env:    env,
		id:     deviceID.Add(1),
		name:   name,
		logger: env.Logger(),
	}
	for i := 0; i < numPorts; i++ {
		dev.ports = append(dev.ports, newPort(env, dev))
	}
	return dev
}

// Name returns the device's human-readable name.
func (dev *NetworkDevice) Name() string { return dev.name }

// Env returns the [Env] hosting this device.
func (dev *NetworkDevice) Env() *Env { return dev.env }

// Ports returns the device's ports, in construction order.
func (dev *NetworkDevice) Ports() []*Port { return dev.ports }

// String implements fmt.Stringer for log messages.
func (dev *NetworkDevice) String() string { return dev.name }

// ownsPort reports whether port belongs to dev.
func (dev *NetworkDevice) ownsPort(port *Port) bool {
	for _, p := range dev.ports {
		if p == port {
			return true
		}
	}
	return false
}

// InstructTransmission suspends the calling process until port's out-queue
// has room, then enqueues msg on it. It fails with
// [ErrorKindInvalidPort] if port does not belong to dev.
func (dev *NetworkDevice) InstructTransmission(p *Process, msg *Message, port *Port) error {
	if !dev.ownsPort(port) {
		return newSimulationError(ErrorKindInvalidPort, "%s is not a port of %s", port.device, dev)
	}
	dev.logger.Debugf("ftsim: %s instructing transmission of %s", dev, msg)
	Put(p, port.outQueue, msg)
	return nil
}

// spawnTransmission fires InstructTransmission as an independent process,
// so that back-pressure on one port's out-queue never delays the caller or
// the transmission on any other port. This is how [Switch.forward] and
// [PlaybackDevice] issue every transmission (spec §4.H/§4.F): the
// receive/playback loop itself must return "synchronously within the
// same virtual instant" (spec §4.E), so the actual possibly-blocking Put
// cannot run on its own goroutine.
func (dev *NetworkDevice) spawnTransmission(name string, msg *Message, port *Port) {
	dev.env.Spawn(name, func(p *Process) {
		if err := dev.InstructTransmission(p, msg, port); err != nil {
			dev.logger.Warnf("ftsim: %s: %s", dev, err.Error())
		}
	})
}

// Reception pairs a received [Message] with the [Port] it arrived on, so
// that a callback can act on arrival port as well as payload (e.g. an
// [EchoDevice] retransmitting on the port a message arrived on).
type Reception struct {
	Port    *Port
	Message *Message
}

// ListenForMessages spawns the device's permanent receive process: it
// maintains exactly one outstanding Get per in-queue (spec §4.E), waits
// for any of them to become ready, invokes callback synchronously with
// the receptions that arrived at that same instant (in port order), and
// loops. callback must not block the current process directly; issue any
// resulting transmissions via spawnTransmission so they run as
// independent processes instead.
func (dev *NetworkDevice) ListenForMessages(callback func(received []Reception)) *Process {
	stores := make([]*Store[*Message], len(dev.ports))
	storeToPort := make(map[*Store[*Message]]*Port, len(dev.ports))
	for i, port := range dev.ports {
		stores[i] = port.inQueue
		storeToPort[port.inQueue] = port
	}
	return dev.env.Spawn(dev.name+"/listen", func(p *Process) {
		listener := NewListener(p, stores)
		for {
			dev.logger.Debugf("ftsim: %s waiting for next reception", dev)
			ready := listener.Await()
			received := make([]Reception, 0, len(ready))
			for _, port := range dev.ports {
				if msg, ok := ready[port.inQueue]; ok {
					received = append(received, Reception{Port: port, Message: msg})
				}
			}
			dev.logger.Debugf("ftsim: %s received %d message(s)", dev, len(received))
			callback(received)
		}
	})
}
