package ftsim

//
// Link and Sublink: the per-direction serialization pipeline.
//
// Grounded on the teacher's Link (link.go): the bidirectional wrapper
// around two directional workers, constructed once and frozen. Exact
// timing and ordering semantics come from
// original_source/ft4fttsim/networking.py's Link/_Sublink, translated from
// simpy generators onto this package's Process/Store primitives.
//

import "fmt"

// Link is a bidirectional physical medium between two ports on two
// distinct devices. Once constructed, the topology is frozen: there is no
// way to detach a port from a [Link]. Composed of exactly two directional
// [Sublink]s.
type Link struct {
	mbps               float64
	propagationDelayUs float64
	sublinks           [2]*Sublink
}

// NewLink creates a [Link] between portA and portB and spawns the two
// Sublink forwarding processes. It fails with [ErrorKindInvalidTopology]
// if mbps is not positive, propagationDelayUs is negative, either port
// already belongs to a link, or both ports belong to the same device.
func NewLink(env *Env, portA, portB *Port, mbps float64, propagationDelayUs float64) (*Link, error) {
	if mbps <= 0 {
		return nil, newSimulationError(ErrorKindInvalidTopology, "mbps must be a positive number, got %v", mbps)
	}
	if propagationDelayUs < 0 {
		return nil, newSimulationError(ErrorKindInvalidTopology, "propagation delay cannot be negative, got %v", propagationDelayUs)
	}
	if !portA.isFree {
		return nil, newSimulationError(ErrorKindInvalidTopology, "%s is already attached to a link", portA.device)
	}
	if !portB.isFree {
		return nil, newSimulationError(ErrorKindInvalidTopology, "%s is already attached to a link", portB.device)
	}
	if portA.device == portB.device {
		return nil, newSimulationError(ErrorKindInvalidTopology, "cannot link two ports of the same device (%s)", portA.device)
	}

	link := &Link{mbps: mbps, propagationDelayUs: propagationDelayUs}
	link.sublinks[0] = newSublink(env, link, portA, portB)
	link.sublinks[1] = newSublink(env, link, portB, portA)
	portA.isFree = false
	portB.isFree = false
	return link, nil
}

// MustNewLink is like [NewLink] but panics on error, for use in topology
// helpers where the arguments are known-good constants.
func MustNewLink(env *Env, portA, portB *Port, mbps float64, propagationDelayUs float64) *Link {
	return Must1(NewLink(env, portA, portB, mbps, propagationDelayUs))
}

// Sublinks returns the link's two directional [Sublink]s, in the order
// they were constructed. Callers use this to attach a [PCAPRecorder] to
// one or both directions via [Sublink.AttachCapture].
func (l *Link) Sublinks() [2]*Sublink { return l.sublinks }

// Mbps returns the link's bit rate in megabits per second.
func (l *Link) Mbps() float64 { return l.mbps }

// PropagationDelayUs returns the link's one-way propagation delay in
// microseconds.
func (l *Link) PropagationDelayUs() float64 { return l.propagationDelayUs }

// TransmissionTimeUs returns the number of microseconds it takes to put
// numBytes on the wire at this link's bit rate: the time from the first
// bit leaving the transmitter to the last bit leaving the transmitter.
//
// Example: at 100 Mbps, 1526 bytes take 1526*8/100 = 122.08 microseconds.
func (l *Link) TransmissionTimeUs(numBytes int) float64 {
	return float64(numBytes*bitsPerByte) / l.mbps
}

// Sublink is one direction of a [Link]: it has exactly one transmitter
// port and one receiver port. At any virtual time at most one message is
// in flight on a Sublink — the capacity-1 out-queue of the transmitter
// port enforces this back-pressure — and FIFO ordering is preserved
// end-to-end.
type Sublink struct {
	link            *Link
	transmitterPort *Port
	receiverPort    *Port
	capture         *PCAPRecorder
}

// TransmitterPort returns this sublink's transmitting port.
func (s *Sublink) TransmitterPort() *Port { return s.transmitterPort }

// ReceiverPort returns this sublink's receiving port.
func (s *Sublink) ReceiverPort() *Port { return s.receiverPort }

// String implements fmt.Stringer for log messages.
func (s *Sublink) String() string {
	return fmt.Sprintf("%s->%s", s.transmitterPort.device, s.receiverPort.device)
}

func newSublink(env *Env, link *Link, transmitterPort, receiverPort *Port) *Sublink {
	sl := &Sublink{link: link, transmitterPort: transmitterPort, receiverPort: receiverPort}
	env.Spawn(sl.String(), sl.run)
	return sl
}

// run is the sublink's permanent forwarding loop: pull, serialize,
// deliver, interframe gap, forever (spec §4.D).
func (sl *Sublink) run(p *Process) {
	logger := sl.transmitterPort.device.logger
	for {
		msg := Get(p, sl.transmitterPort.outQueue)
		logger.Debugf("ftsim: %s transmission of %s started", sl, msg)

		bytesOnWire := PreambleSizeBytes + SFDSizeBytes + msg.SizeBytes()
		p.Wait(sl.link.TransmissionTimeUs(bytesOnWire) + sl.link.propagationDelayUs)
		logger.Debugf("ftsim: %s transmission of %s finished", sl, msg)

		Put(p, sl.receiverPort.inQueue, msg)
		if sl.capture != nil {
			sl.capture.Capture(p.env.Now(), msg)
		}

		p.Wait(sl.link.TransmissionTimeUs(IFGSizeBytes))
		logger.Debugf("ftsim: %s interframe gap finished", sl)
	}
}
