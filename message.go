package ftsim

//
// Message: the immutable frame descriptor moved through Ports and Links.
//

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// messageID is the process-wide monotonically increasing message ID
// counter, grounded on the teacher's nicID idiom (nic.go).
var messageID = &atomic.Int64{}

// MessageTypeTM is the message type that gives a frame protocol meaning
// to an [FTTSlave]: receiving one licenses the slave to transmit its
// synchronous messages for the current elementary cycle.
const MessageTypeTM = "TM"

// MessageTypeSync is the message type an [FTTSlave] uses for the frames
// it transmits in response to a TM.
const MessageTypeSync = "sync"

// Message is an immutable Ethernet frame descriptor. Construct with
// [NewMessage]; once constructed, none of its fields change — forwarding
// a message means creating an equivalent one with a fresh ID, never
// mutating the original (spec §3).
type Message struct {
	id          int64
	source      *NetworkDevice
	destination MessageDestination
	sizeBytes   int
	messageType string
}

// MessageDestination is either a single [NetworkDevice] (unicast) or a set
// of them (multicast). Use [UnicastTo] or [MulticastTo] to build one.
type MessageDestination struct {
	devices []*NetworkDevice
}

// UnicastTo builds a [MessageDestination] addressing a single device.
func UnicastTo(dev *NetworkDevice) MessageDestination {
	return MessageDestination{devices: []*NetworkDevice{dev}}
}

// MulticastTo builds a [MessageDestination] addressing a set of devices.
// Order is insignificant; callers must not rely on it (the set is
// resorted by device name, then pointer identity, wherever this package
// iterates it, to preserve determinism per spec §5).
func MulticastTo(devices ...*NetworkDevice) MessageDestination {
	return MessageDestination{devices: append([]*NetworkDevice{}, devices...)}
}

// IsMulticast reports whether this destination addresses anything other
// than exactly one device (an empty destination also counts as multicast).
func (d MessageDestination) IsMulticast() bool {
	return len(d.devices) != 1
}

// Devices returns the destination devices in a deterministic order
// (sorted by device name, then pointer identity to break name ties).
func (d MessageDestination) Devices() []*NetworkDevice {
	out := append([]*NetworkDevice{}, d.devices...)
	sortDevices(out)
	return out
}

func sortDevices(devices []*NetworkDevice) {
	sort.SliceStable(devices, func(i, j int) bool {
		if devices[i].name != devices[j].name {
			return devices[i].name < devices[j].name
		}
		return fmt.Sprintf("%p", devices[i]) < fmt.Sprintf("%p", devices[j])
	})
}

// NewMessage creates a new [Message]. It returns an
// [ErrorKindInvalidMessage] [SimulationError] if sizeBytes is outside
// [MinFrameSizeBytes, MaxFrameSizeBytes].
func NewMessage(source *NetworkDevice, destination MessageDestination, sizeBytes int, messageType string) (*Message, error) {
	if sizeBytes < MinFrameSizeBytes || sizeBytes > MaxFrameSizeBytes {
		return nil, newSimulationError(
			ErrorKindInvalidMessage,
			"size must be between %d and %d, but is %d",
			MinFrameSizeBytes, MaxFrameSizeBytes, sizeBytes,
		)
	}
	return &Message{
		id:          messageID.Add(1),
		source:      source,
		destination: destination,
		sizeBytes:   sizeBytes,
		messageType: messageType,
	}, nil
}

// mustNewMessage is like [NewMessage] but panics on error; used internally
// wherever the size is a package constant and therefore always valid
// (trigger messages, synchronous messages, switch forwarding).
func mustNewMessage(source *NetworkDevice, destination MessageDestination, sizeBytes int, messageType string) *Message {
	return Must1(NewMessage(source, destination, sizeBytes, messageType))
}

// ID returns the message's unique, monotonically increasing identifier.
func (m *Message) ID() int64 { return m.id }

// Source returns the device that originated this message.
func (m *Message) Source() *NetworkDevice { return m.source }

// Destination returns this message's destination.
func (m *Message) Destination() MessageDestination { return m.destination }

// SizeBytes returns the frame size, not counting preamble/SFD/IFG.
func (m *Message) SizeBytes() int { return m.sizeBytes }

// MessageType returns the frame's opaque type tag ("TM" and "sync" carry
// protocol meaning to [FTTSlave] and [FTTMaster]; anything else is
// application-defined).
func (m *Message) MessageType() string { return m.messageType }

// Equivalent reports whether m and other have the same source,
// destination, size, and type. IDs are deliberately excluded: a forwarded
// frame is equivalent to the one it was forwarded from, even though it
// has a different ID (spec §3).
func (m *Message) Equivalent(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.source != other.source || m.sizeBytes != other.sizeBytes || m.messageType != other.messageType {
		return false
	}
	a, b := m.destination.Devices(), other.destination.Devices()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fromMessage creates a new [Message] equivalent to template but with a
// fresh ID, the way a [Switch] duplicates a frame onto each output port
// (spec §4.H).
func fromMessage(template *Message) *Message {
	return mustNewMessage(template.source, template.destination, template.sizeBytes, template.messageType)
}

// String implements fmt.Stringer for log messages.
func (m *Message) String() string {
	return fmt.Sprintf("(%03d, %s, %s->%s, %d)", m.id, m.messageType, m.source, m.destination, m.sizeBytes)
}

// EncodeEthernetFrame renders m as a real, parseable Ethernet II frame
// using gopacket, for consumption by [PCAPRecorder]. Source and
// destination MAC addresses are synthesized deterministically from the
// devices' numeric identities; the EtherType is derived from the message type
// ("TM" and "sync" get distinguishable reserved EtherTypes, everything
// else gets a generic experimental one). This has no bearing on
// simulated timing: only SizeBytes feeds transmission-time computations.
func (m *Message) EncodeEthernetFrame() ([]byte, error) {
	eth := &layers.Ethernet{
		SrcMAC:       deviceMAC(m.source),
		DstMAC:       destinationMAC(m.destination),
		EthernetType: messageEtherType(m.messageType),
	}
	const captureSnapshotBytes = 12 // keep captures small; full zero padding isn't informative
	payload := make([]byte, captureSnapshotBytes)
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: false, ComputeChecksums: false}
	if err := gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload(payload)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deviceMAC synthesizes a locally-administered MAC address from a
// device's identity so that two devices never collide within one run.
func deviceMAC(dev *NetworkDevice) []byte {
	id := uint32(dev.id)
	return []byte{0x02, 0x00, 0x00, byte(id >> 16), byte(id >> 8), byte(id)}
}

// destinationMAC returns the broadcast address for a multicast
// destination and the unicast device MAC otherwise.
func destinationMAC(d MessageDestination) []byte {
	if d.IsMulticast() {
		return []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	}
	return deviceMAC(d.devices[0])
}

// messageEtherType maps a message type tag to an EtherType for capture
// purposes only.
func messageEtherType(messageType string) layers.EthernetType {
	switch messageType {
	case MessageTypeTM:
		return layers.EthernetType(0x8888)
	case MessageTypeSync:
		return layers.EthernetType(0x8889)
	default:
		return layers.EthernetType(0x88b5) // IEEE Std 802 - Local Experimental Ethertype
	}
}
