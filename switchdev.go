package ftsim

//
// Switch: the static forwarding engine.
//
// Grounded on the teacher's Router (router.go) for the overall shape of a
// device that owns a forwarding table keyed by destination identity and
// dispatches accordingly, and specifically on Router.AddRoute for the
// "table loaded once, never mutated during simulation" discipline (spec
// §3, §9 non-goals rule out dynamic MAC learning); the flood/duplicate
// semantics come from original_source/ft4fttsim/networking.py's
// Switch.forward_messages.
//

import "sort"

// Switch is a static-forwarding-table Ethernet switch: routes are loaded
// once via [Switch.AddRoute] before the simulation starts, the table is
// never mutated afterward, frames whose destination has no route are
// flooded to every port (spec §4.H edge case, including reflection back
// onto the arrival port — no split-horizon rule), and multicast frames
// are duplicated onto the union of their destinations' ports.
type Switch struct {
	*NetworkDevice
	table map[*NetworkDevice][]*Port
}

// NewSwitch creates a [Switch] with numPorts free ports and an empty
// forwarding table, and spawns its permanent forwarding process. Call
// [Switch.AddRoute] to populate the table before the simulation starts.
func NewSwitch(env *Env, name string, numPorts int) *Switch {
	sw := &Switch{
		NetworkDevice: NewNetworkDevice(env, name, numPorts),
		table:         map[*NetworkDevice][]*Port{},
	}
	sw.ListenForMessages(sw.onReceive)
	return sw
}

// AddRoute adds dev to the forwarding table as reachable via port. Meant
// to be called at topology-construction time, before [Env.Run]; the table
// is read-only once frames start flowing (spec §3: "the table is loaded
// at construction and never mutated during simulation"). Calling it more
// than once for the same (dev, port) pair is a no-op.
func (sw *Switch) AddRoute(dev *NetworkDevice, port *Port) {
	sw.logger.Infof("ftsim: %s route add %s -> %s", sw, dev, port)
	ports := sw.table[dev]
	for _, p := range ports {
		if p == port {
			return
		}
	}
	sw.table[dev] = append(ports, port)
}

// onReceive is the Switch's receive callback (spec §4.H): forward each
// received frame to the port(s) serving its destination(s), flooding when
// a destination has no route.
func (sw *Switch) onReceive(received []Reception) {
	for _, r := range received {
		sw.forward(r.Message)
	}
}

// forward forwards msg to every port serving one of its destinations,
// flooding (including reflection back onto the arrival port) when any
// destination has no route. Each outgoing copy is a fresh [Message] with
// its own ID (spec §4.H): forwarding never mutates or reuses the
// original.
func (sw *Switch) forward(msg *Message) {
	for _, port := range sw.resolveOutPorts(msg) {
		sw.logger.Debugf("ftsim: %s forwarding %s to %s", sw, msg, port.device)
		sw.spawnTransmission(sw.name+"/forward", fromMessage(msg), port)
	}
}

// resolveOutPorts returns, in deterministic port order, every port a
// message must be duplicated onto: the routed port of each destination
// device when present, or every port (flood) when any destination has no
// route.
func (sw *Switch) resolveOutPorts(msg *Message) []*Port {
	dests := msg.Destination().Devices()
	seen := map[*Port]bool{}
	var out []*Port

	for _, dest := range dests {
		ports, ok := sw.table[dest]
		if !ok || len(ports) == 0 {
			return sw.allPortsSorted()
		}
		for _, port := range ports {
			if !seen[port] {
				seen[port] = true
				out = append(out, port)
			}
		}
	}
	sortPorts(out)
	return out
}

func (sw *Switch) allPortsSorted() []*Port {
	out := append([]*Port{}, sw.Ports()...)
	sortPorts(out)
	return out
}

func sortPorts(ports []*Port) {
	position := func(port *Port) int {
		for i, p := range port.device.ports {
			if p == port {
				return i
			}
		}
		return -1
	}
	sort.SliceStable(ports, func(i, j int) bool {
		if ports[i].device.name != ports[j].device.name {
			return ports[i].device.name < ports[j].device.name
		}
		return position(ports[i]) < position(ports[j])
	})
}
