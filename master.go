package ftsim

//
// FTTMaster: periodic trigger-message broadcast under EC back-pressure.
//
// Grounded on original_source/ft4fttsim/networking.py's Master, rebuilt on
// this package's Process/Port primitives. The busy-wait EC-boundary loop
// runs directly on the master's own process (not via spawnTransmission),
// because back-pressure on instruct_transmission must be observed by the
// loop computing `remaining` (spec §4.I): if enqueuing took simulated
// time, the next `now - t_start` reflects it.
//

// FTTMaster periodically broadcasts [MessageTypeTM] trigger messages to a
// fixed set of slave devices, tms_per_ec times per Elementary Cycle, on
// every one of its ports, never shortening an EC even when its own
// out-queues back up (spec §4.I).
type FTTMaster struct {
	*NetworkDevice
	slaves       []*NetworkDevice
	ecDurationUs float64
	tmsPerEC     int
	ecCount      int
}

// NewMaster creates an [FTTMaster] with numPorts free ports addressing
// slaves, and spawns its permanent cycle process. ecDurationUs must be
// positive and tmsPerEC must be at least 1.
func NewMaster(env *Env, name string, numPorts int, slaves []*NetworkDevice, ecDurationUs float64, tmsPerEC int) *FTTMaster {
	if ecDurationUs <= 0 {
		panic("ftsim: NewMaster: ecDurationUs must be positive")
	}
	if tmsPerEC < 1 {
		panic("ftsim: NewMaster: tmsPerEC must be at least 1")
	}
	m := &FTTMaster{
		NetworkDevice: NewNetworkDevice(env, name, numPorts),
		slaves:        append([]*NetworkDevice{}, slaves...),
		ecDurationUs:  ecDurationUs,
		tmsPerEC:      tmsPerEC,
	}
	env.Spawn(name+"/cycle", m.run)
	return m
}

// ElementaryCycleCount returns how many Elementary Cycles have started so
// far (incremented at the start of each cycle, before any TM is sent).
func (m *FTTMaster) ElementaryCycleCount() int { return m.ecCount }

func (m *FTTMaster) run(p *Process) {
	dest := MulticastTo(m.slaves...)
	for {
		tStart := m.env.Now()
		m.ecCount++
		m.logger.Debugf("ftsim: %s starting EC %d at %v", m, m.ecCount, tStart)

		for i := 0; i < m.tmsPerEC; i++ {
			for _, port := range m.Ports() {
				msg := mustNewMessage(m.NetworkDevice, dest, MaxFrameSizeBytes, MessageTypeTM)
				if err := m.InstructTransmission(p, msg, port); err != nil {
					m.logger.Warnf("ftsim: %s: %s", m, err.Error())
				}
			}
		}

		for {
			remaining := m.ecDurationUs - (m.env.Now() - tStart)
			if remaining <= 0 {
				break
			}
			p.Wait(remaining)
		}
	}
}
