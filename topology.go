package ftsim

//
// Topology helpers: convenience constructors for the shapes the
// end-to-end scenarios build repeatedly.
//
// Grounded on the teacher's PPPTopology/StarTopology (topology.go) for the
// "helper that wires up a known-good shape and hands back the pieces a
// test wants to assert against" idiom.
//

// LinearTopology is a Player -> Switch -> Recorder chain (spec §8,
// scenarios 1-2): the shape most round-trip tests build.
type LinearTopology struct {
	Player       *PlaybackDevice
	PlayerLink   *Link
	Switch       *Switch
	RecorderLink *Link
	Recorder     *RecordingDevice
}

// NewLinearTopology wires a [PlaybackDevice] to a 2-port [Switch] to a
// [RecordingDevice], each link at mbps/propagationDelayUs, and returns the
// pieces so the caller can load a schedule onto Player, attach a
// [PCAPRecorder] to either [Link], and inspect Recorder after running the
// [Env].
func NewLinearTopology(env *Env, mbps, propagationDelayUs float64, schedule []ScheduledTransmission) *LinearTopology {
	sw := NewSwitch(env, "switch", 2)
	player := NewPlaybackDevice(env, "player", 1, schedule)
	recorder := NewRecordingDevice(env, "recorder", 1)

	playerLink := MustNewLink(env, player.Ports()[0], sw.Ports()[0], mbps, propagationDelayUs)
	recorderLink := MustNewLink(env, sw.Ports()[1], recorder.Ports()[0], mbps, propagationDelayUs)
	sw.AddRoute(recorder.NetworkDevice, sw.Ports()[1])

	return &LinearTopology{
		Player:       player,
		PlayerLink:   playerLink,
		Switch:       sw,
		RecorderLink: recorderLink,
		Recorder:     recorder,
	}
}

// StarFTTTopology is a single [FTTMaster] connected through one [Switch]
// to a set of [FTTSlave]s, each paired with its own [RecordingDevice]
// (spec §8, scenarios 5-6).
type StarFTTTopology struct {
	Master     *FTTMaster
	MasterLink *Link
	Switch     *Switch
	Slaves     []*FTTSlave
	Recorders  []*RecordingDevice
}

// NewStarFTTTopology builds numSlaves slaves, each with its own recorder
// tapping its synchronous traffic, all reachable from a single master
// through a central switch. Every link uses the same mbps/
// propagationDelayUs.
func NewStarFTTTopology(env *Env, numSlaves int, mbps, propagationDelayUs, ecDurationUs float64, tmsPerEC int) *StarFTTTopology {
	sw := NewSwitch(env, "switch", numSlaves+1)

	slaveDevices := make([]*NetworkDevice, numSlaves)
	slaves := make([]*FTTSlave, numSlaves)
	recorders := make([]*RecordingDevice, numSlaves)

	for i := 0; i < numSlaves; i++ {
		slave := NewSlave(env, slaveName(i), 2, MessageDestination{})
		slaves[i] = slave
		slaveDevices[i] = slave.NetworkDevice

		recorder := NewRecordingDevice(env, slaveName(i)+"/recorder", 1)
		recorders[i] = recorder

		MustNewLink(env, slave.Ports()[0], sw.Ports()[i], mbps, propagationDelayUs)
		MustNewLink(env, slave.Ports()[1], recorder.Ports()[0], mbps, propagationDelayUs)
		sw.AddRoute(slave.NetworkDevice, sw.Ports()[i])
	}

	master := NewMaster(env, "master", 1, slaveDevices, ecDurationUs, tmsPerEC)
	masterLink := MustNewLink(env, master.Ports()[0], sw.Ports()[numSlaves], mbps, propagationDelayUs)
	sw.AddRoute(master.NetworkDevice, sw.Ports()[numSlaves])

	return &StarFTTTopology{Master: master, MasterLink: masterLink, Switch: sw, Slaves: slaves, Recorders: recorders}
}

func slaveName(i int) string {
	const base = "slave"
	return base + string(rune('0'+i))
}
