// Command ftsim-demo runs a small hardcoded FTT topology and prints, for
// each slave, the timestamps of every message it received (trigger
// messages as well as its own reflected synchronous messages).
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/bassosimone/ftsim"
)

func main() {
	horizon := flag.Float64("horizon", 10000, "simulation horizon, in microseconds")
	numSlaves := flag.Int("slaves", 2, "number of FTT slaves")
	ecDuration := flag.Float64("ec", 1000, "elementary cycle duration, in microseconds")
	tmsPerEC := flag.Int("tms", 1, "trigger messages per elementary cycle")
	mbps := flag.Float64("mbps", 100, "link bit rate, in megabits per second")
	propagationDelayUs := flag.Float64("prop", 3, "link propagation delay, in microseconds")
	pcapFile := flag.String("pcap", "", "if set, capture the master's uplink traffic to this PCAP file")
	flag.Parse()

	log.SetLevel(log.InfoLevel)

	env := ftsim.NewEnv(log.Log)
	topo := ftsim.NewStarFTTTopology(env, *numSlaves, *mbps, *propagationDelayUs, *ecDuration, *tmsPerEC)

	if *pcapFile != "" {
		rec, err := ftsim.NewPCAPRecorder(*pcapFile, time.Unix(0, 0).UTC(), log.Log)
		if err != nil {
			log.Log.Errorf("ftsim-demo: could not create PCAP recorder: %s", err.Error())
		} else {
			defer rec.Close()
			for _, sublink := range topo.MasterLink.Sublinks() {
				sublink.AttachCapture(rec)
			}
		}
	}

	env.Run(*horizon)

	for i, slave := range topo.Slaves {
		fmt.Printf("slave %d: %d receptions\n", i, len(slave.RecordedTimestamps()))
		for _, ts := range slave.RecordedTimestamps() {
			fmt.Printf("  t=%.2f\n", ts)
		}
	}
}
