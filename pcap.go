package ftsim

//
// PCAPRecorder: captures every frame delivered on a Sublink to a PCAP
// file, for post-hoc inspection with Wireshark/tshark.
//
// Grounded on the teacher's pcapDumperNIC (pcap.go): same library stack
// (gopacket/gopacket/layers/gopacket/pcapgo). Unlike the teacher, each
// frame is written synchronously from the calling Sublink process, with
// no background writer or channel, and capture is driven by the virtual
// clock rather than time.Now() — a simulation has no wall-clock time, and
// two runs over the same topology must produce byte-identical captures, so
// each entry's timestamp is the simulation epoch plus the message's
// virtual-time offset in microseconds.
//

import (
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// PCAPRecorder writes every frame it is told to [PCAPRecorder.Capture] to
// a PCAP file on an Ethernet link-layer header. The zero value is
// invalid; use [NewPCAPRecorder]. Call [PCAPRecorder.Close] once the
// simulation run is done.
type PCAPRecorder struct {
	epoch  time.Time
	file   *os.File
	logger Logger
	writer *pcapgo.Writer
}

// NewPCAPRecorder creates filename and writes the PCAP file header. epoch
// is the wall-clock instant virtual time zero maps to; pass any fixed
// value (e.g. the zero [time.Time]) when only relative timestamps matter.
func NewPCAPRecorder(filename string, epoch time.Time, logger Logger) (*PCAPRecorder, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	w := pcapgo.NewWriter(file)
	const snapLen = 262144
	if err := w.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		file.Close()
		return nil, err
	}
	return &PCAPRecorder{epoch: epoch, file: file, logger: logger, writer: w}, nil
}

// Capture encodes msg as an Ethernet frame and appends it to the PCAP
// file with a timestamp of epoch + atUs microseconds. Encoding or write
// failures are logged and otherwise ignored: a broken capture must never
// abort a simulation run.
func (r *PCAPRecorder) Capture(atUs float64, msg *Message) {
	frame, err := msg.EncodeEthernetFrame()
	if err != nil {
		r.logger.Warnf("ftsim: PCAPRecorder: EncodeEthernetFrame: %s", err.Error())
		return
	}
	ci := gopacket.CaptureInfo{
		Timestamp:     r.epoch.Add(time.Duration(atUs * float64(time.Microsecond))),
		CaptureLength: len(frame),
		Length:        len(frame),
	}
	if err := r.writer.WritePacket(ci, frame); err != nil {
		r.logger.Warnf("ftsim: PCAPRecorder: WritePacket: %s", err.Error())
	}
}

// Close flushes and closes the underlying file.
func (r *PCAPRecorder) Close() error {
	return r.file.Close()
}

// AttachCapture makes sl report every frame it delivers to rec. Intended
// to be called right after [NewLink] for whichever sublinks a test or
// demo wants to trace.
func (sl *Sublink) AttachCapture(rec *PCAPRecorder) {
	sl.capture = rec
}
