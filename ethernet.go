package ftsim

//
// Ethernet framing constants
//

// PreambleSizeBytes is the size in bytes of the Ethernet preamble.
const PreambleSizeBytes = 7

// SFDSizeBytes is the size in bytes of the Ethernet start-of-frame delimiter.
const SFDSizeBytes = 1

// IFGSizeBytes is the size in bytes of the mandatory Ethernet interframe gap.
const IFGSizeBytes = 12

// MinFrameSizeBytes is the smallest legal Ethernet frame size, not counting
// the preamble, the SFD, or the interframe gap.
const MinFrameSizeBytes = 64

// MaxFrameSizeBytes is the largest legal Ethernet frame size, not counting
// the preamble, the SFD, or the interframe gap.
const MaxFrameSizeBytes = 1518

// bitsPerByte is the number of bits in a byte, used to convert a frame
// size in bytes into a transmission time given a link's bit rate.
const bitsPerByte = 8
