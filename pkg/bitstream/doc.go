// Package bitstream builds and serializes fabric-dependent FPGA
// bitstreams.
//
// A Manager holds the raw configuration bits of a device together with
// the hierarchy of named configuration blocks that produced them. A
// Fabric annotates those bits with the addressing demanded by the
// target device's configuration protocol (frame addresses, bit-line /
// word-line pairs, or scan-chain region membership) and fixes their load
// order.
//
// # Serialization
//
// The loadable form is plain text, selected by the protocol kind:
//
//	Standalone   all bit digits concatenated, no separators
//	ScanChain    one line per chain depth, one digit per region
//	MemoryBank   one line per (BL, WL) address: <BL> <WL> <din...>
//	FrameBased   one line per address: <addr> <din...>
//
// Every format ends with a single blank line and contains nothing but
// digits and addresses: the file is consumed verbatim by the tooling
// that loads it into the fabric, so the byte-level layout matters.
//
// The XML form (WriteXML / ReadXML) is the interchange rendition: it
// keeps region membership and addresses explicit per bit so a bitstream
// can be stored, inspected, and converted to the loadable text form
// later.
//
// # Ordering
//
// Bit order is load order. Bits keep their insertion order within the
// flat sequence, within every region, and within every address group;
// nothing is ever sorted. Serializing the same bitstream twice produces
// byte-identical output.
package bitstream
