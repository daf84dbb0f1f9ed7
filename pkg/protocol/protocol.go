package protocol

import "fmt"

// Kind enumerates the configuration protocols a fabric can be built
// with. The protocol decides how configuration bits are physically
// delivered to the device and therefore how a bitstream is serialized.
type Kind int

const (
	// Standalone configures every memory cell directly, with no
	// chaining or addressing.
	Standalone Kind = iota
	// ScanChain delivers bits through parallel serial scan chains, one
	// per configuration region.
	ScanChain
	// MemoryBank addresses each cell by a (bit-line, word-line) pair.
	MemoryBank
	// FrameBased addresses each configuration frame by a single
	// address.
	FrameBased
)

// String returns the protocol name as it appears in protocol description
// files.
func (k Kind) String() string {
	switch k {
	case Standalone:
		return "standalone"
	case ScanChain:
		return "scan_chain"
	case MemoryBank:
		return "memory_bank"
	case FrameBased:
		return "frame_based"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a protocol name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "standalone":
		return Standalone, nil
	case "scan_chain":
		return ScanChain, nil
	case "memory_bank":
		return MemoryBank, nil
	case "frame_based":
		return FrameBased, nil
	}
	return 0, fmt.Errorf("protocol: unknown configuration protocol %q", name)
}

// Config describes one fabric's configuration protocol: the protocol
// kind plus the protocol-specific geometry needed to serialize or load a
// bitstream for it.
type Config struct {
	Kind Kind

	// NumRegions is the number of parallel configuration regions.
	// Meaningful for ScanChain; every fabric has at least one region.
	NumRegions int

	// AddrWidth is the frame address width (FrameBased only).
	AddrWidth int

	// BLWidth and WLWidth are the bit-line and word-line address widths
	// (MemoryBank only).
	BLWidth int
	WLWidth int
}

// Validate checks that the config carries exactly the geometry its kind
// requires.
func (c Config) Validate() error {
	switch c.Kind {
	case Standalone:
		// No geometry beyond the implicit single region.
	case ScanChain:
		if c.NumRegions < 1 {
			return fmt.Errorf("protocol: scan_chain requires at least one region, got %d", c.NumRegions)
		}
	case MemoryBank:
		if c.BLWidth <= 0 {
			return fmt.Errorf("protocol: memory_bank requires a positive bl_width, got %d", c.BLWidth)
		}
		if c.WLWidth <= 0 {
			return fmt.Errorf("protocol: memory_bank requires a positive wl_width, got %d", c.WLWidth)
		}
	case FrameBased:
		if c.AddrWidth <= 0 {
			return fmt.Errorf("protocol: frame_based requires a positive addr_width, got %d", c.AddrWidth)
		}
	default:
		return fmt.Errorf("protocol: invalid configuration protocol %v", c.Kind)
	}
	return nil
}
