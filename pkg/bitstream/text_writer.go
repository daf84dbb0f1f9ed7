package bitstream

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hitblunders/OpenFPGA/pkg/protocol"
)

// WriteText serializes the fabric bitstream to its plain-text loadable
// form, selected by the configuration protocol kind:
//
//   - Standalone: all bit digits concatenated, no separators.
//   - ScanChain: one line per chain depth, one digit per region.
//   - MemoryBank: one line per distinct (BL, WL) address:
//     `<BL> <WL> <din...>`.
//   - FrameBased: one line per distinct address: `<addr> <din...>`.
//
// A single blank line terminates the output regardless of format. The
// output carries no header, comment, or metadata lines: the file is
// loaded into the fabric as-is by downstream tooling.
func WriteText(w io.Writer, mgr *Manager, fab *Fabric, kind protocol.Kind) error {
	bw := bufio.NewWriter(w)

	var err error
	switch kind {
	case protocol.Standalone:
		err = writeFlattenText(bw, mgr, fab)
	case protocol.ScanChain:
		err = writeConfigChainText(bw, mgr, fab)
	case protocol.MemoryBank:
		err = writeMemoryBankText(bw, mgr, fab)
	case protocol.FrameBased:
		err = writeFrameText(bw, mgr, fab)
	default:
		return fmt.Errorf("bitstream: invalid configuration protocol %v", kind)
	}
	if err != nil {
		return err
	}

	// End the file with one blank line.
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTextFile serializes the fabric bitstream to the named file,
// truncating any previous content. An empty file name is a hard error:
// nothing is opened and nothing is written.
func WriteTextFile(fname string, mgr *Manager, fab *Fabric, kind protocol.Kind, verbose bool) error {
	if fname == "" {
		return fmt.Errorf("bitstream: empty file name for text bitstream output")
	}

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("bitstream: failed to create %q: %w", fname, err)
	}
	defer f.Close()

	if err := WriteText(f, mgr, fab, kind); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("bitstream: failed to close %q: %w", fname, err)
	}

	if verbose {
		log.Printf("wrote %d configuration bits to plain text file %q", fab.NumBits(), fname)
	}
	return nil
}

// writeFlattenText emits every bit's digit in source order with no
// delimiter of any kind.
func writeFlattenText(w *bufio.Writer, mgr *Manager, fab *Fabric) error {
	for id := FabricBitID(0); int(id) < fab.NumBits(); id++ {
		cfg, err := fab.ConfigBit(id)
		if err != nil {
			return err
		}
		v, err := mgr.BitValue(cfg)
		if err != nil {
			return err
		}
		if err := w.WriteByte(bitDigit(v)); err != nil {
			return err
		}
	}
	return nil
}

// writeConfigChainText emits the region bitstreams column-major: line i
// holds bit i of every region, reflecting that all chains shift in
// lock-step per clock cycle. Regions shorter than the longest one are
// padded at the tail with filler bits, so the line count equals the
// longest region's length.
func writeConfigChainText(w *bufio.Writer, mgr *Manager, fab *Fabric) error {
	regions, err := regionBitstreams(mgr, fab)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		return nil
	}
	for i := 0; i < len(regions[0]); i++ {
		for _, region := range regions {
			if err := w.WriteByte(bitDigit(region[i])); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// writeMemoryBankText emits one line per distinct (BL, WL) address pair,
// in first-encounter order, with the data bits of every fabric bit
// sharing that address concatenated in source order.
func writeMemoryBankText(w *bufio.Writer, mgr *Manager, fab *Fabric) error {
	groups, err := buildMemoryBankGroups(mgr, fab)
	if err != nil {
		return err
	}
	for _, key := range groups.keys {
		if _, err := w.WriteString(key.bl); err != nil {
			return err
		}
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		if _, err := w.WriteString(key.wl); err != nil {
			return err
		}
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		for _, v := range groups.din[key] {
			if err := w.WriteByte(bitDigit(v)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// writeFrameText emits one line per distinct frame address, in
// first-encounter order, with the data bits concatenated in source order.
func writeFrameText(w *bufio.Writer, mgr *Manager, fab *Fabric) error {
	groups, err := buildFrameGroups(mgr, fab)
	if err != nil {
		return err
	}
	for _, addr := range groups.keys {
		if _, err := w.WriteString(addr); err != nil {
			return err
		}
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		for _, v := range groups.din[addr] {
			if err := w.WriteByte(bitDigit(v)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
