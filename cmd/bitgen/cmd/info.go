package cmd

import (
	"fmt"

	"github.com/hitblunders/OpenFPGA/pkg/bitstream"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <bitstream-xml>",
	Short: "Show summary information about a fabric bitstream",
	Long: `Load a fabric bitstream from its XML interchange form and print its
bit count, region layout, address widths, and distinct address count.

Examples:
  bitgen info fabric.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, fab, err := bitstream.ReadXMLFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load fabric bitstream: %w", err)
	}

	fmt.Printf("Fabric bitstream: %s\n", args[0])
	fmt.Printf("  Bits:    %d\n", fab.NumBits())
	fmt.Printf("  Regions: %d\n", fab.NumRegions())
	for r := 0; r < fab.NumRegions(); r++ {
		ids, err := fab.RegionBits(r)
		if err != nil {
			return err
		}
		fmt.Printf("    region %d: %d bits\n", r, len(ids))
	}

	if w := fab.AddressWidth(); w > 0 {
		fmt.Printf("  Frame address width: %d\n", w)
		addrs, err := distinctFrameAddresses(fab)
		if err != nil {
			return err
		}
		fmt.Printf("  Distinct addresses:  %d\n", addrs)
	}
	if bl, wl := fab.BLAddressWidth(), fab.WLAddressWidth(); bl > 0 || wl > 0 {
		fmt.Printf("  BL/WL address widths: %d/%d\n", bl, wl)
		addrs, err := distinctBankAddresses(fab)
		if err != nil {
			return err
		}
		fmt.Printf("  Distinct addresses:   %d\n", addrs)
	}
	return nil
}

func distinctFrameAddresses(fab *bitstream.Fabric) (int, error) {
	seen := make(map[string]bool)
	for id := bitstream.FabricBitID(0); int(id) < fab.NumBits(); id++ {
		addr, err := fab.BitAddress(id)
		if err != nil {
			return 0, err
		}
		if addr != "" {
			seen[addr] = true
		}
	}
	return len(seen), nil
}

func distinctBankAddresses(fab *bitstream.Fabric) (int, error) {
	type key struct{ bl, wl string }
	seen := make(map[key]bool)
	for id := bitstream.FabricBitID(0); int(id) < fab.NumBits(); id++ {
		bl, err := fab.BitBLAddress(id)
		if err != nil {
			return 0, err
		}
		wl, err := fab.BitWLAddress(id)
		if err != nil {
			return 0, err
		}
		if bl != "" || wl != "" {
			seen[key{bl, wl}] = true
		}
	}
	return len(seen), nil
}
