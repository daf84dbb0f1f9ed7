package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bitgen",
	Short: "Fabric bitstream serializer",
	Long: `bitgen converts fabric-dependent FPGA bitstreams between their XML
interchange form and the plain-text loadable form selected by the
target device's configuration protocol.

Examples:
  bitgen write fabric.xml --protocol chain.proto --output fabric.bit
  bitgen info fabric.xml`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
