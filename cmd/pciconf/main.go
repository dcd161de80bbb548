package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pciconf",
	Short: "PCI/PCIe configuration space inspector",
	Long: `pciconf decodes the configuration space of PCI/PCIe functions: the
standard header, Base Address Registers, and the capability list, including
the MSI and MSI-X interrupt capabilities.

Devices are reached through Linux sysfs. Listing and dumping work
unprivileged; probing BAR sizes and reading past the first 256 bytes of
configuration space require root.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every register access")
}
