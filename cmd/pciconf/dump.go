package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sercanarga/pciconf/pci"
	"github.com/sercanarga/pciconf/sysfs"
)

var dumpFull bool

var dumpCmd = &cobra.Command{
	Use:   "dump <address>",
	Short: "Hex dump a function's configuration space",
	Long: `Dumps the configuration space of the function at the given address
("SSSS:BB:DD.F" or "BB:DD.F"). By default the 256-byte legacy region is
shown; --full dumps as much of the 4 KiB extended space as sysfs exposes,
which requires root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := pci.ParseAddress(args[0])
		if err != nil {
			return err
		}

		snap, err := sysfs.NewScanner().ReadSnapshot(addr)
		if err != nil {
			return err
		}

		limit := sysfs.SnapshotLegacySize
		if dumpFull {
			limit = sysfs.SnapshotSize
		}

		fmt.Printf("%s (%d bytes)\n", addr, len(snap.Data))
		fmt.Print(snap.HexDump(limit))
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpFull, "full", false, "dump the extended configuration space")
	rootCmd.AddCommand(dumpCmd)
}
