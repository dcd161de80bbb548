package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sercanarga/pciconf/pci/class"
	"github.com/sercanarga/pciconf/sysfs"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List PCI functions",
	Long:  "Scans /sys/bus/pci/devices/ and lists every function with its identity and class.",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := sysfs.NewScanner().Scan()
		if err != nil {
			return fmt.Errorf("failed to scan devices: %w", err)
		}

		switch listOutput {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(devices)
		case "yaml":
			return yaml.NewEncoder(os.Stdout).Encode(devices)
		case "table":
		default:
			return fmt.Errorf("unknown output format %q: expected table, json or yaml", listOutput)
		}

		if len(devices) == 0 {
			fmt.Println("No PCI devices found.")
			return nil
		}

		db := sysfs.LoadPCIDB()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ADDRESS\tID\tCLASS\tVENDOR\tDRIVER")
		for _, dev := range devices {
			vendor := db.VendorName(dev.VendorID)
			fmt.Fprintf(w, "%s\t%04x:%04x\t%s\t%s\t%s\n",
				dev.Address.SysfsName(),
				dev.VendorID, dev.DeviceID,
				class.Description(dev.BaseClass(), dev.SubClass()),
				vendor,
				dev.Driver,
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d functions\n", len(devices))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(listCmd)
}
