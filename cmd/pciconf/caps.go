package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sercanarga/pciconf/pci"
	"github.com/sercanarga/pciconf/sysfs"
)

var capsCmd = &cobra.Command{
	Use:   "caps <address>",
	Short: "Walk a function's capability list",
	Long: `Walks the capability linked list of the function at the given address
and prints each entry. MSI and MSI-X capabilities are decoded in detail.
The walk runs over a snapshot of the configuration space, so it never
disturbs the device.`,
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
		access := traced(snap)

		header := pci.NewHeader(addr, access)
		endpoint := pci.EndpointFromHeader(header)
		if endpoint == nil {
			return fmt.Errorf("%s is not an endpoint (header type: %s)", addr, header.HeaderType())
		}

		if endpoint.CapabilityPointer() == 0 {
			fmt.Printf("%s: no capability list\n", addr)
			return nil
		}

		count := 0
		it := endpoint.Capabilities()
		for {
			c, ok := it.Next()
			if !ok {
				break
			}
			count++

			fmt.Printf("[%02x] %s (ID 0x%02x)\n", c.Address.Offset, c.ID, uint8(c.ID))
			switch {
			case c.MSI != nil:
				printMSI(c.MSI)
			case c.MSIX != nil:
				printMSIX(c.MSIX)
			}
		}

		fmt.Printf("\nTotal: %d capabilities\n", count)
		return nil
	},
}

func printMSI(msi *pci.MSICapability) {
	fmt.Printf("     enabled: %v, 64-bit: %v, per-vector masking: %v\n",
		msi.IsEnabled(), msi.Is64Bit(), msi.HasPerVectorMasking())
	fmt.Printf("     vectors: %s capable, %s enabled\n",
		msi.MultipleMessageCapable(), msi.MultipleMessageEnable())
}

func printMSIX(msix *pci.MSIXCapability) {
	fmt.Printf("     enabled: %v, function mask: %v, table size: %d\n",
		msix.IsEnabled(), msix.FunctionMask(), msix.TableSize())
	fmt.Printf("     table: BAR%d+0x%x, PBA: BAR%d+0x%x\n",
		msix.TableBAR(), msix.TableOffset(), msix.PBABar(), msix.PBAOffset())
}

func init() {
	rootCmd.AddCommand(capsCmd)
}
