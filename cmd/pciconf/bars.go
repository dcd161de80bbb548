package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sercanarga/pciconf/pci"
	"github.com/sercanarga/pciconf/sysfs"
)

var barsProbe bool

var barsCmd = &cobra.Command{
	Use:   "bars <address>",
	Short: "Decode a function's Base Address Registers",
	Long: `Decodes the six BAR slots of the function at the given address. By
default only the addresses and types are decoded from a snapshot. With
--probe the sizing protocol runs against the live device: all-ones are
written to each BAR and the original value restored, which requires root
and exclusive access to the function.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := pci.ParseAddress(args[0])
		if err != nil {
			return err
		}

		if barsProbe {
			return probeBARs(addr)
		}
		return decodeBARs(addr)
	},
}

// probeBARs runs the live write-probe-restore sizing protocol.
func probeBARs(addr pci.PciAddress) error {
	access := traced(sysfs.NewAccess())
	header := pci.NewHeader(addr, access)
	endpoint := pci.EndpointFromHeader(header)
	if endpoint == nil {
		return fmt.Errorf("%s is not an endpoint (header type: %s)", addr, header.HeaderType())
	}

	for slot := uint8(0); slot < pci.MaxBARs; slot++ {
		bar, err := endpoint.BAR(slot)
		if err != nil {
			return fmt.Errorf("BAR%d: %w", slot, err)
		}
		if bar == nil {
			fmt.Printf("BAR%d: [absent]\n", slot)
			continue
		}
		fmt.Println(bar)
		if bar.Kind == pci.BARKindMem64 {
			slot++ // the upper half lives in the next slot
		}
	}
	return nil
}

// decodeBARs decodes addresses and types from a snapshot without sizing.
func decodeBARs(addr pci.PciAddress) error {
	snap, err := sysfs.NewScanner().ReadSnapshot(addr)
	if err != nil {
		return err
	}

	header := pci.NewHeader(addr, snap)
	if t := header.HeaderType(); t != pci.HeaderTypeEndpoint {
		return fmt.Errorf("%s is not an endpoint (header type: %s)", addr, t)
	}

	for slot := uint8(0); slot < pci.MaxBARs; slot++ {
		raw := snap.Read(addr, 0x10+uint16(slot)*4)
		if raw == 0 {
			fmt.Printf("BAR%d: [absent]\n", slot)
			continue
		}

		if raw&0x1 != 0 {
			fmt.Printf("BAR%d: io at 0x%x\n", slot, raw&^uint32(0x3))
			continue
		}

		pf := ""
		if raw&0x8 != 0 {
			pf = " [prefetchable]"
		}
		switch (raw >> 1) & 0x3 {
		case 0b00:
			fmt.Printf("BAR%d: mem32 at 0x%x%s\n", slot, raw&0xfffffff0, pf)
		case 0b10:
			if slot >= pci.MaxBARs-1 {
				fmt.Printf("BAR%d: [malformed 64-bit BAR in last slot]\n", slot)
				continue
			}
			upper := snap.Read(addr, 0x10+uint16(slot+1)*4)
			address := uint64(upper)<<32 | uint64(raw&0xfffffff0)
			fmt.Printf("BAR%d: mem64 at 0x%x%s\n", slot, address, pf)
			slot++
		default:
			fmt.Printf("BAR%d: [reserved memory type]\n", slot)
		}
	}

	fmt.Println("\n(sizes not shown; run with --probe to size the BARs)")
	return nil
}

func init() {
	barsCmd.Flags().BoolVar(&barsProbe, "probe", false, "size BARs with the live write-probe-restore protocol")
	rootCmd.AddCommand(barsCmd)
}
