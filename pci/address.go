// Package pci models the PCI/PCIe configuration space of a single function:
// the standard header, Base Address Registers, and the capability list.
// All hardware access goes through a caller-supplied ConfigRegionAccess;
// the package itself holds no state beyond the addresses of the structures
// it describes.
package pci

import (
	"fmt"
	"strings"
)

// PciAddress identifies a PCIe function. PCIe supports 65536 segments, each
// with 256 buses, each with 32 devices, each with 8 functions. The four
// fields are packed into a single uint32:
//
//	32                              16               8         3      0
//	 +-------------------------------+---------------+---------+------+
//	 |            segment            |      bus      | device  | func |
//	 +-------------------------------+---------------+---------+------+
//
// Addresses compare and sort by the packed value, i.e. by segment, then bus,
// then device, then function.
type PciAddress uint32

// NewPciAddress packs the four fields into an address. Fields wider than
// their slot (3 bits for function, 5 for device) are silently truncated;
// callers that care must validate ranges beforehand.
func NewPciAddress(segment uint16, bus, device, function uint8) PciAddress {
	return PciAddress(uint32(segment)<<16 |
		uint32(bus)<<8 |
		uint32(device&0x1f)<<3 |
		uint32(function&0x07))
}

// Segment returns the PCIe segment group number.
func (a PciAddress) Segment() uint16 {
	return uint16(a >> 16)
}

// Bus returns the bus number.
func (a PciAddress) Bus() uint8 {
	return uint8(a >> 8)
}

// Device returns the device number (0-31).
func (a PciAddress) Device() uint8 {
	return uint8(a>>3) & 0x1f
}

// Function returns the function number (0-7).
func (a PciAddress) Function() uint8 {
	return uint8(a) & 0x07
}

// String formats the address as "SSSS-BB:DD.F".
func (a PciAddress) String() string {
	return fmt.Sprintf("%04x-%02x:%02x.%d", a.Segment(), a.Bus(), a.Device(), a.Function())
}

// SysfsName returns the Linux sysfs device name: "SSSS:BB:DD.F".
func (a PciAddress) SysfsName() string {
	return fmt.Sprintf("%04x:%02x:%02x.%d", a.Segment(), a.Bus(), a.Device(), a.Function())
}

// ParseAddress parses an address in the form "SSSS:BB:DD.F" (sysfs) or
// "BB:DD.F" (segment defaults to 0). All fields are hexadecimal.
func ParseAddress(s string) (PciAddress, error) {
	s = strings.TrimSpace(s)

	var segment uint16
	var bus, device, function uint8

	n, err := fmt.Sscanf(s, "%x:%x:%x.%x", &segment, &bus, &device, &function)
	if err == nil && n == 4 {
		return NewPciAddress(segment, bus, device, function), nil
	}

	n, err = fmt.Sscanf(s, "%x:%x.%x", &bus, &device, &function)
	if err == nil && n == 3 {
		return NewPciAddress(0, bus, device, function), nil
	}

	return 0, fmt.Errorf("invalid PCI address %q: expected SSSS:BB:DD.F or BB:DD.F", s)
}
