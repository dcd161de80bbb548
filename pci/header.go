package pci

import "fmt"

// Field types used throughout the configuration header.
type (
	VendorID          = uint16
	DeviceID          = uint16
	DeviceRevision    = uint8
	BaseClass         = uint8
	SubClass          = uint8
	Interface         = uint8
	SubsystemID       = uint16
	SubsystemVendorID = uint16
	InterruptLine     = uint8
	InterruptPin      = uint8
)

// HeaderType is the layout of the device-dependent part of a configuration
// header, from bits 16-22 of the register at 0x0C. Values other than the
// three defined layouts are preserved as-is.
type HeaderType uint8

const (
	HeaderTypeEndpoint     HeaderType = 0x00
	HeaderTypePciPciBridge HeaderType = 0x01
	HeaderTypeCardBus      HeaderType = 0x02
)

// String returns the layout name, or the raw value for unknown layouts.
func (t HeaderType) String() string {
	switch t {
	case HeaderTypeEndpoint:
		return "endpoint"
	case HeaderTypePciPciBridge:
		return "PCI-PCI bridge"
	case HeaderTypeCardBus:
		return "CardBus bridge"
	default:
		return fmt.Sprintf("unknown (0x%02x)", uint8(t))
	}
}

// PciHeader is a view over the predefined region (bytes 0x00-0x0F) every
// configuration header starts with:
//
//	32                            16                              0
//	 +-----------------------------+------------------------------+
//	 |       Device ID             |       Vendor ID              | 0x00
//	 +-----------------------------+------------------------------+
//	 |         Status              |       Command                | 0x04
//	 +-----------------------------+---------------+--------------+
//	 |               Class Code                    |  Revision ID | 0x08
//	 +--------------+--------------+---------------+--------------+
//	 |     BIST     | Header type  | Latency timer |  Cache line  | 0x0c
//	 +--------------+--------------+---------------+--------------+
//
// The view is stateless: it holds only the function's address and the
// injected access, and every accessor reads the live register. Mutators use
// read-modify-write against hardware, so there is no cached state to go
// stale.
type PciHeader struct {
	address PciAddress
	access  ConfigRegionAccess
}

// NewHeader returns a header view of the function at address, reached
// through access.
func NewHeader(address PciAddress, access ConfigRegionAccess) PciHeader {
	return PciHeader{address: address, access: access}
}

// Address returns the function's address.
func (h PciHeader) Address() PciAddress {
	return h.address
}

// ID returns the vendor and device IDs from offset 0x00.
func (h PciHeader) ID() (VendorID, DeviceID) {
	id := h.access.Read(h.address, 0x00)
	return VendorID(id), DeviceID(id >> 16)
}

// HeaderType reads bits 16-22 of the register at 0x0C. Bit 23 flags a
// multi-function device and is exposed separately by HasMultipleFunctions.
func (h PciHeader) HeaderType() HeaderType {
	return HeaderType((h.access.Read(h.address, 0x0c) >> 16) & 0x7f)
}

// HasMultipleFunctions reads bit 23 of the register at 0x0C, which is set
// if the device has multiple functions.
func (h PciHeader) HasMultipleFunctions() bool {
	return h.access.Read(h.address, 0x0c)&(1<<23) != 0
}

// RevisionAndClass returns the revision ID and the three class code bytes
// from offset 0x08. Note the register packs them as revision (bits 0-7),
// interface (8-15), subclass (16-23), base class (24-31).
func (h PciHeader) RevisionAndClass() (DeviceRevision, BaseClass, SubClass, Interface) {
	field := h.access.Read(h.address, 0x08)
	return DeviceRevision(field),
		BaseClass(field >> 24),
		SubClass(field >> 16),
		Interface(field >> 8)
}

// Status returns the status register, the high half of offset 0x04.
func (h PciHeader) Status() StatusRegister {
	return StatusRegister(h.access.Read(h.address, 0x04) >> 16)
}

// Command returns the command register, the low half of offset 0x04.
func (h PciHeader) Command() CommandRegister {
	return CommandRegister(h.access.Read(h.address, 0x04))
}

// UpdateCommand reads the register at 0x04, replaces its low 16 bits with
// f applied to the current command value, and writes the full word back
// with the status half unchanged.
func (h PciHeader) UpdateCommand(f func(CommandRegister) CommandRegister) {
	data := h.access.Read(h.address, 0x04)
	command := f(CommandRegister(data))
	data = data&0xffff0000 | uint32(command)
	h.access.Write(h.address, 0x04, data)
}
