package pci

import (
	"math"
	"math/bits"
)

// MaxBARs is the number of BAR slots in a type-0 header.
const MaxBARs = 6

// EndpointHeader is a view over a type-0 configuration header:
//
//	32                           16                              0
//	+-----------------------------------------------------------+
//	|                Predefined region of header                | 0x00
//	+-----------------------------------------------------------+
//	|               Base Address Registers 0-5                  | 0x10
//	+-----------------------------------------------------------+
//	|                  CardBus CIS Pointer                      | 0x28
//	+----------------------------+------------------------------+
//	|       Subsystem ID         |    Subsystem vendor ID       | 0x2c
//	+----------------------------+------------------------------+
//	|               Expansion ROM Base Address                  | 0x30
//	+--------------------------------------------+--------------+
//	|                 Reserved                   | Capabilities | 0x34
//	|                                            |   Pointer    |
//	+--------------------------------------------+--------------+
//	|                         Reserved                          | 0x38
//	+--------------+--------------+--------------+--------------+
//	|   Max_Lat    |   Min_Gnt    |  Int. pin    |  Int. line   | 0x3c
//	+--------------+--------------+--------------+--------------+
type EndpointHeader struct {
	address PciAddress
	access  ConfigRegionAccess
}

// EndpointFromHeader specializes a generic header into an endpoint view.
// It returns nil unless the live header type field reads back as endpoint.
func EndpointFromHeader(header PciHeader) *EndpointHeader {
	if header.HeaderType() != HeaderTypeEndpoint {
		return nil
	}
	return &EndpointHeader{address: header.address, access: header.access}
}

// Header returns the generic header view for the same function.
func (e *EndpointHeader) Header() PciHeader {
	return PciHeader{address: e.address, access: e.access}
}

// Status returns the function's status register.
func (e *EndpointHeader) Status() StatusRegister {
	return e.Header().Status()
}

// Command returns the function's command register.
func (e *EndpointHeader) Command() CommandRegister {
	return e.Header().Command()
}

// UpdateCommand rewrites the command register via f, preserving the status
// half of the word.
func (e *EndpointHeader) UpdateCommand(f func(CommandRegister) CommandRegister) {
	e.Header().UpdateCommand(f)
}

// CapabilityPointer returns the offset of the first entry in the capability
// list, or 0 if the status register reports no capability list.
func (e *EndpointHeader) CapabilityPointer() uint16 {
	if !e.Status().HasCapabilityList() {
		return 0
	}
	return uint16(e.access.Read(e.address, 0x34) & 0xff)
}

// Capabilities returns an iterator over the function's capability list.
func (e *EndpointHeader) Capabilities() *CapabilityIterator {
	return newCapabilityIterator(e.address, e.CapabilityPointer(), e.access)
}

// Subsystem returns the subsystem ID and subsystem vendor ID from offset
// 0x2C.
func (e *EndpointHeader) Subsystem() (SubsystemID, SubsystemVendorID) {
	data := e.access.Read(e.address, 0x2c)
	return SubsystemID(data >> 16), SubsystemVendorID(data)
}

// BAR decodes the Base Address Register in the given slot (0-5).
// Unimplemented slots return (nil, nil).
//
// Sizing a memory BAR is a destructive probe: all-ones are written to the
// register (and to the next slot, for a 64-bit BAR), the hardware-reported
// mask is read back, and the original values are restored before returning.
// The probe must not be interleaved with any other access to the same BAR;
// the caller is responsible for mutual exclusion per function.
//
// A 64-bit BAR occupies two slots, so if one is decoded in e.g. slot 0,
// this method should not be called for slot 1.
func (e *EndpointHeader) BAR(slot uint8) (*BAR, error) {
	if slot >= MaxBARs {
		return nil, nil
	}

	offset := 0x10 + uint16(slot)*4
	bar := e.access.Read(e.address, offset)

	// Bit 0 clear means the BAR decodes memory, set means I/O.
	if bar&0x1 != 0 {
		return &BAR{Slot: int(slot), Kind: BARKindIO, Port: bar &^ 0x3}, nil
	}

	prefetchable := bar&0x8 != 0
	address := bar & 0xfffffff0

	switch (bar >> 1) & 0x3 {
	case 0b00:
		e.access.Write(e.address, offset, 0xfffffff0)
		readback := e.access.Read(e.address, offset) &^ 0xf
		e.access.Write(e.address, offset, bar)

		// An all-zero mask readback means the slot is not implemented.
		if readback == 0 {
			return nil, nil
		}

		return &BAR{
			Slot:         int(slot),
			Kind:         BARKindMem32,
			Address:      uint64(address),
			Size:         1 << bits.TrailingZeros32(readback),
			Prefetchable: prefetchable,
		}, nil

	case 0b10:
		// A 64-bit BAR needs the next slot for the upper address word, so
		// one starting in the last slot is malformed.
		if slot >= MaxBARs-1 {
			return nil, nil
		}

		addressUpper := e.access.Read(e.address, offset+4)

		e.access.Write(e.address, offset, 0xfffffff0)
		e.access.Write(e.address, offset+4, 0xffffffff)
		readbackLow := e.access.Read(e.address, offset) &^ 0xf
		readbackHigh := e.access.Read(e.address, offset+4)
		e.access.Write(e.address, offset, bar)
		e.access.Write(e.address, offset+4, addressUpper)

		if readbackLow == 0 && readbackHigh == 0 {
			return nil, nil
		}

		// A nonzero low readback means the size is under 4 GiB and the low
		// word alone determines it.
		var size uint64
		if readbackLow != 0 {
			size = 1 << bits.TrailingZeros32(readbackLow)
		} else {
			size = 1 << (bits.TrailingZeros32(readbackHigh) + 32)
		}

		return &BAR{
			Slot:         int(slot),
			Kind:         BARKindMem64,
			Address:      uint64(addressUpper)<<32 | uint64(address),
			Size:         size,
			Prefetchable: prefetchable,
		}, nil

	default:
		return nil, ErrReservedBARType
	}
}

// WriteBAR sets the address a BAR decodes. The slot must currently hold an
// implemented BAR: a 64-bit value may only be written to a slot decoding as
// 64-bit memory (both words are written; the slot must be the first of the
// pair), and a value written to a 32-bit memory or I/O BAR must fit in 32
// bits or ErrInvalidValue is returned. Writing to an unimplemented slot
// returns ErrNoSuchBAR.
//
// The caller is responsible for supplying a legal BAR encoding; refer to
// the PCIe specification for the requirements. No validation beyond the
// width check is performed.
func (e *EndpointHeader) WriteBAR(slot uint8, value uint64) error {
	bar, err := e.BAR(slot)
	if err != nil {
		return err
	}
	if bar == nil {
		return ErrNoSuchBAR
	}

	offset := 0x10 + uint16(slot)*4
	if bar.Kind == BARKindMem64 {
		e.access.Write(e.address, offset, uint32(value))
		e.access.Write(e.address, offset+4, uint32(value>>32))
		return nil
	}

	if value > math.MaxUint32 {
		return ErrInvalidValue
	}
	e.access.Write(e.address, offset, uint32(value))
	return nil
}

// Interrupt returns the interrupt pin and line from offset 0x3C. Per the
// PCI Express specification the Min_Gnt/Max_Lat bytes of the same register
// are read-only and hardwired to zero.
func (e *EndpointHeader) Interrupt() (InterruptPin, InterruptLine) {
	data := e.access.Read(e.address, 0x3c)
	return InterruptPin(data >> 8), InterruptLine(data)
}

// UpdateInterrupt rewrites the interrupt pin and line via f, preserving the
// rest of the register.
func (e *EndpointHeader) UpdateInterrupt(f func(InterruptPin, InterruptLine) (InterruptPin, InterruptLine)) {
	data := e.access.Read(e.address, 0x3c)
	pin, line := f(InterruptPin(data>>8), InterruptLine(data))
	data = data&0xffff0000 | uint32(pin)<<8 | uint32(line)
	e.access.Write(e.address, 0x3c, data)
}
