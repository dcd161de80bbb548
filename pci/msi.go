package pci

import "fmt"

// MultipleMessageSupport is the log2-encoded number of MSI vectors a
// function can use. A device modifies the low bits of the message data to
// send multiple messages, so the vector block must be aligned accordingly.
type MultipleMessageSupport uint8

const (
	MSIMessages1  MultipleMessageSupport = 0b000
	MSIMessages2  MultipleMessageSupport = 0b001
	MSIMessages4  MultipleMessageSupport = 0b010
	MSIMessages8  MultipleMessageSupport = 0b011
	MSIMessages16 MultipleMessageSupport = 0b100
	MSIMessages32 MultipleMessageSupport = 0b101
)

// Count returns the number of vectors the encoding stands for.
func (m MultipleMessageSupport) Count() int {
	return 1 << m
}

// String renders the vector count.
func (m MultipleMessageSupport) String() string {
	return fmt.Sprintf("%d", m.Count())
}

// multipleMessageFromBits decodes the three-bit field, falling back to the
// one-message case for the reserved encodings. Failing safe to the minimum
// means a device never gets told to use vectors it cannot have.
func multipleMessageFromBits(value uint8) MultipleMessageSupport {
	if value > uint8(MSIMessages32) {
		return MSIMessages1
	}
	return MultipleMessageSupport(value)
}

// TriggerMode selects when the interrupt is signalled.
type TriggerMode uint8

const (
	TriggerEdge          TriggerMode = 0b00
	TriggerLevelDeassert TriggerMode = 0b10
	TriggerLevelAssert   TriggerMode = 0b11
)

// MSICapability is a message-signalled-interrupt capability structure
// (capability ID 0x05).
//
// The three design-time fields of the message control word (per-vector
// masking, 64-bit addressing, multiple message capable) are decoded once at
// discovery and cached; they are fixed by the hardware. Everything else
// (enable bit, message address/data, mask and pending registers) is read
// from and written to the live registers on every call, since it can change
// under the device.
type MSICapability struct {
	address                CapabilityAddress
	access                 ConfigRegionAccess
	perVectorMasking       bool
	is64Bit                bool
	multipleMessageCapable MultipleMessageSupport
}

func newMSICapability(address CapabilityAddress, control uint16, access ConfigRegionAccess) *MSICapability {
	return &MSICapability{
		address:                address,
		access:                 access,
		perVectorMasking:       control&(1<<8) != 0,
		is64Bit:                control&(1<<7) != 0,
		multipleMessageCapable: multipleMessageFromBits(uint8(control>>1) & 0x7),
	}
}

// Address returns the capability's location in configuration space.
func (m *MSICapability) Address() CapabilityAddress {
	return m.address
}

// HasPerVectorMasking reports whether the device supports masking
// individual vectors.
func (m *MSICapability) HasPerVectorMasking() bool {
	return m.perVectorMasking
}

// Is64Bit reports whether the device uses 64-bit message addressing.
func (m *MSICapability) Is64Bit() bool {
	return m.is64Bit
}

// MultipleMessageCapable returns how many vectors the device can use.
func (m *MSICapability) MultipleMessageCapable() MultipleMessageSupport {
	return m.multipleMessageCapable
}

// Control returns the raw 32-bit word at the capability head: capability
// ID, next pointer and message control.
func (m *MSICapability) Control() uint32 {
	return m.access.Read(m.address.Address, m.address.Offset)
}

// IsEnabled reports whether MSI delivery is enabled. The enable bit is bit
// 0 of the message control register, which occupies the high half of the
// word at the capability head, so bit 16 of the raw word.
func (m *MSICapability) IsEnabled() bool {
	return m.Control()&(1<<16) != 0
}

// SetEnabled enables or disables MSI delivery.
func (m *MSICapability) SetEnabled(enabled bool) {
	reg := m.Control()
	if enabled {
		reg |= 1 << 16
	} else {
		reg &^= 1 << 16
	}
	m.access.Write(m.address.Address, m.address.Offset, reg)
}

// SetMultipleMessageEnable sets how many vectors the device will use. A
// request beyond what the device reports as capable is clamped to the
// capable count.
func (m *MSICapability) SetMultipleMessageEnable(messages MultipleMessageSupport) {
	if messages > m.multipleMessageCapable {
		messages = m.multipleMessageCapable
	}
	reg := m.Control()
	reg = reg&^(0x7<<20) | uint32(messages)<<20
	m.access.Write(m.address.Address, m.address.Offset, reg)
}

// MultipleMessageEnable returns how many vectors the device is currently
// configured to use.
func (m *MSICapability) MultipleMessageEnable() MultipleMessageSupport {
	return multipleMessageFromBits(uint8(m.Control()>>20) & 0x7)
}

// SetMessageInfo sets the memory address the device writes to when an
// interrupt fires and the data word it writes there. The upper address
// word is only written on 64-bit capable devices; the data register sits
// at +0x08 for 32-bit capabilities and +0x0C for 64-bit ones.
func (m *MSICapability) SetMessageInfo(address uint64, data uint32) {
	m.access.Write(m.address.Address, m.address.Offset+0x04, uint32(address))
	dataOffset := uint16(0x08)
	if m.is64Bit {
		m.access.Write(m.address.Address, m.address.Offset+0x08, uint32(address>>32))
		dataOffset = 0x0c
	}
	m.access.Write(m.address.Address, m.address.Offset+dataOffset, data)
}

// SetMessageInfoLAPIC composes the message data word in the format the
// local APIC expects: the interrupt vector in bits 0-7 and the trigger
// mode in bits 14-15. The target address for an unredirected LAPIC is
// 0xfee00000 | (processor << 12).
func (m *MSICapability) SetMessageInfoLAPIC(address uint64, vector uint8, mode TriggerMode) {
	data := uint32(vector) | uint32(mode)<<14
	m.SetMessageInfo(address, data)
}

// MessageMask returns the per-vector mask register at +0x10. The register
// only exists when the device supports both 64-bit addressing and
// per-vector masking; otherwise 0 is returned.
func (m *MSICapability) MessageMask() uint32 {
	if !m.is64Bit || !m.perVectorMasking {
		return 0
	}
	return m.access.Read(m.address.Address, m.address.Offset+0x10)
}

// SetMessageMask writes the per-vector mask register at +0x10. On devices
// without 64-bit addressing and per-vector masking the write is a no-op.
func (m *MSICapability) SetMessageMask(mask uint32) {
	if !m.is64Bit || !m.perVectorMasking {
		return
	}
	m.access.Write(m.address.Address, m.address.Offset+0x10, mask)
}

// Pending returns the pending-bit register at +0x14. The register only
// exists when the device supports 64-bit addressing; otherwise 0 is
// returned.
func (m *MSICapability) Pending() uint32 {
	if !m.is64Bit {
		return 0
	}
	return m.access.Read(m.address.Address, m.address.Offset+0x14)
}
