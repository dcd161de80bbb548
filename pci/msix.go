package pci

// MSIXCapability is an MSI-X capability structure (capability ID 0x11).
//
// Unlike MSI, the message address/data pairs live in a vector table in
// system memory, reached through one of the function's BARs; the capability
// itself only locates the table and the pending-bit array. The table size
// and the two BAR-index/offset words are fixed by the device and read once
// at discovery; the enable and function-mask bits are read and written live
// on every call.
type MSIXCapability struct {
	address   CapabilityAddress
	access    ConfigRegionAccess
	tableSize uint16
	// BAR index in bits 0-2, byte offset into that BAR in bits 3-31.
	table uint32
	pba   uint32
}

func newMSIXCapability(address CapabilityAddress, control uint16, access ConfigRegionAccess) *MSIXCapability {
	return &MSIXCapability{
		address:   address,
		access:    access,
		tableSize: control&0x7ff + 1, // encoded as count minus one
		table:     access.Read(address.Address, address.Offset+0x04),
		pba:       access.Read(address.Address, address.Offset+0x08),
	}
}

// Address returns the capability's location in configuration space.
func (m *MSIXCapability) Address() CapabilityAddress {
	return m.address
}

// TableSize returns the number of entries in the vector table (1-2048).
func (m *MSIXCapability) TableSize() uint16 {
	return m.tableSize
}

// TableBAR returns the index of the BAR holding the vector table.
func (m *MSIXCapability) TableBAR() uint8 {
	return uint8(m.table) & 0x7
}

// TableOffset returns the byte offset of the vector table within its BAR.
// The low three bits of the register carry the BAR index and are masked off.
func (m *MSIXCapability) TableOffset() uint32 {
	return m.table &^ 0x7
}

// PBABar returns the index of the BAR holding the pending-bit array.
func (m *MSIXCapability) PBABar() uint8 {
	return uint8(m.pba) & 0x7
}

// PBAOffset returns the byte offset of the pending-bit array within its
// BAR. The low three bits carry the BAR index and are masked off.
func (m *MSIXCapability) PBAOffset() uint32 {
	return m.pba &^ 0x7
}

// IsEnabled reports whether MSI-X delivery is enabled (control bit 31).
func (m *MSIXCapability) IsEnabled() bool {
	return m.access.Read(m.address.Address, m.address.Offset)&(1<<31) != 0
}

// SetEnabled enables or disables MSI-X delivery. The caller is responsible
// for populating the vector table beforehand; this package has no access to
// the BAR-mapped memory it lives in.
func (m *MSIXCapability) SetEnabled(enabled bool) {
	control := m.access.Read(m.address.Address, m.address.Offset)
	if enabled {
		control |= 1 << 31
	} else {
		control &^= 1 << 31
	}
	m.access.Write(m.address.Address, m.address.Offset, control)
}

// FunctionMask reports whether all of the function's vectors are masked
// (control bit 30).
func (m *MSIXCapability) FunctionMask() bool {
	return m.access.Read(m.address.Address, m.address.Offset)&(1<<30) != 0
}

// SetFunctionMask masks or unmasks all vectors of the function at once.
// Individual vectors are masked through their vector table entries.
func (m *MSIXCapability) SetFunctionMask(mask bool) {
	control := m.access.Read(m.address.Address, m.address.Offset)
	if mask {
		control |= 1 << 30
	} else {
		control &^= 1 << 30
	}
	m.access.Write(m.address.Address, m.address.Offset, control)
}
