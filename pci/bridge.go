package pci

// BridgeHeader is a view over a type-1 (PCI-PCI bridge) configuration
// header. Only the bus number topology registers are modeled; the window
// base/limit registers belong to bridge configuration policy, which lives
// above this package.
type BridgeHeader struct {
	address PciAddress
	access  ConfigRegionAccess
}

// BridgeFromHeader specializes a generic header into a bridge view. It
// returns nil unless the live header type field reads back as PCI-PCI
// bridge.
func BridgeFromHeader(header PciHeader) *BridgeHeader {
	if header.HeaderType() != HeaderTypePciPciBridge {
		return nil
	}
	return &BridgeHeader{address: header.address, access: header.access}
}

// Header returns the generic header view for the same function.
func (b *BridgeHeader) Header() PciHeader {
	return PciHeader{address: b.address, access: b.access}
}

// Status returns the function's status register.
func (b *BridgeHeader) Status() StatusRegister {
	return b.Header().Status()
}

// Command returns the function's command register.
func (b *BridgeHeader) Command() CommandRegister {
	return b.Header().Command()
}

// UpdateCommand rewrites the command register via f, preserving the status
// half of the word.
func (b *BridgeHeader) UpdateCommand(f func(CommandRegister) CommandRegister) {
	b.Header().UpdateCommand(f)
}

// PrimaryBusNumber returns the number of the bus on the upstream side of
// the bridge, bits 0-7 of the register at 0x18.
func (b *BridgeHeader) PrimaryBusNumber() uint8 {
	return uint8(b.access.Read(b.address, 0x18))
}

// SecondaryBusNumber returns the number of the bus immediately downstream
// of the bridge, bits 8-15 of the register at 0x18.
func (b *BridgeHeader) SecondaryBusNumber() uint8 {
	return uint8(b.access.Read(b.address, 0x18) >> 8)
}

// SubordinateBusNumber returns the highest bus number reachable downstream
// of the bridge, bits 16-23 of the register at 0x18.
func (b *BridgeHeader) SubordinateBusNumber() uint8 {
	return uint8(b.access.Read(b.address, 0x18) >> 16)
}
