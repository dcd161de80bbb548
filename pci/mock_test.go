package pci

// mockAccess simulates one function's configuration space as a sparse
// register file. Offsets registered through setBAR get hardware BAR write
// semantics: only the implemented address bits latch, and the low control
// bits are hardwired, so the all-ones sizing probe reads back the size
// mask the way real silicon does.
type mockAccess struct {
	regs     map[uint16]uint32
	barMask  map[uint16]uint32
	barFlags map[uint16]uint32
}

func newMockAccess() *mockAccess {
	return &mockAccess{
		regs:     make(map[uint16]uint32),
		barMask:  make(map[uint16]uint32),
		barFlags: make(map[uint16]uint32),
	}
}

func (m *mockAccess) Read(_ PciAddress, offset uint16) uint32 {
	return m.regs[offset]
}

func (m *mockAccess) Write(_ PciAddress, offset uint16, value uint32) {
	if mask, ok := m.barMask[offset]; ok {
		m.regs[offset] = value&mask | m.barFlags[offset]
		return
	}
	// Unimplemented BAR slots ignore writes and read back zero, which is
	// what the sizing probe relies on to detect absence.
	if offset >= 0x10 && offset <= 0x24 && m.regs[offset] == 0 {
		return
	}
	m.regs[offset] = value
}

// setBAR installs a BAR register at offset holding address, with size
// bytes implemented and the given hardwired low flag bits.
func (m *mockAccess) setBAR(offset uint16, address, size, flags uint32) {
	mask := ^(size - 1)
	m.barMask[offset] = mask
	m.barFlags[offset] = flags
	m.regs[offset] = address&mask | flags
}

// setHeaderType installs the register at 0x0C with the given header type
// byte (bits 16-22) and multi-function flag (bit 23).
func (m *mockAccess) setHeaderType(t HeaderType, multiFunction bool) {
	value := uint32(t) << 16
	if multiFunction {
		value |= 1 << 23
	}
	m.regs[0x0c] = value
}
