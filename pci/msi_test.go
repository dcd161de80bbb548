package pci

import "testing"

// msiAt installs an MSI capability at offset with the given message control
// word and returns its decoded form.
func msiAt(access *mockAccess, offset uint16, control uint16) *MSICapability {
	access.regs[offset] = capEntry(CapIDMSI, 0x00, control)
	addr := CapabilityAddress{Address: testAddr, Offset: offset}
	return newMSICapability(addr, control, access)
}

func TestMSIControlDecode(t *testing.T) {
	tests := []struct {
		name    string
		control uint16
		pvm     bool
		is64    bool
		capable MultipleMessageSupport
	}{
		{"minimal", 0x0000, false, false, MSIMessages1},
		{"64-bit only", 0x0080, false, true, MSIMessages1},
		{"per-vector masking", 0x0100, false, false, MSIMessages1},
		{"4 messages", 0x0004, false, false, MSIMessages4},
		{"everything", 0x018a, true, true, MSIMessages32},
	}

	for _, tt := range tests {
		m := msiAt(newMockAccess(), 0x40, tt.control)
		if got := m.HasPerVectorMasking(); got != tt.pvm {
			t.Errorf("%s: HasPerVectorMasking() = %v, want %v", tt.name, got, tt.pvm)
		}
		if got := m.Is64Bit(); got != tt.is64 {
			t.Errorf("%s: Is64Bit() = %v, want %v", tt.name, got, tt.is64)
		}
		if got := m.MultipleMessageCapable(); got != tt.capable {
			t.Errorf("%s: MultipleMessageCapable() = %v, want %v", tt.name, got, tt.capable)
		}
	}
}

func TestMultipleMessageFromBits(t *testing.T) {
	if got := multipleMessageFromBits(0b101); got != MSIMessages32 {
		t.Errorf("multipleMessageFromBits(101) = %v, want 32", got)
	}
	// The encodings 0b110 and 0b111 are reserved and fall back to one message.
	for _, bits := range []uint8{0b110, 0b111} {
		if got := multipleMessageFromBits(bits); got != MSIMessages1 {
			t.Errorf("multipleMessageFromBits(%03b) = %v, want 1", bits, got)
		}
	}
}

func TestMultipleMessageCount(t *testing.T) {
	for m, want := range map[MultipleMessageSupport]int{
		MSIMessages1:  1,
		MSIMessages4:  4,
		MSIMessages32: 32,
	} {
		if got := m.Count(); got != want {
			t.Errorf("Count() = %d, want %d", got, want)
		}
	}
}

func TestMSIEnable(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0000)

	if m.IsEnabled() {
		t.Error("IsEnabled() = true on a fresh capability")
	}
	m.SetEnabled(true)
	if !m.IsEnabled() {
		t.Error("IsEnabled() = false after SetEnabled(true)")
	}
	if access.regs[0x40]&(1<<16) == 0 {
		t.Error("enable bit 16 not set in the control word")
	}
	// The ID and next pointer bytes must survive the read-modify-write.
	if uint8(access.regs[0x40]) != uint8(CapIDMSI) {
		t.Error("capability ID clobbered by SetEnabled")
	}
	m.SetEnabled(false)
	if m.IsEnabled() {
		t.Error("IsEnabled() = true after SetEnabled(false)")
	}
}

func TestMSIMultipleMessageEnableClamped(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0004) // capable of 4 messages

	m.SetMultipleMessageEnable(MSIMessages32)

	// The request beyond the capable count is clamped down to it.
	if got := m.MultipleMessageEnable(); got != MSIMessages4 {
		t.Errorf("MultipleMessageEnable() = %v, want 4", got)
	}
	if got := access.regs[0x40] >> 20 & 0x7; got != uint32(MSIMessages4) {
		t.Errorf("enable field = %03b, want %03b", got, uint32(MSIMessages4))
	}
}

func TestMSIMultipleMessageEnableWithinCapable(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0008) // capable of 16 messages

	m.SetMultipleMessageEnable(MSIMessages2)
	if got := m.MultipleMessageEnable(); got != MSIMessages2 {
		t.Errorf("MultipleMessageEnable() = %v, want 2", got)
	}
}

func TestMSIMessageInfo32Bit(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0000)

	m.SetMessageInfo(0xfee00000, 0x4031)

	if got := access.regs[0x44]; got != 0xfee00000 {
		t.Errorf("message address = %08x, want fee00000", got)
	}
	if got := access.regs[0x48]; got != 0x4031 {
		t.Errorf("message data = %08x, want 00004031", got)
	}
}

func TestMSIMessageInfo64Bit(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0080)

	m.SetMessageInfo(0x1_fee00000, 0x4031)

	if got := access.regs[0x44]; got != 0xfee00000 {
		t.Errorf("message address low = %08x, want fee00000", got)
	}
	if got := access.regs[0x48]; got != 0x1 {
		t.Errorf("message address high = %08x, want 00000001", got)
	}
	if got := access.regs[0x4c]; got != 0x4031 {
		t.Errorf("message data = %08x, want 00004031", got)
	}
}

func TestMSIMessageInfoLAPIC(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0000)

	m.SetMessageInfoLAPIC(0xfee00000, 0x31, TriggerLevelAssert)

	// Vector in bits 0-7, trigger mode in bits 14-15.
	if got := access.regs[0x48]; got != 0x31|0b11<<14 {
		t.Errorf("message data = %08x, want %08x", got, 0x31|0b11<<14)
	}
}

func TestMSIMaskAndPending(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0180) // 64-bit with per-vector masking
	access.regs[0x54] = 0x00000005   // pending register

	m.SetMessageMask(0xf0)
	if got := access.regs[0x50]; got != 0xf0 {
		t.Errorf("mask register = %08x, want 000000f0", got)
	}
	if got := m.MessageMask(); got != 0xf0 {
		t.Errorf("MessageMask() = %08x, want 000000f0", got)
	}
	if got := m.Pending(); got != 0x5 {
		t.Errorf("Pending() = %08x, want 00000005", got)
	}
}

func TestMSIMaskAbsentWithoutMasking(t *testing.T) {
	access := newMockAccess()
	m := msiAt(access, 0x40, 0x0000) // neither 64-bit nor masking
	access.regs[0x50] = 0xdeadbeef
	access.regs[0x54] = 0xdeadbeef

	// The mask and pending registers do not exist on this device, so the
	// accessors return zero and writes go nowhere.
	if got := m.MessageMask(); got != 0 {
		t.Errorf("MessageMask() = %08x, want 0", got)
	}
	if got := m.Pending(); got != 0 {
		t.Errorf("Pending() = %08x, want 0", got)
	}
	m.SetMessageMask(0xff)
	if got := access.regs[0x50]; got != 0xdeadbeef {
		t.Errorf("register = %08x after no-op write, want deadbeef", got)
	}
}
