package pci

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// capEntry packs one capability list entry: ID in bits 0-7, next pointer
// in bits 8-15, capability-specific extension in bits 16-31.
func capEntry(id CapabilityID, next uint16, extension uint16) uint32 {
	return uint32(extension)<<16 | uint32(next)<<8 | uint32(id)
}

func TestCapabilityChainWalk(t *testing.T) {
	access := newMockAccess()
	access.regs[0x34] = capEntry(CapIDMSI, 0x40, 0x0000)
	access.regs[0x40] = capEntry(CapIDNull, 0x50, 0x0000) // null entry, skipped
	access.regs[0x50] = capEntry(CapIDMSIX, 0x00, 0x0007)

	var ids []CapabilityID
	var offsets []uint16
	it := newCapabilityIterator(testAddr, 0x34, access)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, c.ID)
		offsets = append(offsets, c.Address.Offset)
	}

	// The null capability at 0x40 is skipped without ending the walk.
	if diff := cmp.Diff([]CapabilityID{CapIDMSI, CapIDMSIX}, ids); diff != "" {
		t.Errorf("capability IDs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint16{0x34, 0x50}, offsets); diff != "" {
		t.Errorf("capability offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestCapabilityChainEmpty(t *testing.T) {
	it := newCapabilityIterator(testAddr, 0, newMockAccess())
	if _, ok := it.Next(); ok {
		t.Error("Next() on an empty chain should report exhaustion")
	}
}

func TestCapabilityChainUnknownID(t *testing.T) {
	access := newMockAccess()
	access.regs[0x60] = capEntry(CapabilityID(0xc9), 0x00, 0x0000)

	it := newCapabilityIterator(testAddr, 0x60, access)
	c, ok := it.Next()
	if !ok {
		t.Fatal("unknown capability should still be yielded")
	}
	if c.ID != 0xc9 {
		t.Errorf("ID = %02x, want c9", uint8(c.ID))
	}
	if c.MSI != nil || c.MSIX != nil {
		t.Error("unknown capability should carry no decoded structure")
	}
	if _, ok := it.Next(); ok {
		t.Error("chain should be exhausted after the single entry")
	}
}

func TestCapabilityDecodedPayloads(t *testing.T) {
	access := newMockAccess()
	access.regs[0x40] = capEntry(CapIDMSI, 0x50, 0x0186) // 64-bit, pvm, 8 messages
	access.regs[0x50] = capEntry(CapIDMSIX, 0x00, 0x000f)
	access.regs[0x54] = 0x00002003
	access.regs[0x58] = 0x00003001

	it := newCapabilityIterator(testAddr, 0x40, access)

	c, ok := it.Next()
	if !ok || c.MSI == nil {
		t.Fatal("first capability should be a decoded MSI")
	}
	if !c.MSI.Is64Bit() || !c.MSI.HasPerVectorMasking() {
		t.Error("MSI control decode lost the 64-bit or masking bits")
	}
	if c.MSI.MultipleMessageCapable() != MSIMessages8 {
		t.Errorf("MSI capable = %v, want 8", c.MSI.MultipleMessageCapable())
	}

	c, ok = it.Next()
	if !ok || c.MSIX == nil {
		t.Fatal("second capability should be a decoded MSI-X")
	}
	if c.MSIX.TableSize() != 16 {
		t.Errorf("MSI-X table size = %d, want 16", c.MSIX.TableSize())
	}
}

func TestEndpointCapabilities(t *testing.T) {
	access := newMockAccess()
	access.setHeaderType(HeaderTypeEndpoint, false)
	access.regs[0x04] = 0x0010 << 16 // status: capability list present
	access.regs[0x34] = 0x40         // capability pointer
	access.regs[0x40] = capEntry(CapIDPCIExpress, 0x00, 0x0002)
	e := EndpointFromHeader(NewHeader(testAddr, access))

	if got := e.CapabilityPointer(); got != 0x40 {
		t.Fatalf("CapabilityPointer() = %02x, want 40", got)
	}

	c, ok := e.Capabilities().Next()
	if !ok {
		t.Fatal("expected one capability")
	}
	if c.ID != CapIDPCIExpress {
		t.Errorf("ID = %v, want PCI Express", c.ID)
	}
}

func TestCapabilityPointerGatedOnStatus(t *testing.T) {
	access := newMockAccess()
	access.setHeaderType(HeaderTypeEndpoint, false)
	access.regs[0x34] = 0x40 // pointer present, but status bit 4 clear
	e := EndpointFromHeader(NewHeader(testAddr, access))

	if got := e.CapabilityPointer(); got != 0 {
		t.Errorf("CapabilityPointer() = %02x, want 0 without the status bit", got)
	}
	if _, ok := e.Capabilities().Next(); ok {
		t.Error("capability walk should be empty without the status bit")
	}
}

func TestCapabilityIDNames(t *testing.T) {
	tests := []struct {
		id   CapabilityID
		want string
	}{
		{CapIDPowerManagement, "Power Management"},
		{CapIDMSI, "MSI"},
		{CapIDPCIExpress, "PCI Express"},
		{CapIDMSIX, "MSI-X"},
		{CapabilityID(0xc9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("CapabilityID(%02x).String() = %q, want %q", uint8(tt.id), got, tt.want)
		}
	}
}
