package pci

import "fmt"

// CapabilityID is the one-byte capability ID at the head of each entry in
// the capability list.
type CapabilityID uint8

// Standard PCI capability IDs.
const (
	CapIDNull              CapabilityID = 0x00
	CapIDPowerManagement   CapabilityID = 0x01
	CapIDAGP               CapabilityID = 0x02
	CapIDVPD               CapabilityID = 0x03
	CapIDSlotID            CapabilityID = 0x04
	CapIDMSI               CapabilityID = 0x05
	CapIDCompactPCIHotSwap CapabilityID = 0x06
	CapIDPCIX              CapabilityID = 0x07
	CapIDHyperTransport    CapabilityID = 0x08
	CapIDVendorSpecific    CapabilityID = 0x09
	CapIDDebugPort         CapabilityID = 0x0A
	CapIDCompactPCI        CapabilityID = 0x0B
	CapIDPCIHotPlug        CapabilityID = 0x0C
	CapIDBridgeSubsysVID   CapabilityID = 0x0D
	CapIDAGP8x             CapabilityID = 0x0E
	CapIDSecureDevice      CapabilityID = 0x0F
	CapIDPCIExpress        CapabilityID = 0x10
	CapIDMSIX              CapabilityID = 0x11
	CapIDSATADataIndex     CapabilityID = 0x12
	CapIDAdvancedFeatures  CapabilityID = 0x13
	CapIDEnhancedAlloc     CapabilityID = 0x14
	CapIDFlatteningPortal  CapabilityID = 0x15
)

// String returns the human-readable capability name.
func (id CapabilityID) String() string {
	switch id {
	case CapIDPowerManagement:
		return "Power Management"
	case CapIDAGP:
		return "AGP"
	case CapIDVPD:
		return "Vital Product Data"
	case CapIDSlotID:
		return "Slot Identification"
	case CapIDMSI:
		return "MSI"
	case CapIDCompactPCIHotSwap:
		return "CompactPCI HotSwap"
	case CapIDPCIX:
		return "PCI-X"
	case CapIDHyperTransport:
		return "HyperTransport"
	case CapIDVendorSpecific:
		return "Vendor Specific"
	case CapIDDebugPort:
		return "Debug Port"
	case CapIDCompactPCI:
		return "CompactPCI"
	case CapIDPCIHotPlug:
		return "PCI Hot-Plug"
	case CapIDBridgeSubsysVID:
		return "Bridge Subsystem VID"
	case CapIDAGP8x:
		return "AGP 8x"
	case CapIDSecureDevice:
		return "Secure Device"
	case CapIDPCIExpress:
		return "PCI Express"
	case CapIDMSIX:
		return "MSI-X"
	case CapIDSATADataIndex:
		return "SATA Data/Index"
	case CapIDAdvancedFeatures:
		return "Advanced Features"
	case CapIDEnhancedAlloc:
		return "Enhanced Allocation"
	case CapIDFlatteningPortal:
		return "Flattening Portal Bridge"
	default:
		return "Unknown"
	}
}

// CapabilityAddress locates one capability structure: the owning function
// and the byte offset of the structure within its configuration space.
type CapabilityAddress struct {
	Address PciAddress
	Offset  uint16
}

// String formats the location as "SSSS-BB:DD.F, offset: OO".
func (a CapabilityAddress) String() string {
	return fmt.Sprintf("%s, offset: %02x", a.Address, a.Offset)
}

// Capability is one entry of the capability list, keyed by its raw ID so
// unrecognized capabilities are preserved rather than dropped. MSI and
// MSI-X entries additionally carry their decoded structures; every other
// ID carries only its location.
type Capability struct {
	ID      CapabilityID
	Address CapabilityAddress

	// MSI is non-nil when ID is CapIDMSI.
	MSI *MSICapability
	// MSIX is non-nil when ID is CapIDMSIX.
	MSIX *MSIXCapability
}

// CapabilityIterator walks the singly-linked capability list lazily, one
// entry per Next call. It is single-pass and not restartable.
//
// No cycle detection is performed: a device reporting a cyclic chain makes
// the walk non-terminating. The access contract already requires trusting
// the hardware, and this walker extends that trust to the chain structure.
type CapabilityIterator struct {
	address PciAddress
	offset  uint16
	access  ConfigRegionAccess
}

func newCapabilityIterator(address PciAddress, offset uint16, access ConfigRegionAccess) *CapabilityIterator {
	return &CapabilityIterator{address: address, offset: offset, access: access}
}

// Next returns the next capability in the list, or ok=false once the chain
// is exhausted. Null capability entries (ID 0x00) are skipped without
// terminating the walk; only a next pointer of zero terminates it.
func (it *CapabilityIterator) Next() (Capability, bool) {
	for {
		if it.offset == 0 {
			return Capability{}, false
		}

		data := it.access.Read(it.address, it.offset)
		id := CapabilityID(data)
		extension := uint16(data >> 16)
		addr := CapabilityAddress{Address: it.address, Offset: it.offset}

		// Advance before yielding so a malformed entry never wedges the walk.
		it.offset = uint16(data>>8) & 0xff

		switch id {
		case CapIDNull:
			continue
		case CapIDMSI:
			return Capability{ID: id, Address: addr, MSI: newMSICapability(addr, extension, it.access)}, true
		case CapIDMSIX:
			return Capability{ID: id, Address: addr, MSIX: newMSIXCapability(addr, extension, it.access)}, true
		default:
			return Capability{ID: id, Address: addr}, true
		}
	}
}
