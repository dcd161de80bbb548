package pci

// ConfigRegionAccess is the mechanism by which configuration space is
// reached: memory-mapped ECAM, the legacy I/O port pair, a hypervisor
// interface, or the sysfs backend in the sibling sysfs package. It is
// supplied by the caller and injected into every view in this package.
//
// Offsets are byte offsets into the function's configuration region, and
// only DWORD-granular access is defined: the low two bits of offset must be
// zero. Callers must guarantee that the address/offset pair is valid for
// the underlying hardware; implementations are not expected to detect or
// report violations, and what happens on an invalid access is between the
// caller and the platform.
type ConfigRegionAccess interface {
	// Read returns the 32-bit register at offset within the function's
	// configuration region.
	Read(address PciAddress, offset uint16) uint32

	// Write stores value to the 32-bit register at offset within the
	// function's configuration region.
	Write(address PciAddress, offset uint16, value uint32)
}
