// Package sysfs supplies a pci.ConfigRegionAccess backed by the Linux
// sysfs PCI tree, plus enumeration helpers built on the same tree. It is
// one concrete host access mechanism; the pci package itself works with
// any.
package sysfs

import (
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/sercanarga/pciconf/pci"
)

// BasePath is the root of the sysfs PCI device tree.
const BasePath = "/sys/bus/pci/devices"

// Access reads and writes configuration space through the per-device
// `config` file sysfs exposes. Reads of absent functions or failed reads
// return all-ones, which is what hardware reports for an empty slot, so
// enumeration code built on vendor ID probing behaves the same way it
// would on ECAM. Write errors are discarded; writes to config space
// require root and an in-range offset, both caller responsibilities under
// the access contract.
type Access struct {
	basePath string
}

// NewAccess returns an Access over the standard sysfs tree.
func NewAccess() *Access {
	return &Access{basePath: BasePath}
}

// NewAccessWithPath returns an Access over an alternate tree root, for
// tests.
func NewAccessWithPath(basePath string) *Access {
	return &Access{basePath: basePath}
}

func (a *Access) configPath(address pci.PciAddress) string {
	return filepath.Join(a.basePath, address.SysfsName(), "config")
}

// Read returns the 32-bit register at offset, or all-ones on any failure.
func (a *Access) Read(address pci.PciAddress, offset uint16) uint32 {
	fd, err := unix.Open(a.configPath(address), unix.O_RDONLY, 0)
	if err != nil {
		return 0xffffffff
	}
	defer unix.Close(fd)

	var buf [4]byte
	n, err := unix.Pread(fd, buf[:], int64(offset))
	if err != nil || n != len(buf) {
		return 0xffffffff
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

// Write stores the 32-bit register at offset. Failures are silent; use
// Read to confirm the effect where it matters.
func (a *Access) Write(address pci.PciAddress, offset uint16, value uint32) {
	fd, err := unix.Open(a.configPath(address), unix.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	buf := [4]byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)}
	unix.Pwrite(fd, buf[:], int64(offset))
}
