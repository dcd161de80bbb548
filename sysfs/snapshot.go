package sysfs

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sercanarga/pciconf/pci"
)

// Configuration space sizes: 4 KiB for PCIe extended space, 256 bytes for
// the legacy region. Unprivileged sysfs reads return only the legacy
// region.
const (
	SnapshotSize       = 4096
	SnapshotLegacySize = 256
)

// Snapshot is a point-in-time copy of one function's configuration space.
// It implements pci.ConfigRegionAccess over the copied bytes, so the pci
// package's decoders can run against it without touching hardware — useful
// for dumps, captured spaces, and tests. A snapshot is single-function:
// the address argument of Read and Write is ignored.
//
// BAR sizing against a snapshot is meaningless (the probe needs live
// hardware to report the mask); everything else decodes faithfully.
type Snapshot struct {
	Data []byte
}

// NewSnapshot wraps raw configuration space bytes.
func NewSnapshot(data []byte) *Snapshot {
	return &Snapshot{Data: data}
}

// ReadSnapshot copies a function's configuration space from sysfs.
func (s *Scanner) ReadSnapshot(address pci.PciAddress) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, address.SysfsName(), "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config space: %w", err)
	}
	return NewSnapshot(data), nil
}

// Read returns the 32-bit register at offset, or all-ones past the end of
// the snapshot.
func (sn *Snapshot) Read(_ pci.PciAddress, offset uint16) uint32 {
	if int(offset)+4 > len(sn.Data) {
		return 0xffffffff
	}
	return binary.LittleEndian.Uint32(sn.Data[offset:])
}

// Write stores the 32-bit register at offset within the snapshot. Writes
// past the end are discarded.
func (sn *Snapshot) Write(_ pci.PciAddress, offset uint16, value uint32) {
	if int(offset)+4 > len(sn.Data) {
		return
	}
	binary.LittleEndian.PutUint32(sn.Data[offset:], value)
}

// HexDump renders up to maxBytes of the snapshot as an offset-prefixed hex
// dump. maxBytes <= 0 dumps the whole snapshot.
func (sn *Snapshot) HexDump(maxBytes int) string {
	if maxBytes <= 0 || maxBytes > len(sn.Data) {
		maxBytes = len(sn.Data)
	}

	var sb strings.Builder
	for i := 0; i < maxBytes; i += 16 {
		fmt.Fprintf(&sb, "%03x: ", i)
		for j := 0; j < 16 && i+j < maxBytes; j++ {
			fmt.Fprintf(&sb, "%02x ", sn.Data[i+j])
			if j == 7 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
