package sysfs

import (
	"strings"
	"testing"

	"github.com/sercanarga/pciconf/pci"
)

func TestSnapshotRead(t *testing.T) {
	sn := NewSnapshot([]byte{0x86, 0x80, 0x4d, 0x14, 0x07, 0x00, 0x10, 0x00})

	var anyAddr pci.PciAddress
	if got := sn.Read(anyAddr, 0x00); got != 0x144d8086 {
		t.Errorf("Read(0x00) = %08x, want 144d8086", got)
	}
	if got := sn.Read(anyAddr, 0x04); got != 0x00100007 {
		t.Errorf("Read(0x04) = %08x, want 00100007", got)
	}
	// Past the end of the copy reads as all-ones, including a straddle.
	if got := sn.Read(anyAddr, 0x06); got != 0xffffffff {
		t.Errorf("Read(0x06) = %08x, want ffffffff", got)
	}
	if got := sn.Read(anyAddr, 0x100); got != 0xffffffff {
		t.Errorf("Read(0x100) = %08x, want ffffffff", got)
	}
}

func TestSnapshotWrite(t *testing.T) {
	sn := NewSnapshot(make([]byte, 64))

	var anyAddr pci.PciAddress
	sn.Write(anyAddr, 0x04, 0x00000146)
	if got := sn.Read(anyAddr, 0x04); got != 0x00000146 {
		t.Errorf("Read(0x04) = %08x, want 00000146", got)
	}
	sn.Write(anyAddr, 0x100, 0xdeadbeef) // out of range, discarded
	if got := sn.Read(anyAddr, 0x3c); got != 0 {
		t.Errorf("Read(0x3c) = %08x, want 00000000", got)
	}
}

func TestSnapshotDecodesHeader(t *testing.T) {
	// The snapshot plugs into the pci package like any other access.
	data := make([]byte, SnapshotLegacySize)
	copy(data[0x00:], []byte{0x86, 0x80, 0x4d, 0x14})
	data[0x0e] = 0x00 // header type: endpoint

	h := pci.NewHeader(0, NewSnapshot(data))
	vendor, device := h.ID()
	if vendor != 0x8086 || device != 0x144d {
		t.Errorf("ID() = %04x/%04x, want 8086/144d", vendor, device)
	}
	if pci.EndpointFromHeader(h) == nil {
		t.Error("snapshot-backed header should specialize as an endpoint")
	}
}

func TestHexDump(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i)
	}
	sn := NewSnapshot(data)

	dump := sn.HexDump(16)
	want := "000: 00 01 02 03 04 05 06 07  08 09 0a 0b 0c 0d 0e 0f \n"
	if dump != want {
		t.Errorf("HexDump(16) = %q, want %q", dump, want)
	}

	// maxBytes <= 0 dumps everything.
	full := sn.HexDump(0)
	if got := strings.Count(full, "\n"); got != 2 {
		t.Errorf("HexDump(0) has %d lines, want 2", got)
	}
	if !strings.Contains(full, "010: 10 11") {
		t.Error("HexDump(0) missing the second row's offset prefix")
	}
}
