package sysfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sercanarga/pciconf/pci"
)

// writeConfig lays out one function's config file in a fake sysfs tree.
func writeConfig(t *testing.T, root string, address pci.PciAddress, data []byte) {
	t.Helper()
	devPath := filepath.Join(root, address.SysfsName())
	if err := os.MkdirAll(devPath, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(devPath, "config"), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAccessRead(t *testing.T) {
	root := t.TempDir()
	addr := pci.NewPciAddress(0, 3, 0, 0)
	writeConfig(t, root, addr, []byte{0x86, 0x80, 0x4d, 0x14, 0x07, 0x00, 0x10, 0x00})

	a := NewAccessWithPath(root)
	if got := a.Read(addr, 0x00); got != 0x144d8086 {
		t.Errorf("Read(0x00) = %08x, want 144d8086", got)
	}
	if got := a.Read(addr, 0x04); got != 0x00100007 {
		t.Errorf("Read(0x04) = %08x, want 00100007", got)
	}
}

func TestAccessReadAbsentFunction(t *testing.T) {
	a := NewAccessWithPath(t.TempDir())
	// An empty slot reads as all-ones, same as hardware.
	if got := a.Read(pci.NewPciAddress(0, 9, 0, 0), 0x00); got != 0xffffffff {
		t.Errorf("Read() = %08x, want ffffffff", got)
	}
}

func TestAccessReadPastEnd(t *testing.T) {
	root := t.TempDir()
	addr := pci.NewPciAddress(0, 3, 0, 0)
	writeConfig(t, root, addr, make([]byte, 64))

	if got := NewAccessWithPath(root).Read(addr, 0x80); got != 0xffffffff {
		t.Errorf("Read(0x80) = %08x, want ffffffff", got)
	}
}

func TestAccessWrite(t *testing.T) {
	root := t.TempDir()
	addr := pci.NewPciAddress(0, 3, 0, 0)
	writeConfig(t, root, addr, make([]byte, 64))

	a := NewAccessWithPath(root)
	a.Write(addr, 0x04, 0x00000006)

	if got := a.Read(addr, 0x04); got != 0x00000006 {
		t.Errorf("Read(0x04) after write = %08x, want 00000006", got)
	}
	// Neighbouring registers stay untouched.
	if got := a.Read(addr, 0x00); got != 0 {
		t.Errorf("Read(0x00) = %08x, want 00000000", got)
	}
}

func TestAccessWriteAbsentFunction(t *testing.T) {
	a := NewAccessWithPath(t.TempDir())
	// Must not panic; failures are silent under the access contract.
	a.Write(pci.NewPciAddress(0, 9, 0, 0), 0x04, 0x6)
}
