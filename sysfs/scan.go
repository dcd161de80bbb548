package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sercanarga/pciconf/pci"
)

// Device holds the identity attributes sysfs publishes for one function.
type Device struct {
	Address   pci.PciAddress `json:"address"`
	VendorID  uint16         `json:"vendor_id"`
	DeviceID  uint16         `json:"device_id"`
	ClassCode uint32         `json:"class_code"` // base<<16 | sub<<8 | prog_if
	Revision  uint8          `json:"revision"`
	Driver    string         `json:"driver,omitempty"`
}

// BaseClass returns the base class byte of the class code.
func (d *Device) BaseClass() pci.BaseClass {
	return uint8(d.ClassCode >> 16)
}

// SubClass returns the subclass byte of the class code.
func (d *Device) SubClass() pci.SubClass {
	return uint8(d.ClassCode >> 8)
}

// ProgIF returns the programming interface byte of the class code.
func (d *Device) ProgIF() pci.Interface {
	return uint8(d.ClassCode)
}

// Scanner enumerates PCI functions from the sysfs tree.
type Scanner struct {
	basePath string
}

// NewScanner returns a Scanner over the standard sysfs tree.
func NewScanner() *Scanner {
	return &Scanner{basePath: BasePath}
}

// NewScannerWithPath returns a Scanner over an alternate tree root, for
// tests.
func NewScannerWithPath(basePath string) *Scanner {
	return &Scanner{basePath: basePath}
}

// Addresses returns the addresses of all functions in the tree, sorted in
// address order.
func (s *Scanner) Addresses() ([]pci.PciAddress, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sysfs: %w", err)
	}

	var addrs []pci.PciAddress
	for _, entry := range entries {
		addr, err := pci.ParseAddress(entry.Name())
		if err != nil {
			continue
		}
		addrs = append(addrs, addr)
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs, nil
}

// Scan enumerates all functions and reads their identity attributes.
// Functions whose attributes cannot be read are skipped.
func (s *Scanner) Scan() ([]Device, error) {
	addrs, err := s.Addresses()
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, addr := range addrs {
		dev, err := s.ReadDevice(addr)
		if err != nil {
			continue
		}
		devices = append(devices, *dev)
	}
	return devices, nil
}

// ReadDevice reads one function's identity attributes.
func (s *Scanner) ReadDevice(address pci.PciAddress) (*Device, error) {
	devPath := filepath.Join(s.basePath, address.SysfsName())

	dev := &Device{Address: address}

	vendor, err := readHexAttr(devPath, "vendor", 16)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor ID: %w", err)
	}
	dev.VendorID = uint16(vendor)

	device, err := readHexAttr(devPath, "device", 16)
	if err != nil {
		return nil, fmt.Errorf("failed to read device ID: %w", err)
	}
	dev.DeviceID = uint16(device)

	if classCode, err := readHexAttr(devPath, "class", 32); err == nil {
		dev.ClassCode = uint32(classCode) & 0xffffff
	}
	if rev, err := readHexAttr(devPath, "revision", 8); err == nil {
		dev.Revision = uint8(rev)
	}

	// The driver attribute is a symlink into the driver tree.
	if link, err := os.Readlink(filepath.Join(devPath, "driver")); err == nil {
		dev.Driver = filepath.Base(link)
	}

	return dev, nil
}

// readHexAttr reads a sysfs attribute holding one hex value ("0x8086\n").
func readHexAttr(devPath, name string, bits int) (uint64, error) {
	data, err := os.ReadFile(filepath.Join(devPath, name))
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 0, bits)
}
