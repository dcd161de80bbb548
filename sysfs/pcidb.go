package sysfs

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// PCIDB holds vendor and device name mappings parsed from pci.ids.
type PCIDB struct {
	Vendors map[uint16]string // vendor ID -> name
	Devices map[uint32]string // vendor<<16 | device -> name
}

// pci.ids search paths, same order as lspci.
var pciIDPaths = []string{
	"/usr/share/hwdata/pci.ids",
	"/usr/share/misc/pci.ids",
	"/usr/share/pci.ids",
}

// LoadPCIDB loads the PCI ID database from the system. A missing database
// yields an empty one; lookups then return empty strings.
func LoadPCIDB() *PCIDB {
	for _, path := range pciIDPaths {
		if db, err := ParsePCIIDs(path); err == nil {
			return db
		}
	}
	return &PCIDB{
		Vendors: make(map[uint16]string),
		Devices: make(map[uint32]string),
	}
}

// VendorName returns the vendor name, or "" if unknown.
func (db *PCIDB) VendorName(vendorID uint16) string {
	return db.Vendors[vendorID]
}

// DeviceName returns the device name, or "" if unknown.
func (db *PCIDB) DeviceName(vendorID, deviceID uint16) string {
	return db.Devices[uint32(vendorID)<<16|uint32(deviceID)]
}

// ParsePCIIDs parses a pci.ids file:
//
//	VVVV  Vendor Name
//	\tDDDD  Device Name
//	\t\tSSSS ssss  Subsystem Name   (skipped)
//	C cc  Class Name               (stops the parse)
func ParsePCIIDs(path string) (*PCIDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db := &PCIDB{
		Vendors: make(map[uint16]string),
		Devices: make(map[uint32]string),
	}

	var currentVendor uint16
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()

		if len(line) == 0 || line[0] == '#' {
			continue
		}

		// Class definitions follow the vendor list; nothing below is needed.
		if strings.HasPrefix(line, "C ") {
			break
		}

		if strings.HasPrefix(line, "\t\t") {
			continue // subsystem line
		}

		if line[0] == '\t' {
			id, name, ok := splitIDLine(line[1:])
			if ok {
				db.Devices[uint32(currentVendor)<<16|uint32(id)] = name
			}
			continue
		}

		id, name, ok := splitIDLine(line)
		if ok {
			currentVendor = id
			db.Vendors[id] = name
		}
	}

	return db, scanner.Err()
}

// splitIDLine splits "VVVV  Some Name" into the hex ID and the name.
func splitIDLine(line string) (uint16, string, bool) {
	if len(line) < 6 {
		return 0, "", false
	}
	id, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return 0, "", false
	}
	return uint16(id), strings.TrimSpace(line[4:]), true
}
