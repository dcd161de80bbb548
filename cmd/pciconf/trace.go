package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sercanarga/pciconf/pci"
)

// tracingAccess wraps a ConfigRegionAccess and logs every register
// transaction at debug level. It adds nothing when --verbose is off, but
// makes probe sequences visible when it is.
type tracingAccess struct {
	inner pci.ConfigRegionAccess
}

// traced wraps an access in the tracer when --verbose is set.
func traced(inner pci.ConfigRegionAccess) pci.ConfigRegionAccess {
	if !verbose {
		return inner
	}
	return &tracingAccess{inner: inner}
}

func (t *tracingAccess) Read(address pci.PciAddress, offset uint16) uint32 {
	value := t.inner.Read(address, offset)
	log.Debug("config read", "address", address.String(),
		"offset", fmt.Sprintf("%#04x", offset), "value", fmt.Sprintf("%#010x", value))
	return value
}

func (t *tracingAccess) Write(address pci.PciAddress, offset uint16, value uint32) {
	log.Debug("config write", "address", address.String(),
		"offset", fmt.Sprintf("%#04x", offset), "value", fmt.Sprintf("%#010x", value))
	t.inner.Write(address, offset, value)
}
