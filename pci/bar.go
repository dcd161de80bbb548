package pci

import (
	"errors"
	"fmt"
)

// BAR kind constants.
const (
	BARKindIO    = "io"
	BARKindMem32 = "mem32"
	BARKindMem64 = "mem64"
)

// Errors returned by EndpointHeader.BAR and EndpointHeader.WriteBAR.
var (
	// ErrNoSuchBAR means the addressed slot does not hold an implemented BAR.
	ErrNoSuchBAR = errors.New("no BAR in this slot")

	// ErrInvalidValue means the value does not fit the BAR being written.
	ErrInvalidValue = errors.New("value does not fit in a 32-bit BAR")

	// ErrReservedBARType means the BAR's memory type bits hold one of the
	// reserved encodings (01 or 11), which a conformant device never reports.
	ErrReservedBARType = errors.New("BAR memory type bits are reserved")
)

// BAR is a decoded Base Address Register. Kind selects which fields are
// meaningful: memory BARs carry Address, Size and Prefetchable, I/O BARs
// carry only Port. Size is always a power of two and is recovered by the
// sizing probe in EndpointHeader.BAR.
type BAR struct {
	Slot         int    `json:"slot"`
	Kind         string `json:"kind"`
	Address      uint64 `json:"address,omitempty"`
	Size         uint64 `json:"size,omitempty"`
	Prefetchable bool   `json:"prefetchable,omitempty"`
	Port         uint32 `json:"port,omitempty"`
}

// IsIO reports whether this is an I/O BAR.
func (b *BAR) IsIO() bool {
	return b.Kind == BARKindIO
}

// IsMemory reports whether this is a 32- or 64-bit memory BAR.
func (b *BAR) IsMemory() bool {
	return b.Kind == BARKindMem32 || b.Kind == BARKindMem64
}

// SizeHuman renders the BAR size with a binary unit suffix.
func (b *BAR) SizeHuman() string {
	switch {
	case b.Size >= 1<<30:
		return fmt.Sprintf("%d GB", b.Size>>30)
	case b.Size >= 1<<20:
		return fmt.Sprintf("%d MB", b.Size>>20)
	case b.Size >= 1<<10:
		return fmt.Sprintf("%d KB", b.Size>>10)
	default:
		return fmt.Sprintf("%d B", b.Size)
	}
}

// String returns a one-line summary of the BAR.
func (b *BAR) String() string {
	if b.IsIO() {
		return fmt.Sprintf("BAR%d: io at 0x%x", b.Slot, b.Port)
	}
	pf := ""
	if b.Prefetchable {
		pf = " [prefetchable]"
	}
	return fmt.Sprintf("BAR%d: %s at 0x%x, size %s%s", b.Slot, b.Kind, b.Address, b.SizeHuman(), pf)
}
