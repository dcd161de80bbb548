package pci

import "fmt"

// DevselTiming is the slowest time that a device will assert DEVSEL# for
// any bus command except configuration space reads and writes. PCIe
// hardwires this to Fast.
type DevselTiming uint8

const (
	DevselFast   DevselTiming = 0x0
	DevselMedium DevselTiming = 0x1
	DevselSlow   DevselTiming = 0x2
)

// String returns the timing category name.
func (t DevselTiming) String() string {
	switch t {
	case DevselFast:
		return "fast"
	case DevselMedium:
		return "medium"
	case DevselSlow:
		return "slow"
	default:
		return fmt.Sprintf("DevselTiming(%d)", uint8(t))
	}
}

// DevselTimingFromBits maps the two status register timing bits to a
// DevselTiming. The value 0x3 is reserved and reported as an error.
func DevselTimingFromBits(value uint8) (DevselTiming, error) {
	switch value {
	case 0x0, 0x1, 0x2:
		return DevselTiming(value), nil
	default:
		return 0, fmt.Errorf("no DEVSEL timing matches the value %d", value)
	}
}

// CommandRegister is the 16-bit command register at offset 0x04.
type CommandRegister uint16

// Command register bits.
const (
	CommandIOEnable                  CommandRegister = 1 << 0
	CommandMemoryEnable              CommandRegister = 1 << 1
	CommandBusMasterEnable           CommandRegister = 1 << 2
	CommandSpecialCycleEnable        CommandRegister = 1 << 3
	CommandMemoryWriteAndInvalidate  CommandRegister = 1 << 4
	CommandVGAPaletteSnoop           CommandRegister = 1 << 5
	CommandParityErrorResponse       CommandRegister = 1 << 6
	CommandIDSELStepWaitCycleControl CommandRegister = 1 << 7
	CommandSERREnable                CommandRegister = 1 << 8
	CommandFastBackToBackEnable      CommandRegister = 1 << 9
	CommandInterruptDisable          CommandRegister = 1 << 10
)

// Has reports whether all bits in mask are set.
func (c CommandRegister) Has(mask CommandRegister) bool {
	return c&mask == mask
}

// StatusRegister is the 16-bit status register at offset 0x06.
type StatusRegister uint16

// ParityErrorDetected is set whenever the device detects a parity error,
// even if parity error handling is disabled.
func (s StatusRegister) ParityErrorDetected() bool {
	return s&(1<<15) != 0
}

// SignalledSystemError is set whenever the device asserts SERR#.
func (s StatusRegister) SignalledSystemError() bool {
	return s&(1<<14) != 0
}

// ReceivedMasterAbort is set by a master device whenever its transaction
// (except for Special Cycle transactions) is terminated with Master-Abort.
func (s StatusRegister) ReceivedMasterAbort() bool {
	return s&(1<<13) != 0
}

// ReceivedTargetAbort is set by a master device whenever its transaction is
// terminated with Target-Abort.
func (s StatusRegister) ReceivedTargetAbort() bool {
	return s&(1<<12) != 0
}

// SignalledTargetAbort is set whenever a target device terminates a
// transaction with Target-Abort.
func (s StatusRegister) SignalledTargetAbort() bool {
	return s&(1<<11) != 0
}

// DevselTiming returns the DEVSEL timing bits (9-10). Always Fast on PCIe.
func (s StatusRegister) DevselTiming() (DevselTiming, error) {
	return DevselTimingFromBits(uint8(s>>9) & 0x3)
}

// MasterDataParityError is set only when the bus agent asserted PERR# on a
// read or observed PERR# on a write, it acted as the bus master for the
// operation in which the error occurred, and the parity error response bit
// of the command register is set.
func (s StatusRegister) MasterDataParityError() bool {
	return s&(1<<8) != 0
}

// FastBackToBackCapable reports whether the device can accept fast
// back-to-back transactions that are not from the same agent. Always false
// on PCIe.
func (s StatusRegister) FastBackToBackCapable() bool {
	return s&(1<<7) != 0
}

// Capable66MHz reports whether the device is capable of running at 66 MHz.
// Always false on PCIe.
func (s StatusRegister) Capable66MHz() bool {
	return s&(1<<5) != 0
}

// HasCapabilityList reports whether the function implements the pointer to
// a capabilities linked list at offset 0x34. Always true on PCIe.
func (s StatusRegister) HasCapabilityList() bool {
	return s&(1<<4) != 0
}

// InterruptStatus reports the state of the function's INTx# signal. The
// signal is only asserted when the command register's interrupt disable bit
// is clear.
func (s StatusRegister) InterruptStatus() bool {
	return s&(1<<3) != 0
}
