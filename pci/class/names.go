package class

import (
	"fmt"

	"github.com/sercanarga/pciconf/pci"
)

// deviceTypeNames gives each category a display name.
var deviceTypeNames = map[DeviceType]string{
	LegacyVgaCompatible:    "legacy VGA-compatible device",
	LegacyNotVgaCompatible: "legacy device",

	ScsiBusController:          "SCSI bus controller",
	IdeController:              "IDE controller",
	FloppyController:           "floppy controller",
	IpiBusController:           "IPI bus controller",
	RaidController:             "RAID controller",
	AtaController:              "ATA controller",
	SataController:             "SATA controller",
	SasController:              "SAS controller",
	NvmeController:             "NVMe controller",
	UfsController:              "UFS controller",
	OtherMassStorageController: "mass storage controller",

	EthernetController:     "Ethernet controller",
	TokenRingController:    "Token Ring controller",
	FddiController:         "FDDI controller",
	AtmController:          "ATM controller",
	IsdnController:         "ISDN controller",
	WorldFipController:     "WorldFIP controller",
	PicmgController:        "PICMG controller",
	OtherNetworkController: "network controller",

	VgaCompatibleController: "VGA-compatible controller",
	XgaController:           "XGA controller",
	ThreeDController:        "3D controller",
	OtherDisplayController:  "display controller",

	VideoDevice:           "video device",
	AudioDevice:           "audio device",
	TelephonyDevice:       "telephony device",
	OtherMultimediaDevice: "multimedia device",

	RamController:         "RAM controller",
	FlashController:       "flash controller",
	OtherMemoryController: "memory controller",

	HostBridge:                  "host bridge",
	IsaBridge:                   "ISA bridge",
	EisaBridge:                  "EISA bridge",
	McaBridge:                   "MCA bridge",
	PciPciBridge:                "PCI-PCI bridge",
	PcmciaBridge:                "PCMCIA bridge",
	NuBusBridge:                 "NuBus bridge",
	CardBusBridge:               "CardBus bridge",
	RacewayBridge:               "RACEway bridge",
	SemiTransparentPciPciBridge: "semi-transparent PCI-PCI bridge",
	InfinibandPciHostBridge:     "InfiniBand-PCI host bridge",
	OtherBridgeDevice:           "bridge",

	SerialController:          "serial controller",
	ParallelPort:              "parallel port",
	MultiportSerialController: "multiport serial controller",
	Modem:                     "modem",
	GpibController:            "GPIB controller",
	SmartCard:                 "smart card controller",
	OtherCommunicationsDevice: "communications device",

	InterruptController:         "interrupt controller",
	DmaController:               "DMA controller",
	SystemTimer:                 "system timer",
	RtcController:               "RTC controller",
	GenericPciHotPlugController: "PCI hot-plug controller",
	SdHostController:            "SD host controller",
	OtherSystemPeripheral:       "system peripheral",

	KeyboardController:   "keyboard controller",
	Digitizer:            "digitizer",
	MouseController:      "mouse controller",
	ScannerController:    "scanner controller",
	GameportController:   "gameport controller",
	OtherInputController: "input controller",

	GenericDockingStation: "docking station",
	OtherDockingStation:   "docking station",

	Processor386:     "386 processor",
	Processor486:     "486 processor",
	ProcessorPentium: "Pentium processor",
	ProcessorAlpha:   "Alpha processor",
	ProcessorPowerPc: "PowerPC processor",
	ProcessorMips:    "MIPS processor",
	CoProcessor:      "co-processor",

	FirewireController:     "FireWire controller",
	AccessBusController:    "ACCESS bus controller",
	SsaBusController:       "SSA bus controller",
	UsbController:          "USB controller",
	FibreChannelController: "Fibre Channel controller",
	SmBusController:        "SMBus controller",
	InfiniBandController:   "InfiniBand controller",
	IpmiController:         "IPMI controller",
	SercosController:       "SERCOS controller",
	CanBusController:       "CAN bus controller",

	IrdaController:          "IrDA controller",
	ConsumerIrController:    "consumer IR controller",
	RfController:            "RF controller",
	BluetoothController:     "Bluetooth controller",
	BroadbandController:     "broadband controller",
	Ethernet5GHzController:  "802.11a controller",
	Ethernet24GHzController: "802.11b controller",
	OtherWirelessController: "wireless controller",

	IntelligentIoController: "intelligent I/O controller",

	TvSatelliteCommunicationsController:    "satellite TV controller",
	AudioSatelliteCommunicationsController: "satellite audio controller",
	VoiceSatelliteCommunicationsController: "satellite voice controller",
	DataSatelliteCommunicationsController:  "satellite data controller",

	NetworkCryptionController:       "network encryption controller",
	EntertainmentCryptionController: "entertainment encryption controller",
	OtherCryptionController:         "encryption controller",

	DpioModule:                              "DPIO module",
	PerformanceCounter:                      "performance counter",
	CommunicationsSynchronizationController: "communications synchronization controller",
	ManagementCard:                          "management card",
	OtherSignalProcessingController:         "signal processing controller",
}

// String returns the category's display name.
func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// subClassNames maps base_class<<8 | sub_class to lspci-style names for the
// subclasses lspci spells differently from the category names above.
var subClassNames = map[uint16]string{
	0x0101: "IDE interface",
	0x0104: "RAID bus controller",
	0x0106: "SATA controller",
	0x0107: "Serial Attached SCSI controller",
	0x0108: "Non-Volatile memory controller",
	0x0200: "Ethernet controller",
	0x0280: "Network controller",
	0x0300: "VGA compatible controller",
	0x0302: "3D controller",
	0x0400: "Multimedia video controller",
	0x0401: "Multimedia audio controller",
	0x0403: "Audio device",
	0x0500: "RAM memory",
	0x0580: "Memory controller",
	0x0600: "Host bridge",
	0x0601: "ISA bridge",
	0x0604: "PCI bridge",
	0x0680: "Bridge",
	0x0700: "Serial controller",
	0x0780: "Communication controller",
	0x0800: "PIC",
	0x0880: "System peripheral",
	0x0c03: "USB controller",
	0x0c05: "SMBus",
	0x0d00: "IRDA controller",
	0x0d11: "Bluetooth",
	0x0d80: "Wireless controller",
	0x1180: "Signal processing controller",
	0x1200: "Processing accelerator",
}

// baseClassNames maps base_class to lspci-style fallback names.
var baseClassNames = map[uint8]string{
	0x00: "Unclassified device",
	0x01: "Mass storage controller",
	0x02: "Network controller",
	0x03: "Display controller",
	0x04: "Multimedia controller",
	0x05: "Memory controller",
	0x06: "Bridge",
	0x07: "Communication controller",
	0x08: "System peripheral",
	0x09: "Input device controller",
	0x0a: "Docking station",
	0x0b: "Processor",
	0x0c: "Serial bus controller",
	0x0d: "Wireless controller",
	0x0e: "Intelligent controller",
	0x0f: "Satellite communication controller",
	0x10: "Encryption controller",
	0x11: "Signal processing controller",
	0x12: "Processing accelerator",
	0xff: "Unassigned class",
}

// Description returns an lspci-style class description for display.
func Description(base pci.BaseClass, sub pci.SubClass) string {
	if name, ok := subClassNames[uint16(base)<<8|uint16(sub)]; ok {
		return name
	}
	if name, ok := baseClassNames[base]; ok {
		return name
	}
	return fmt.Sprintf("Class [%02x%02x]", base, sub)
}
