// Package class maps PCI class code bytes to device categories. The tables
// are pure data: lookups have no state and are recomputed on demand.
package class

import "github.com/sercanarga/pciconf/pci"

// DeviceType is the category a function's base class and subclass place it
// in. Combined with the programming interface byte, this can be enough to
// know how to drive the device.
type DeviceType int

const (
	Unknown DeviceType = iota

	// Base class 0x00, devices that predate class codes
	LegacyVgaCompatible
	LegacyNotVgaCompatible

	// Base class 0x01, mass storage controllers
	ScsiBusController
	IdeController
	FloppyController
	IpiBusController
	RaidController
	AtaController
	SataController
	SasController
	NvmeController
	UfsController
	OtherMassStorageController

	// Base class 0x02, network controllers
	EthernetController
	TokenRingController
	FddiController
	AtmController
	IsdnController
	WorldFipController
	PicmgController
	OtherNetworkController

	// Base class 0x03, display controllers
	VgaCompatibleController
	XgaController
	ThreeDController
	OtherDisplayController

	// Base class 0x04, multimedia devices
	VideoDevice
	AudioDevice
	TelephonyDevice
	OtherMultimediaDevice

	// Base class 0x05, memory controllers
	RamController
	FlashController
	OtherMemoryController

	// Base class 0x06, bridges
	HostBridge
	IsaBridge
	EisaBridge
	McaBridge
	PciPciBridge
	PcmciaBridge
	NuBusBridge
	CardBusBridge
	RacewayBridge
	SemiTransparentPciPciBridge
	InfinibandPciHostBridge
	OtherBridgeDevice

	// Base class 0x07, simple communications controllers
	SerialController
	ParallelPort
	MultiportSerialController
	Modem
	GpibController
	SmartCard
	OtherCommunicationsDevice

	// Base class 0x08, generic system peripherals
	InterruptController
	DmaController
	SystemTimer
	RtcController
	GenericPciHotPlugController
	SdHostController
	OtherSystemPeripheral

	// Base class 0x09, input devices
	KeyboardController
	Digitizer
	MouseController
	ScannerController
	GameportController
	OtherInputController

	// Base class 0x0a, docking stations
	GenericDockingStation
	OtherDockingStation

	// Base class 0x0b, processors
	Processor386
	Processor486
	ProcessorPentium
	ProcessorAlpha
	ProcessorPowerPc
	ProcessorMips
	CoProcessor

	// Base class 0x0c, serial bus controllers
	FirewireController
	AccessBusController
	SsaBusController
	UsbController
	FibreChannelController
	SmBusController
	InfiniBandController
	IpmiController
	SercosController
	CanBusController

	// Base class 0x0d, wireless controllers
	IrdaController
	ConsumerIrController
	RfController
	BluetoothController
	BroadbandController
	Ethernet5GHzController
	Ethernet24GHzController
	OtherWirelessController

	// Base class 0x0e, intelligent I/O controllers
	IntelligentIoController

	// Base class 0x0f, satellite communications controllers
	TvSatelliteCommunicationsController
	AudioSatelliteCommunicationsController
	VoiceSatelliteCommunicationsController
	DataSatelliteCommunicationsController

	// Base class 0x10, encryption and decryption controllers
	NetworkCryptionController
	EntertainmentCryptionController
	OtherCryptionController

	// Base class 0x11, data acquisition and signal processing controllers
	DpioModule
	PerformanceCounter
	CommunicationsSynchronizationController
	ManagementCard
	OtherSignalProcessingController
)

// deviceTypes maps base_class<<8 | sub_class to the device category. Pairs
// not listed here classify as Unknown.
var deviceTypes = map[uint16]DeviceType{
	0x0000: LegacyNotVgaCompatible,
	0x0001: LegacyVgaCompatible,

	0x0100: ScsiBusController,
	0x0101: IdeController,
	0x0102: FloppyController,
	0x0103: IpiBusController,
	0x0104: RaidController,
	0x0105: AtaController,
	0x0106: SataController,
	0x0107: SasController,
	0x0108: NvmeController,
	0x0109: UfsController,
	0x0180: OtherMassStorageController,

	0x0200: EthernetController,
	0x0201: TokenRingController,
	0x0202: FddiController,
	0x0203: AtmController,
	0x0204: IsdnController,
	0x0205: WorldFipController,
	0x0206: PicmgController,
	0x0280: OtherNetworkController,

	0x0300: VgaCompatibleController,
	0x0301: XgaController,
	0x0302: ThreeDController,
	0x0380: OtherDisplayController,

	0x0400: VideoDevice,
	0x0401: AudioDevice,
	0x0402: TelephonyDevice,
	0x0403: OtherMultimediaDevice,

	0x0500: RamController,
	0x0501: FlashController,
	0x0502: OtherMemoryController,

	0x0600: HostBridge,
	0x0601: IsaBridge,
	0x0602: EisaBridge,
	0x0603: McaBridge,
	0x0604: PciPciBridge,
	0x0605: PcmciaBridge,
	0x0606: NuBusBridge,
	0x0607: CardBusBridge,
	0x0608: RacewayBridge,
	0x0609: SemiTransparentPciPciBridge,
	0x060a: InfinibandPciHostBridge,
	0x0680: OtherBridgeDevice,

	0x0700: SerialController,
	0x0701: ParallelPort,
	0x0702: MultiportSerialController,
	0x0703: Modem,
	0x0704: GpibController,
	0x0705: SmartCard,
	0x0780: OtherCommunicationsDevice,

	0x0800: InterruptController,
	0x0801: DmaController,
	0x0802: SystemTimer,
	0x0803: RtcController,
	0x0804: GenericPciHotPlugController,
	0x0805: SdHostController,
	0x0880: OtherSystemPeripheral,

	0x0900: KeyboardController,
	0x0901: Digitizer,
	0x0902: MouseController,
	0x0903: ScannerController,
	0x0904: GameportController,
	0x0980: OtherInputController,

	0x0a00: GenericDockingStation,
	0x0a80: OtherDockingStation,

	0x0b00: Processor386,
	0x0b01: Processor486,
	0x0b02: ProcessorPentium,
	0x0b10: ProcessorAlpha,
	0x0b20: ProcessorPowerPc,
	0x0b30: ProcessorMips,
	0x0b40: CoProcessor,

	0x0c00: FirewireController,
	0x0c01: AccessBusController,
	0x0c02: SsaBusController,
	0x0c03: UsbController,
	0x0c04: FibreChannelController,
	0x0c05: SmBusController,
	0x0c06: InfiniBandController,
	0x0c07: IpmiController,
	0x0c08: SercosController,
	0x0c09: CanBusController,

	0x0d00: IrdaController,
	0x0d01: ConsumerIrController,
	0x0d10: RfController,
	0x0d11: BluetoothController,
	0x0d12: BroadbandController,
	0x0d20: Ethernet5GHzController,
	0x0d21: Ethernet24GHzController,
	0x0d80: OtherWirelessController,

	0x0e00: IntelligentIoController,

	0x0f00: TvSatelliteCommunicationsController,
	0x0f01: AudioSatelliteCommunicationsController,
	0x0f02: VoiceSatelliteCommunicationsController,
	0x0f03: DataSatelliteCommunicationsController,

	0x1000: NetworkCryptionController,
	0x1010: EntertainmentCryptionController,
	0x1080: OtherCryptionController,

	0x1100: DpioModule,
	0x1101: PerformanceCounter,
	0x1110: CommunicationsSynchronizationController,
	0x1120: ManagementCard,
	0x1180: OtherSignalProcessingController,
}

// FromClass classifies a function by its base class and subclass bytes.
// Unlisted pairs return Unknown.
func FromClass(base pci.BaseClass, sub pci.SubClass) DeviceType {
	return deviceTypes[uint16(base)<<8|uint16(sub)]
}

// UsbType is the register-level programming interface of a USB controller
// (devices classifying as UsbController).
type UsbType int

const (
	Uhci UsbType = iota
	Ohci
	Ehci
	Xhci
	OtherUsbInterface
	UsbDevice
)

// UsbTypeFrom maps a USB controller's programming interface byte to its
// host controller interface. ok is false for values the specification does
// not define.
func UsbTypeFrom(progIF pci.Interface) (UsbType, bool) {
	switch progIF {
	case 0x00:
		return Uhci, true
	case 0x10:
		return Ohci, true
	case 0x20:
		return Ehci, true
	case 0x30:
		return Xhci, true
	case 0x80:
		return OtherUsbInterface, true
	case 0xfe:
		return UsbDevice, true
	default:
		return 0, false
	}
}

// String returns the interface name.
func (t UsbType) String() string {
	switch t {
	case Uhci:
		return "UHCI"
	case Ohci:
		return "OHCI"
	case Ehci:
		return "EHCI"
	case Xhci:
		return "xHCI"
	case OtherUsbInterface:
		return "other interface"
	case UsbDevice:
		return "USB device"
	default:
		return "invalid"
	}
}
