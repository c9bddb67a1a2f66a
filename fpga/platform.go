// Package fpga manages exclusive register access sessions on an FPGA slot.
//
// The package does not talk to hardware itself. A Platform provides the
// management and PCI primitives, and a Session sequences them: library init,
// image readiness check, attach, register access and detach.
package fpga

import "fmt"

// Physical function and BAR that expose the application registers.
const (
	AppPF     = 0
	AppPFBar0 = 0
)

// Handle identifies an attached BAR. It is only valid between Attach and
// Detach.
type Handle int

// InvalidHandle is the value of a handle that is not attached.
const InvalidHandle Handle = -1

// ImageStatus is the load state of the image in a slot.
type ImageStatus int

const (
	StatusUnknown ImageStatus = iota
	StatusLoaded
	StatusCleared
	StatusBusy
	StatusNotProgrammed
)

// String returns the name of the status.
func (s ImageStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusCleared:
		return "cleared"
	case StatusBusy:
		return "busy"
	case StatusNotProgrammed:
		return "not-programmed"
	default:
		return "unknown"
	}
}

// ImageID is the PCI vendor/device pair an image exposes on the
// application function.
type ImageID struct {
	VendorID uint16 `yaml:"vendor_id"`
	DeviceID uint16 `yaml:"device_id"`
}

// DefaultImageID is the vendor/device pair preassigned to application images.
var DefaultImageID = ImageID{VendorID: 0x1D0F, DeviceID: 0xF000}

// String implements fmt.Stringer.
func (id ImageID) String() string {
	return fmt.Sprintf("vendor 0x%04x, device 0x%04x", id.VendorID, id.DeviceID)
}

// ImageInfo describes the image loaded in a slot.
type ImageInfo struct {
	Status ImageStatus
	ImageID
}

// Platform provides the FPGA management and PCI primitives.
type Platform interface {
	// Init initializes the management library. It must be called before
	// any other method.
	Init() error

	// DescribeImage returns the status and identifiers of the image loaded
	// in the slot.
	DescribeImage(slot int) (ImageInfo, error)

	// Rescan refreshes the application functions of the slot. It is needed
	// when an image was loaded after the PCI bus was enumerated.
	Rescan(slot int) error

	// Attach maps a BAR of a physical function of the slot.
	Attach(slot, pf, bar int) (Handle, error)

	// Detach releases a handle returned by Attach.
	Detach(h Handle) error

	// Poke writes a 32-bit register.
	Poke(h Handle, addr uint64, value uint32) error

	// Peek reads a 32-bit register.
	Peek(h Handle, addr uint64) (uint32, error)
}
