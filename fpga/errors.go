package fpga

import "errors"

var (
	// ErrLibraryInit is returned when the management library cannot start.
	ErrLibraryInit = errors.New("unable to initialize the fpga management library")

	// ErrImageNotReady is returned when the slot does not hold the expected
	// loaded image, even after a rescan.
	ErrImageNotReady = errors.New("image not ready")

	// ErrAttach is returned when the BAR cannot be mapped.
	ErrAttach = errors.New("unable to attach to the fpga")

	// ErrRegisterIO is returned when a peek or a poke fails.
	ErrRegisterIO = errors.New("register access failed")

	// ErrSessionClosed is returned for register access on a closed session.
	ErrSessionClosed = errors.New("session is closed")
)
