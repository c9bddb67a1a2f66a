package fpga

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/ising/regmap"
	"github.com/sarchlab/ising/util"
)

// SessionBuilder opens sessions.
type SessionBuilder struct {
	platform Platform
	slot     int
	pf       int
	bar      int
	imageID  ImageID
	logger   *slog.Logger
}

// MakeSessionBuilder returns a builder for the application BAR of slot 0.
func MakeSessionBuilder() SessionBuilder {
	return SessionBuilder{
		pf:      AppPF,
		bar:     AppPFBar0,
		imageID: DefaultImageID,
	}
}

// WithPlatform sets the platform that provides the hardware primitives.
func (b SessionBuilder) WithPlatform(p Platform) SessionBuilder {
	b.platform = p
	return b
}

// WithSlot sets the slot to attach to.
func (b SessionBuilder) WithSlot(slot int) SessionBuilder {
	b.slot = slot
	return b
}

// WithPF sets the physical function.
func (b SessionBuilder) WithPF(pf int) SessionBuilder {
	b.pf = pf
	return b
}

// WithBar sets the BAR.
func (b SessionBuilder) WithBar(bar int) SessionBuilder {
	b.bar = bar
	return b
}

// WithImageID sets the identifiers the loaded image must expose.
func (b SessionBuilder) WithImageID(id ImageID) SessionBuilder {
	b.imageID = id
	return b
}

// WithLogger sets the logger. The default logger is used if unset.
func (b SessionBuilder) WithLogger(logger *slog.Logger) SessionBuilder {
	b.logger = logger
	return b
}

// Open initializes the platform, checks that the image is ready and attaches
// to the BAR. The returned session must be closed.
func (b SessionBuilder) Open() (*Session, error) {
	if b.platform == nil {
		panic("fpga: session builder has no platform")
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := b.platform.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryInit, err)
	}

	if err := CheckImageReady(b.platform, b.slot, b.imageID, logger); err != nil {
		return nil, err
	}

	h, err := b.platform.Attach(b.slot, b.pf, b.bar)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %d pf %d bar %d: %w",
			ErrAttach, b.slot, b.pf, b.bar, err)
	}

	logger.Debug("Attached", "slot", b.slot, "pf", b.pf, "bar", b.bar)

	return &Session{
		platform: b.platform,
		handle:   h,
		slot:     b.slot,
		logger:   logger,
	}, nil
}

// Session is an open register access session. It owns the attached handle
// until Close is called.
type Session struct {
	platform Platform
	handle   Handle
	slot     int
	logger   *slog.Logger
}

// Slot returns the slot the session is attached to.
func (s *Session) Slot() int {
	return s.slot
}

// Handle returns the attached handle, or InvalidHandle after Close.
func (s *Session) Handle() Handle {
	return s.handle
}

// Poke writes a register.
func (s *Session) Poke(addr uint64, value uint32) error {
	if s.handle == InvalidHandle {
		return ErrSessionClosed
	}

	util.Trace(s.logger, "Poke",
		"addr", regmap.Addr(addr).String(),
		"value", fmt.Sprintf("0x%08x", value))

	if err := s.platform.Poke(s.handle, addr, value); err != nil {
		return fmt.Errorf("%w: write 0x%08x to %s: %w",
			ErrRegisterIO, value, regmap.Addr(addr), err)
	}

	return nil
}

// Peek reads a register.
func (s *Session) Peek(addr uint64) (uint32, error) {
	if s.handle == InvalidHandle {
		return 0, ErrSessionClosed
	}

	value, err := s.platform.Peek(s.handle, addr)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %w",
			ErrRegisterIO, regmap.Addr(addr), err)
	}

	util.Trace(s.logger, "Peek",
		"addr", regmap.Addr(addr).String(),
		"value", fmt.Sprintf("0x%08x", value))

	return value, nil
}

// WriteVerify writes a register and returns what reads back from it.
func (s *Session) WriteVerify(addr uint64, value uint32) (uint32, error) {
	if err := s.Poke(addr, value); err != nil {
		return 0, err
	}

	return s.Peek(addr)
}

// Close detaches the handle. Calling Close again does nothing.
func (s *Session) Close() error {
	if s.handle == InvalidHandle {
		return nil
	}

	h := s.handle
	s.handle = InvalidHandle

	if err := s.platform.Detach(h); err != nil {
		return fmt.Errorf("failure while detaching from slot %d: %w", s.slot, err)
	}

	s.logger.Debug("Detached", "slot", s.slot)

	return nil
}
