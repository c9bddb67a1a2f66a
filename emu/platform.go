package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/ising/fpga"
	"github.com/sarchlab/ising/regmap"
)

// ErrInjected is returned by every failure a FailPlan injects.
var ErrInjected = errors.New("injected failure")

// FailPlan describes failures to inject into the platform.
type FailPlan struct {
	// Init makes Init fail.
	Init bool

	// Attach makes Attach fail.
	Attach bool

	// Detach makes Detach fail.
	Detach bool

	// StaleImageID makes the image report wrong identifiers until the slot
	// is rescanned.
	StaleImageID bool

	// Access makes the n-th register access (pokes and peeks counted
	// together, starting at 1) fail. Zero disables it.
	Access int
}

// AccessKind tells a poke from a peek.
type AccessKind int

const (
	AccessPoke AccessKind = iota
	AccessPeek
)

// String returns the name of the access kind.
func (k AccessKind) String() string {
	if k == AccessPoke {
		return "poke"
	}

	return "peek"
}

// Access is one register access seen by the platform.
type Access struct {
	Kind  AccessKind
	Addr  uint64
	Value uint32
	Err   error
}

// Stats counts what happened on the platform.
type Stats struct {
	Inits    int
	Rescans  int
	Attaches int
	Detaches int
	Pokes    int
	Peeks    int
}

// Platform is an emulated FPGA slot.
type Platform struct {
	space   *RegisterSpace
	machine *Machine
	image   fpga.ImageInfo
	fail    FailPlan

	initialized bool
	stale       bool
	nextHandle  fpga.Handle
	attached    map[fpga.Handle]bool

	stats    Stats
	accesses []Access
}

var _ fpga.Platform = (*Platform)(nil)

// Space returns the register space behind the BAR.
func (p *Platform) Space() *RegisterSpace {
	return p.space
}

// Machine returns the oscillator network, or nil for a passive platform.
func (p *Platform) Machine() *Machine {
	return p.machine
}

// Stats returns the platform counters.
func (p *Platform) Stats() Stats {
	return p.stats
}

// Accesses returns every register access in order.
func (p *Platform) Accesses() []Access {
	return append([]Access(nil), p.accesses...)
}

// Attached returns the number of handles currently attached.
func (p *Platform) Attached() int {
	return len(p.attached)
}

// Init initializes the emulated management library.
func (p *Platform) Init() error {
	p.stats.Inits++

	if p.fail.Init {
		return fmt.Errorf("init: %w", ErrInjected)
	}

	p.initialized = true

	return nil
}

// DescribeImage returns the emulated image.
func (p *Platform) DescribeImage(slot int) (fpga.ImageInfo, error) {
	if !p.initialized {
		return fpga.ImageInfo{}, errors.New("library not initialized")
	}

	info := p.image
	if p.stale {
		info.DeviceID = ^info.DeviceID
	}

	return info, nil
}

// Rescan clears stale identifiers.
func (p *Platform) Rescan(slot int) error {
	p.stats.Rescans++
	p.stale = false

	return nil
}

// Attach hands out a new handle.
func (p *Platform) Attach(slot, pf, bar int) (fpga.Handle, error) {
	if !p.initialized {
		return fpga.InvalidHandle, errors.New("library not initialized")
	}

	if p.fail.Attach {
		return fpga.InvalidHandle, fmt.Errorf("attach: %w", ErrInjected)
	}

	p.stats.Attaches++

	h := p.nextHandle
	p.nextHandle++
	p.attached[h] = true

	return h, nil
}

// Detach releases a handle.
func (p *Platform) Detach(h fpga.Handle) error {
	if !p.attached[h] {
		return fmt.Errorf("handle %d is not attached", h)
	}

	delete(p.attached, h)
	p.stats.Detaches++

	if p.fail.Detach {
		return fmt.Errorf("detach: %w", ErrInjected)
	}

	return nil
}

// Poke writes a register. A write to the start register controls the
// machine.
func (p *Platform) Poke(h fpga.Handle, addr uint64, value uint32) error {
	err := p.access(h)
	p.stats.Pokes++
	p.accesses = append(p.accesses, Access{
		Kind: AccessPoke, Addr: addr, Value: value, Err: err,
	})

	if err != nil {
		return err
	}

	p.space.Write(addr, value)

	if p.machine != nil && addr == uint64(regmap.Start) {
		return p.machine.Control(value)
	}

	return nil
}

// Peek reads a register.
func (p *Platform) Peek(h fpga.Handle, addr uint64) (uint32, error) {
	err := p.access(h)
	p.stats.Peeks++

	var value uint32
	if err == nil {
		value = p.space.Read(addr)
	}

	p.accesses = append(p.accesses, Access{
		Kind: AccessPeek, Addr: addr, Value: value, Err: err,
	})

	return value, err
}

func (p *Platform) access(h fpga.Handle) error {
	if !p.attached[h] {
		return fmt.Errorf("handle %d is not attached", h)
	}

	if p.fail.Access > 0 && len(p.accesses)+1 == p.fail.Access {
		return fmt.Errorf("access %d: %w", p.fail.Access, ErrInjected)
	}

	return nil
}
