// Package emu emulates the Ising machine image in process.
//
// The emulator provides an fpga.Platform whose BAR is a plain register space.
// Writing the run value to the start register lets a Machine, an akita
// ticking component, anneal the spins of the loaded problem and publish the
// resulting phases and lock word.
package emu

import (
	"maps"
	"sort"
)

// RegisterSpace is a sparse 32-bit register space. Unwritten registers read
// as zero.
type RegisterSpace struct {
	regs map[uint64]uint32
}

// NewRegisterSpace creates an empty register space.
func NewRegisterSpace() *RegisterSpace {
	return &RegisterSpace{regs: make(map[uint64]uint32)}
}

// Read returns the value of a register.
func (s *RegisterSpace) Read(addr uint64) uint32 {
	return s.regs[addr]
}

// Write sets a register. Writing zero keeps the register in the snapshot.
func (s *RegisterSpace) Write(addr uint64, value uint32) {
	s.regs[addr] = value
}

// Snapshot returns a copy of every written register.
func (s *RegisterSpace) Snapshot() map[uint64]uint32 {
	return maps.Clone(s.regs)
}

// Addrs returns the written addresses in ascending order.
func (s *RegisterSpace) Addrs() []uint64 {
	addrs := make([]uint64, 0, len(s.regs))
	for a := range s.regs {
		addrs = append(addrs, a)
	}

	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	return addrs
}
