// Package regmap defines the register map of the Ising machine image.
//
// All registers are 32 bits wide and live in the application BAR of the FPGA.
// Addresses are byte offsets into that BAR.
package regmap

import "fmt"

// Addr is a byte offset into the memory-mapped register space.
type Addr uint64

// Control and result registers.
const (
	Start      Addr = 0x0000_0500
	CtrCutoff  Addr = 0x0000_0600
	CtrMax     Addr = 0x0000_0700
	PhaseBase  Addr = 0x0000_1000
	WeightBase Addr = 0x0100_0000

	// StatusAddr holds the lock word. It shares the phase block with the
	// node phases; the slot it occupies belongs to the reference oscillator.
	StatusAddr = PhaseBase
)

// Values written to the Start register.
const (
	RunValue  uint32 = 1
	HaltValue uint32 = 0
)

// Geometry of the weight and phase blocks.
const (
	MaxNodes           = 8
	WeightColumnStride = 0x2000
	WeightRowStride    = 4
	PhaseStride        = 4
)

// WeightAddr returns the address of the coupling between hardware slots row
// and col. Only the upper triangle is mapped, so row must be below col.
func WeightAddr(row, col int) (Addr, error) {
	if row < 0 || col >= MaxNodes || row >= col {
		return 0, fmt.Errorf("invalid weight slot pair (%d, %d)", row, col)
	}

	return WeightBase +
		Addr(col*WeightColumnStride) +
		Addr(row*WeightRowStride), nil
}

// DecodeWeightAddr is the inverse of WeightAddr.
func DecodeWeightAddr(a Addr) (row, col int, ok bool) {
	if a < WeightBase {
		return 0, 0, false
	}

	off := a - WeightBase
	if off%WeightRowStride != 0 {
		return 0, 0, false
	}

	col = int(off / WeightColumnStride)
	row = int(off%WeightColumnStride) / WeightRowStride
	if col >= MaxNodes || row >= col {
		return 0, 0, false
	}

	return row, col, true
}

// PhaseAddr returns the phase readback register of an oscillator slot. The
// phase block is laid out in reverse slot order.
func PhaseAddr(slot int) (Addr, error) {
	if slot < 0 || slot >= MaxNodes-1 {
		return 0, fmt.Errorf("invalid phase slot %d", slot)
	}

	return PhaseBase + Addr((MaxNodes-1-slot)*PhaseStride), nil
}

// DecodePhaseAddr is the inverse of PhaseAddr.
func DecodePhaseAddr(a Addr) (slot int, ok bool) {
	if a <= PhaseBase || a >= PhaseBase+MaxNodes*PhaseStride {
		return 0, false
	}

	off := a - PhaseBase
	if off%PhaseStride != 0 {
		return 0, false
	}

	return MaxNodes - 1 - int(off/PhaseStride), true
}

// Name returns a symbolic name of the address for transcripts.
func Name(a Addr) string {
	switch a {
	case Start:
		return "START"
	case CtrCutoff:
		return "CTR_CUTOFF"
	case CtrMax:
		return "CTR_MAX"
	case StatusAddr:
		return "STATUS"
	}

	if row, col, ok := DecodeWeightAddr(a); ok {
		return fmt.Sprintf("W[%d,%d]", row, col)
	}

	if slot, ok := DecodePhaseAddr(a); ok {
		return fmt.Sprintf("PHASE[%d]", slot)
	}

	return fmt.Sprintf("0x%08x", uint64(a))
}

// String implements fmt.Stringer.
func (a Addr) String() string {
	return fmt.Sprintf("%s(0x%016x)", Name(a), uint64(a))
}

// ByteSwap reverses the byte order of a register word.
func ByteSwap(v uint32) uint32 {
	return v>>24 | (v>>8)&0xff00 | (v<<8)&0xff0000 | v<<24
}
