// Package pcie reaches FPGA slots through the Linux PCI sysfs tree.
//
// Each slot is bound to the PCI address of its application function. The
// image is described from the vendor and device attributes, a rescan is
// requested through the bus rescan attribute, and a BAR is attached by
// memory-mapping its resource file.
package pcie

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/sarchlab/ising/fpga"
	"golang.org/x/sys/unix"
)

type bar struct {
	file *os.File
	mem  []byte
}

// Platform is an fpga.Platform backed by sysfs.
type Platform struct {
	root  string
	slots map[int]string

	initialized bool
	next        fpga.Handle
	bars        map[fpga.Handle]*bar
}

var _ fpga.Platform = (*Platform)(nil)

// NewPlatform creates a platform. root is the sysfs mount point, usually
// /sys. slots maps slot numbers to PCI addresses such as 0000:00:1d.0.
func NewPlatform(root string, slots map[int]string) *Platform {
	return &Platform{
		root:  root,
		slots: slots,
		bars:  make(map[fpga.Handle]*bar),
	}
}

func (p *Platform) devicesDir() string {
	return filepath.Join(p.root, "bus", "pci", "devices")
}

// Init checks that the PCI sysfs tree is present.
func (p *Platform) Init() error {
	if _, err := os.Stat(p.devicesDir()); err != nil {
		return fmt.Errorf("pci sysfs not available: %w", err)
	}

	p.initialized = true

	return nil
}

// functionDir returns the sysfs directory of a physical function of a slot.
func (p *Platform) functionDir(slot, pf int) (string, error) {
	addr, ok := p.slots[slot]
	if !ok {
		return "", fmt.Errorf("no PCI address configured for slot %d", slot)
	}

	dot := strings.LastIndexByte(addr, '.')
	if dot < 0 {
		return "", fmt.Errorf("malformed PCI address %q", addr)
	}

	return filepath.Join(p.devicesDir(), fmt.Sprintf("%s.%d", addr[:dot], pf)), nil
}

// DescribeImage reads the identifiers of the application function.
func (p *Platform) DescribeImage(slot int) (fpga.ImageInfo, error) {
	if !p.initialized {
		return fpga.ImageInfo{}, errors.New("platform not initialized")
	}

	dir, err := p.functionDir(slot, fpga.AppPF)
	if err != nil {
		return fpga.ImageInfo{}, err
	}

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return fpga.ImageInfo{Status: fpga.StatusNotProgrammed}, nil
	}

	vendor, err := readHexAttr(filepath.Join(dir, "vendor"))
	if err != nil {
		return fpga.ImageInfo{}, err
	}

	device, err := readHexAttr(filepath.Join(dir, "device"))
	if err != nil {
		return fpga.ImageInfo{}, err
	}

	return fpga.ImageInfo{
		Status:  fpga.StatusLoaded,
		ImageID: fpga.ImageID{VendorID: vendor, DeviceID: device},
	}, nil
}

func readHexAttr(path string) (uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %s: %w", path, err)
	}

	return uint16(v), nil
}

// Rescan asks the kernel to rescan the PCI bus. The slot is not used since
// sysfs only offers a bus wide rescan.
func (p *Platform) Rescan(slot int) error {
	path := filepath.Join(p.root, "bus", "pci", "rescan")
	if err := os.WriteFile(path, []byte("1"), 0o200); err != nil {
		return fmt.Errorf("cannot rescan: %w", err)
	}

	return nil
}

// Attach memory-maps a BAR resource file.
func (p *Platform) Attach(slot, pf, barNum int) (fpga.Handle, error) {
	if !p.initialized {
		return fpga.InvalidHandle, errors.New("platform not initialized")
	}

	dir, err := p.functionDir(slot, pf)
	if err != nil {
		return fpga.InvalidHandle, err
	}

	path := filepath.Join(dir, fmt.Sprintf("resource%d", barNum))
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return fpga.InvalidHandle, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fpga.InvalidHandle, err
	}

	if info.Size() == 0 {
		f.Close()
		return fpga.InvalidHandle, fmt.Errorf("%s is empty", path)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return fpga.InvalidHandle, fmt.Errorf("cannot map %s: %w", path, err)
	}

	h := p.next
	p.next++
	p.bars[h] = &bar{file: f, mem: mem}

	return h, nil
}

// Detach unmaps the BAR and closes its resource file.
func (p *Platform) Detach(h fpga.Handle) error {
	b, ok := p.bars[h]
	if !ok {
		return fmt.Errorf("handle %d is not attached", h)
	}

	delete(p.bars, h)

	return errors.Join(unix.Munmap(b.mem), b.file.Close())
}

func (p *Platform) word(h fpga.Handle, addr uint64) (*uint32, error) {
	b, ok := p.bars[h]
	if !ok {
		return nil, fmt.Errorf("handle %d is not attached", h)
	}

	if addr%4 != 0 {
		return nil, fmt.Errorf("unaligned register address 0x%x", addr)
	}

	size := uint64(len(b.mem))
	if addr >= size || size-addr < 4 {
		return nil, fmt.Errorf("register address 0x%x outside BAR of %d bytes",
			addr, len(b.mem))
	}

	return (*uint32)(unsafe.Pointer(&b.mem[addr])), nil
}

// Poke performs a single 32-bit store.
func (p *Platform) Poke(h fpga.Handle, addr uint64, value uint32) error {
	w, err := p.word(h, addr)
	if err != nil {
		return err
	}

	atomic.StoreUint32(w, value)

	return nil
}

// Peek performs a single 32-bit load.
func (p *Platform) Peek(h fpga.Handle, addr uint64) (uint32, error) {
	w, err := p.word(h, addr)
	if err != nil {
		return 0, err
	}

	return atomic.LoadUint32(w), nil
}
