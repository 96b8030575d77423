// Package mmio provides volatile access to memory-mapped device registers.
//
// Callers never see pointers. They describe a device as a Region and ask it
// for registers at fixed offsets; every Read or Write on a register is
// exactly one aligned load or store that the compiler may neither drop nor
// reorder with other accesses to the same address.
package mmio

import "strconv"

// Bus performs single aligned loads and stores at physical addresses.
// Implementations must be safe for concurrent use when the callers target
// different addresses.
type Bus interface {
	Load64(addr uintptr) uint64
	Store64(addr uintptr, v uint64)
	Load32(addr uintptr) uint32
	Store32(addr uintptr, v uint32)
	Load8(addr uintptr) uint8
	Store8(addr uintptr, v uint8)
}

// Region is a device's register window.
type Region struct {
	bus  Bus
	base uintptr
	size uintptr
}

// NewRegion describes the size bytes of registers starting at base.
func NewRegion(bus Bus, base, size uintptr) Region {
	return Region{bus: bus, base: base, size: size}
}

// Base returns the physical address of the region.
func (r Region) Base() uintptr { return r.base }

func (r Region) addr(off, width uintptr) uintptr {
	if off+width > r.size || off+width < off {
		panic("mmio: offset 0x" + strconv.FormatUint(uint64(off), 16) + " outside region")
	}
	a := r.base + off
	if a%width != 0 {
		panic("mmio: misaligned register at 0x" + strconv.FormatUint(uint64(a), 16))
	}
	return a
}

// Reg64 returns the 64-bit register at off.
func (r Region) Reg64(off uintptr) Reg64 { return Reg64{bus: r.bus, addr: r.addr(off, 8)} }

// Reg32 returns the 32-bit register at off.
func (r Region) Reg32(off uintptr) Reg32 { return Reg32{bus: r.bus, addr: r.addr(off, 4)} }

// Reg8 returns the 8-bit register at off.
func (r Region) Reg8(off uintptr) Reg8 { return Reg8{bus: r.bus, addr: r.addr(off, 1)} }

// Reg64 is a 64-bit memory-mapped register.
type Reg64 struct {
	bus  Bus
	addr uintptr
}

func (r Reg64) Read() uint64   { return r.bus.Load64(r.addr) }
func (r Reg64) Write(v uint64) { r.bus.Store64(r.addr, v) }
func (r Reg64) Addr() uintptr  { return r.addr }

// Reg32 is a 32-bit memory-mapped register.
type Reg32 struct {
	bus  Bus
	addr uintptr
}

func (r Reg32) Read() uint32   { return r.bus.Load32(r.addr) }
func (r Reg32) Write(v uint32) { r.bus.Store32(r.addr, v) }
func (r Reg32) Addr() uintptr  { return r.addr }

// Reg8 is an 8-bit memory-mapped register.
type Reg8 struct {
	bus  Bus
	addr uintptr
}

func (r Reg8) Read() uint8   { return r.bus.Load8(r.addr) }
func (r Reg8) Write(v uint8) { r.bus.Store8(r.addr, v) }
func (r Reg8) Addr() uintptr { return r.addr }
