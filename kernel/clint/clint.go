// Package clint arms the per-hart timer of the core local interruptor.
//
// Each hart owns an 8-byte mtimecmp slot at base+0x4000+8*hart. The hardware
// raises a machine timer interrupt on that hart once the free-running mtime
// counter at base+0xBFF8 reaches the slot's value. Arming is one-shot: the
// interrupt handler has to arm the timer again for the next tick.
package clint

import (
	"unsafe"

	"reedos-in-go/kernel/memlayout"
	"reedos-in-go/kernel/mmio"
	"reedos-in-go/kernel/riscv"
)

const (
	mtimecmpOff = memlayout.CLINT_MTIMECMP0
	mtimeOff    = memlayout.CLINT_MTIME_OFF

	// size of the CLINT register window.
	Size = 0x10000

	// MaxHarts is the number of mtimecmp slots below mtime.
	MaxHarts = (mtimeOff - mtimecmpOff) / 8
)

// CLINT is a core local interruptor at a fixed base address.
type CLINT struct {
	regs mmio.Region
}

// New returns the CLINT whose registers start at base.
func New(bus mmio.Bus, base uintptr) *CLINT {
	return &CLINT{regs: mmio.NewRegion(bus, base, Size)}
}

// MtimeCmp returns hart's timer compare register. It panics if hart has no
// slot.
func (c *CLINT) MtimeCmp(hart int) mmio.Reg64 {
	if hart < 0 || hart >= MaxHarts {
		panic("clint: hart id out of range")
	}
	return c.regs.Reg64(mtimecmpOff + 8*uintptr(hart))
}

// Mtime returns the free-running counter.
func (c *CLINT) Mtime() mmio.Reg64 {
	return c.regs.Reg64(mtimeOff)
}

// Arm schedules hart's next timer interrupt interval ticks from now.
//
// The compare slot, the counter register and the counter's current value are
// three different things and are derived separately on every call; the
// deadline is counter value plus interval, never anything computed from a
// register address.
func (c *CLINT) Arm(hart int, interval uint64) {
	cmp := c.MtimeCmp(hart)
	now := c.Mtime().Read()
	cmp.Write(now + interval)
}

// Deadline returns the value currently armed for hart.
func (c *CLINT) Deadline(hart int) uint64 {
	return c.MtimeCmp(hart).Read()
}

// ArmTimer writes mtime+interval to the mtimecmp slot of hartID in the CLINT
// at base.
func ArmTimer(bus mmio.Bus, hartID int, base uintptr, interval uint64) {
	New(bus, base).Arm(hartID, interval)
}

// Scratch is the per-hart save area of the machine-mode timer vector, found
// through mscratch: three saved registers, then the addresses of the hart's
// mtimecmp slot and of mtime, then the interval.
type Scratch [6]uint64

const (
	scratchMtimeCmp = 3
	scratchMtime    = 4
	scratchInterval = 5
)

// InitHart arranges for h to receive machine-mode timer interrupts: it arms
// the first deadline, fills scratch for the timer vector, points mscratch at
// scratch and mtvec at vec, then enables machine interrupts and the timer
// source. scratch must stay allocated for as long as the hart runs.
func InitHart(h *riscv.Hart, c *CLINT, interval uint64, vec uintptr, scratch *Scratch) {
	c.Arm(h.ID, interval)

	scratch[scratchMtimeCmp] = uint64(c.MtimeCmp(h.ID).Addr())
	scratch[scratchMtime] = uint64(c.Mtime().Addr())
	scratch[scratchInterval] = interval

	h.Priv.WriteMscratch(uint64(uintptr(unsafe.Pointer(scratch))))
	h.Priv.WriteMtvec(uint64(vec))
	h.Priv.EnableMachineTimer()
}
