// Package memlayout describes the physical memory layout of the qemu virt
// machine and the kernel's run parameters.
package memlayout

// qemu -machine virt is set up like this,
// based on qemu's hw/riscv/virt.c:
//
// 00001000 -- boot ROM, provided by qemu
// 02000000 -- CLINT
// 0C000000 -- PLIC
// 10000000 -- uart0
// 80000000 -- boot ROM jumps here in machine mode
//             -kernel loads the kernel here

// qemu puts UART registers here in physical memory.
const (
	UART0     = uintptr(0x10000000)
	UART0_IRQ = 10
)

// core local interruptor (CLINT), which contains the timer.
const (
	CLINT           = uintptr(0x2000000)
	CLINT_MTIMECMP0 = 0x4000
	CLINT_MTIME_OFF = 0xBFF8
	CLINT_MTIME     = CLINT + CLINT_MTIME_OFF
)

// CLINT_MTIMECMP returns the address of hartid's timer compare register.
func CLINT_MTIMECMP(hartid int) uintptr { return CLINT + CLINT_MTIMECMP0 + 8*uintptr(hartid) }

// Run parameters.
const (
	NHART = 2

	// cycles; about 1/10th second in qemu.
	TimerInterval = uint64(1000000)

	// increments each hart performs on the shared counter at boot.
	CounterRounds = 1000
)
