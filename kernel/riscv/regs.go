// Package riscv provides access to the privileged state of a RISC-V hart:
// control and status registers (CSRs), interrupt enable bits and the
// per-hart context the rest of the kernel passes around.
//
// Nothing in this package reports errors. A bad register write is a
// hardware-defined fault, not something software can recover from.
package riscv

import "strconv"

// Reg names a privileged register by its CSR number.
type Reg uint16

// Machine-mode registers.
const (
	MSTATUS  Reg = 0x300
	MEDELEG  Reg = 0x302
	MIDELEG  Reg = 0x303
	MIE      Reg = 0x304
	MTVEC    Reg = 0x305
	MSCRATCH Reg = 0x340
	MEPC     Reg = 0x341
	MCAUSE   Reg = 0x342
	MIP      Reg = 0x344
	PMPCFG0  Reg = 0x3A0
	PMPADDR0 Reg = 0x3B0
	MHARTID  Reg = 0xF14
)

// Supervisor-mode registers.
const (
	SSTATUS Reg = 0x100
	SIE     Reg = 0x104
	STVEC   Reg = 0x105
	SEPC    Reg = 0x141
	SCAUSE  Reg = 0x142
	SIP     Reg = 0x144
	SATP    Reg = 0x180
)

// TP is the thread pointer. It is a general purpose register, not a CSR,
// but xv6 style kernels keep the hart id in it so it lives with the CSRs.
// The value is outside the 12-bit CSR number space.
const TP Reg = 0x1000

var regNames = map[Reg]string{
	MSTATUS:  "mstatus",
	MEDELEG:  "medeleg",
	MIDELEG:  "mideleg",
	MIE:      "mie",
	MTVEC:    "mtvec",
	MSCRATCH: "mscratch",
	MEPC:     "mepc",
	MCAUSE:   "mcause",
	MIP:      "mip",
	PMPCFG0:  "pmpcfg0",
	PMPADDR0: "pmpaddr0",
	MHARTID:  "mhartid",
	SSTATUS:  "sstatus",
	SIE:      "sie",
	STVEC:    "stvec",
	SEPC:     "sepc",
	SCAUSE:   "scause",
	SIP:      "sip",
	SATP:     "satp",
	TP:       "tp",
}

func (r Reg) String() string {
	if name, ok := regNames[r]; ok {
		return name
	}
	return "csr(0x" + strconv.FormatUint(uint64(r), 16) + ")"
}

// ReadOnly reports whether writes to r are illegal.
func (r Reg) ReadOnly() bool { return r == MHARTID }

// MPP := Machine previous protection mode.
const (
	MSTATUS_MPP_MASK = uint64(3) << 11 // Mask for bit tricks
	MSTATUS_MPP_M    = uint64(3) << 11 // Machine
	MSTATUS_MPP_S    = uint64(1) << 11 // Supervisor
	MSTATUS_MPP_U    = uint64(0) << 11 // User
	MSTATUS_MIE      = uint64(1) << 3  // machine-mode interrupt enable.
)

// sstatus := Supervisor status reg.
const (
	SSTATUS_SPP  = uint64(1) << 8 // Previous mode, 1=Supervisor, 0=User
	SSTATUS_SPIE = uint64(1) << 5 // Supervisor Previous Interrupt Enable
	SSTATUS_UPIE = uint64(1) << 4 // User Previous Interrupt Enable
	SSTATUS_SIE  = uint64(1) << 1 // Supervisor Interrupt Enable
	SSTATUS_UIE  = uint64(1) << 0 // User Interrupt Enable
)

// Machine-mode Interrupt Enable
const (
	MIE_MEIE = uint64(1) << 11 // external
	MIE_MTIE = uint64(1) << 7  // timer
	MIE_MSIE = uint64(1) << 3  // software
)

// Supervisor Interrupt Enable
const (
	SIE_SEIE = uint64(1) << 9 // external
	SIE_STIE = uint64(1) << 5 // timer
	SIE_SSIE = uint64(1) << 1 // software
)

// use riscv's sv39 page table scheme.
const SATP_SV39 = uint64(8) << 60

// MakeSatp builds the satp value that points the MMU at pagetable.
func MakeSatp(pagetable uintptr) uint64 { return SATP_SV39 | uint64(pagetable)>>12 }
