//go:build riscv64

package riscv

// Implemented in csr_riscv64.s, one instruction each.
func r_mstatus() uint64
func w_mstatus(x uint64)
func r_medeleg() uint64
func w_medeleg(x uint64)
func r_mideleg() uint64
func w_mideleg(x uint64)
func r_mie() uint64
func w_mie(x uint64)
func r_mtvec() uint64
func w_mtvec(x uint64)
func r_mscratch() uint64
func w_mscratch(x uint64)
func r_mepc() uint64
func w_mepc(x uint64)
func r_mcause() uint64
func w_mcause(x uint64)
func r_mip() uint64
func w_mip(x uint64)
func r_pmpcfg0() uint64
func w_pmpcfg0(x uint64)
func r_pmpaddr0() uint64
func w_pmpaddr0(x uint64)
func r_mhartid() uint64
func r_sstatus() uint64
func w_sstatus(x uint64)
func r_sie() uint64
func w_sie(x uint64)
func r_stvec() uint64
func w_stvec(x uint64)
func r_sepc() uint64
func w_sepc(x uint64)
func r_scause() uint64
func w_scause(x uint64)
func r_sip() uint64
func w_sip(x uint64)
func r_satp() uint64
func w_satp(x uint64)
func r_tp() uint64
func w_tp(x uint64)

type native struct{}

// Native returns the capability backed by the executing hart's real
// registers. Only the boot path should call it.
func Native() Priv { return Priv{ops: native{}} }

func (native) Read(r Reg) uint64 {
	switch r {
	case MSTATUS:
		return r_mstatus()
	case MEDELEG:
		return r_medeleg()
	case MIDELEG:
		return r_mideleg()
	case MIE:
		return r_mie()
	case MTVEC:
		return r_mtvec()
	case MSCRATCH:
		return r_mscratch()
	case MEPC:
		return r_mepc()
	case MCAUSE:
		return r_mcause()
	case MIP:
		return r_mip()
	case PMPCFG0:
		return r_pmpcfg0()
	case PMPADDR0:
		return r_pmpaddr0()
	case MHARTID:
		return r_mhartid()
	case SSTATUS:
		return r_sstatus()
	case SIE:
		return r_sie()
	case STVEC:
		return r_stvec()
	case SEPC:
		return r_sepc()
	case SCAUSE:
		return r_scause()
	case SIP:
		return r_sip()
	case SATP:
		return r_satp()
	case TP:
		return r_tp()
	}
	panic("riscv: read of unknown register " + r.String())
}

func (native) Write(r Reg, x uint64) {
	switch r {
	case MSTATUS:
		w_mstatus(x)
	case MEDELEG:
		w_medeleg(x)
	case MIDELEG:
		w_mideleg(x)
	case MIE:
		w_mie(x)
	case MTVEC:
		w_mtvec(x)
	case MSCRATCH:
		w_mscratch(x)
	case MEPC:
		w_mepc(x)
	case MCAUSE:
		w_mcause(x)
	case MIP:
		w_mip(x)
	case PMPCFG0:
		w_pmpcfg0(x)
	case PMPADDR0:
		w_pmpaddr0(x)
	case SSTATUS:
		w_sstatus(x)
	case SIE:
		w_sie(x)
	case STVEC:
		w_stvec(x)
	case SEPC:
		w_sepc(x)
	case SCAUSE:
		w_scause(x)
	case SIP:
		w_sip(x)
	case SATP:
		w_satp(x)
		// flush stale TLB entries.
		sfence_vma()
	case TP:
		w_tp(x)
	default:
		panic("riscv: write to unwritable register " + r.String())
	}
}

func sfence_vma()
