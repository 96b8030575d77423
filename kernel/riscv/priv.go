package riscv

// Ops performs single privileged register accesses. Each call is exactly one
// csrr/csrw (or one move for TP) with no other side effect.
type Ops interface {
	Read(r Reg) uint64
	Write(r Reg, x uint64)
}

// Priv is the capability to touch privileged state. Code that was not handed
// a Priv has no way to read or write a CSR.
type Priv struct {
	ops Ops
}

// NewPriv wraps a register backend.
func NewPriv(ops Ops) Priv { return Priv{ops: ops} }

// Read CSR := Control and Status Register mstatus.
func (p Priv) ReadMstatus() uint64    { return p.ops.Read(MSTATUS) }
func (p Priv) WriteMstatus(x uint64)  { p.ops.Write(MSTATUS, x) }
func (p Priv) ReadSstatus() uint64    { return p.ops.Read(SSTATUS) }
func (p Priv) WriteSstatus(x uint64)  { p.ops.Write(SSTATUS, x) }
func (p Priv) ReadMie() uint64        { return p.ops.Read(MIE) }
func (p Priv) WriteMie(x uint64)      { p.ops.Write(MIE, x) }
func (p Priv) ReadSie() uint64        { return p.ops.Read(SIE) }
func (p Priv) WriteSie(x uint64)      { p.ops.Write(SIE, x) }
func (p Priv) ReadSip() uint64        { return p.ops.Read(SIP) }
func (p Priv) WriteSip(x uint64)      { p.ops.Write(SIP, x) }
func (p Priv) ReadSatp() uint64       { return p.ops.Read(SATP) }
func (p Priv) WriteSatp(x uint64)     { p.ops.Write(SATP, x) }
func (p Priv) ReadMedeleg() uint64    { return p.ops.Read(MEDELEG) }
func (p Priv) WriteMedeleg(x uint64)  { p.ops.Write(MEDELEG, x) }
func (p Priv) ReadMideleg() uint64    { return p.ops.Read(MIDELEG) }
func (p Priv) WriteMideleg(x uint64)  { p.ops.Write(MIDELEG, x) }
func (p Priv) WritePmpaddr0(x uint64) { p.ops.Write(PMPADDR0, x) }
func (p Priv) WritePmpcfg0(x uint64)  { p.ops.Write(PMPCFG0, x) }
func (p Priv) WriteMscratch(x uint64) { p.ops.Write(MSCRATCH, x) }
func (p Priv) WriteMtvec(x uint64)    { p.ops.Write(MTVEC, x) }
func (p Priv) WriteMepc(x uint64)     { p.ops.Write(MEPC, x) }
func (p Priv) ReadMhartid() uint64    { return p.ops.Read(MHARTID) }
func (p Priv) ReadTp() uint64         { return p.ops.Read(TP) }
func (p Priv) WriteTp(x uint64)       { p.ops.Write(TP, x) }

// IntrOn enables supervisor device interrupts.
func (p Priv) IntrOn() { p.WriteSstatus(p.ReadSstatus() | SSTATUS_SIE) }

// IntrOff disables supervisor device interrupts.
func (p Priv) IntrOff() { p.WriteSstatus(p.ReadSstatus() &^ SSTATUS_SIE) }

// IntrGet reports whether supervisor device interrupts are enabled.
func (p Priv) IntrGet() bool { return p.ReadSstatus()&SSTATUS_SIE != 0 }

// SetMPP sets the privilege mode mret returns to.
func (p Priv) SetMPP(mode uint64) {
	x := p.ReadMstatus()
	x &^= MSTATUS_MPP_MASK
	x |= mode & MSTATUS_MPP_MASK
	p.WriteMstatus(x)
}

// EnableMachineTimer turns on machine-mode timer interrupts.
func (p Priv) EnableMachineTimer() {
	p.WriteMstatus(p.ReadMstatus() | MSTATUS_MIE)
	p.WriteMie(p.ReadMie() | MIE_MTIE)
}
