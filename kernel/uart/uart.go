// Package uart drives the transmit side of the 16550a UART qemu emulates.
package uart

import "reedos-in-go/kernel/mmio"

// UART control registers. Some have different meanings for read vs write.
// see http://byterunner.com/16550.html
const (
	RHR = 0 // receive holding register (for input bytes)
	THR = 0 // transmit holding register (for output bytes)
	IER = 1 // interrupt enable register
	FCR = 2 // FIFO control register
	ISR = 2 // interrupt status register
	LCR = 3 // line control register
	LSR = 5 // line status register

	FCR_FIFO_ENABLE = 1 << 0
	FCR_FIFO_CLEAR  = 3 << 1 // clear the content of the two FIFOs
	LCR_EIGHT_BITS  = 3 << 0
	LCR_BAUD_LATCH  = 1 << 7 // special mode to set baud rate
	LSR_RX_READY    = 1 << 0 // input is waiting to be read from RHR
	LSR_TX_IDLE     = 1 << 5 // THR can accept another character to send

	size = 8
)

// UART is one 16550a.
type UART struct {
	regs mmio.Region
}

// New returns the UART whose registers start at base.
func New(bus mmio.Bus, base uintptr) *UART {
	return &UART{regs: mmio.NewRegion(bus, base, size)}
}

func (u *UART) reg(off uintptr) mmio.Reg8 { return u.regs.Reg8(off) }

// Init sets 38.4K baud, 8 data bits, no parity, and enables and resets the
// FIFOs. Interrupts stay disabled; output is polled.
func (u *UART) Init() {
	u.reg(IER).Write(0x00)

	// special mode to set baud rate.
	u.reg(LCR).Write(LCR_BAUD_LATCH)
	// LSB for baud rate of 38.4K.
	u.reg(0).Write(0x03)
	// MSB for baud rate of 38.4K.
	u.reg(1).Write(0x00)

	// leave set-baud mode,
	// and set word length to 8 bits, no parity.
	u.reg(LCR).Write(LCR_EIGHT_BITS)

	u.reg(FCR).Write(FCR_FIFO_ENABLE | FCR_FIFO_CLEAR)
}

// Putc waits for the transmit holding register to drain and sends c.
func (u *UART) Putc(c byte) {
	for u.reg(LSR).Read()&LSR_TX_IDLE == 0 {
	}
	u.reg(THR).Write(c)
}
