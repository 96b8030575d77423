package riscv

// Hart is the explicit context of one executing hart. It is created once per
// hart at boot and is only ever used by that hart, so its fields need no
// synchronisation.
type Hart struct {
	ID   int
	Priv Priv

	noff   int  // depth of PushOff nesting
	intena bool // were interrupts enabled before the outermost PushOff?
}

// NewHart returns the context for hart id.
func NewHart(id int, priv Priv) *Hart {
	return &Hart{ID: id, Priv: priv}
}

// PushOff disables interrupts and records the nesting depth. PushOff/PopOff
// pairs nest: it takes two PopOffs to undo two PushOffs, and if interrupts
// were off before the first PushOff they stay off after the last PopOff.
func (h *Hart) PushOff() {
	old := h.Priv.IntrGet()

	h.Priv.IntrOff()
	if h.noff == 0 {
		h.intena = old
	}
	h.noff++
}

// PopOff undoes one PushOff.
func (h *Hart) PopOff() {
	if h.Priv.IntrGet() {
		panic("pop_off - interruptible")
	}
	if h.noff < 1 {
		panic("pop_off")
	}
	h.noff--
	if h.noff == 0 && h.intena {
		h.Priv.IntrOn()
	}
}

// Depth returns the current PushOff nesting depth.
func (h *Hart) Depth() int { return h.noff }
