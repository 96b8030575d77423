package mmio

import (
	"syscall"
	"testing"
	"unsafe"
)

// mapPage returns an anonymous page outside the Go heap to stand in for
// device memory.
func mapPage(t *testing.T) []byte {
	t.Helper()
	page, err := syscall.Mmap(-1, 0, syscall.Getpagesize(), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		t.Skipf("mmap: %v", err)
	}
	t.Cleanup(func() { _ = syscall.Munmap(page) })
	return page
}

func TestPhysicalBus(t *testing.T) {
	page := mapPage(t)
	base := uintptr(unsafe.Pointer(&page[0]))
	r := NewRegion(Physical{}, base, uintptr(len(page)))

	r.Reg64(0x8).Write(0x0102030405060708)
	r.Reg32(0x10).Write(0xa0b0c0d0)
	r.Reg8(0x18).Write(0xee)

	if got := r.Reg64(0x8).Read(); got != 0x0102030405060708 {
		t.Errorf("expected 0x0102030405060708; got %#x", got)
	}
	if got := r.Reg32(0x10).Read(); got != 0xa0b0c0d0 {
		t.Errorf("expected 0xa0b0c0d0; got %#x", got)
	}
	if got := r.Reg8(0x18).Read(); got != 0xee {
		t.Errorf("expected 0xee; got %#x", got)
	}
	if page[0x18] != 0xee {
		t.Errorf("expected the byte store to reach memory; got %#x", page[0x18])
	}
}
