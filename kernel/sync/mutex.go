package sync

import "reedos-in-go/kernel/riscv"

// Mutex owns a value of type T and serialises access to it. The value can
// only be reached through a Guard returned by one of the locking methods;
// there is no Unlock on Mutex, a lock is released only by its Guard.
//
// Lock spins until the lock is free. There is no timeout, and a hart that
// locks a Mutex it already holds spins forever. LockOn detects that case
// and panics instead.
//
// The zero Mutex is unlocked and holds the zero T. A Mutex must not be
// copied after first use.
type Mutex[T any] struct {
	_     noCopy
	lk    spinlock
	value T
}

// New returns an unlocked Mutex holding value.
func New[T any](value T) *Mutex[T] {
	return &Mutex[T]{value: value}
}

// Lock spins until the lock is acquired and returns the guard for it.
func (m *Mutex[T]) Lock() *Guard[T] {
	m.lk.acquire()
	return &Guard[T]{m: m}
}

// TryLock acquires the lock if it is free. It never spins.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	if !m.lk.tryAcquire() {
		return nil, false
	}
	return &Guard[T]{m: m}, true
}

// LockOn is Lock for code running on hart h. Interrupts on h are disabled
// before spinning and restored to their previous state by Release. Locking
// a Mutex that h already holds panics.
func (m *Mutex[T]) LockOn(h *riscv.Hart) *Guard[T] {
	m.lk.acquireOn(h)
	return &Guard[T]{m: m, hart: h}
}

// TryLockOn is TryLock for code running on hart h. If the lock is busy the
// interrupt state of h is left as it was.
func (m *Mutex[T]) TryLockOn(h *riscv.Hart) (*Guard[T], bool) {
	if !m.lk.tryAcquireOn(h) {
		return nil, false
	}
	return &Guard[T]{m: m, hart: h}, true
}

// Do runs fn with the lock held. The lock is released however fn returns,
// including by panic.
func (m *Mutex[T]) Do(fn func(v *T)) {
	g := m.Lock()
	defer g.Release()
	fn(g.Value())
}

// DoOn is Do for code running on hart h.
func (m *Mutex[T]) DoOn(h *riscv.Hart, fn func(v *T)) {
	g := m.LockOn(h)
	defer g.Release()
	fn(g.Value())
}

// Guard grants exclusive access to the value of a locked Mutex. It does not
// keep the Mutex alive and must not outlive it, and pointers obtained from
// Value must not be used after Release.
type Guard[T any] struct {
	m    *Mutex[T]
	hart *riscv.Hart
}

// Value returns the protected value. It panics once the guard is released.
func (g *Guard[T]) Value() *T {
	if g.m == nil {
		panic("sync: use of released guard")
	}
	return &g.m.value
}

// Release unlocks the Mutex. Only the first call has an effect, so an
// explicit Release on an early path may be combined with a deferred one.
func (g *Guard[T]) Release() {
	m := g.m
	if m == nil {
		return
	}
	g.m = nil
	if g.hart != nil {
		m.lk.releaseOn(g.hart)
		return
	}
	m.lk.release()
}

// noCopy lets go vet's copylocks check flag copies of a Mutex.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
