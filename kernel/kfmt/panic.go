package kfmt

// Error describes a kernel error. Kernel errors are declared as package
// level *Error values since they may be raised before an allocator exists.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

var (
	// haltFn is mocked by tests.
	haltFn = halt
)

// Panic prints e to the console and halts the hart. It never returns.
func Panic(e interface{}) {
	var module, msg string

	switch t := e.(type) {
	case *Error:
		module, msg = t.Module, t.Message
	case error:
		module, msg = "rt", t.Error()
	case string:
		module, msg = "rt", t
	default:
		module, msg = "rt", "unknown cause"
	}

	Printf("panic: [%s] %s\n", module, msg)
	haltFn()
}

// Recover reports a recovered panic through Panic. It must be deferred
// directly:
//
//	defer kfmt.Recover()
func Recover() {
	if r := recover(); r != nil {
		Panic(r)
	}
}

// Panicf formats a message and panics with it.
func Panicf(format string, args ...interface{}) {
	var b lineBuf
	fprintf(&b, format, args...)
	Panic(b.String())
}

// lineBuf collects Panicf output in a fixed buffer, truncating long messages.
type lineBuf struct {
	buf [128]byte
	n   int
}

func (b *lineBuf) Putc(c byte) {
	if b.n < len(b.buf) {
		b.buf[b.n] = c
		b.n++
	}
}

func (b *lineBuf) String() string { return string(b.buf[:b.n]) }
