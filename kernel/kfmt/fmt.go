// Package kfmt is the kernel's console output: a small Printf that needs no
// allocator, and Panic for unrecoverable errors.
package kfmt

import "reedos-in-go/kernel/sync"

// Sink consumes console output one byte at a time.
type Sink interface {
	Putc(c byte)
}

// printer serialises whole Printf calls so lines from different harts do
// not interleave. A nil sink drops output.
var printer sync.Mutex[Sink]

// SetSink directs console output to s.
func SetSink(s Sink) {
	printer.Do(func(sink *Sink) { *sink = s })
}

const hexDigits = "0123456789abcdef"

// Printf writes format to the console. It understands %d, %x, %p, %s, %c and
// %%; other verbs are echoed.
func Printf(format string, args ...interface{}) {
	printer.Do(func(sink *Sink) {
		if *sink != nil {
			fprintf(*sink, format, args...)
		}
	})
}

func fprintf(out Sink, format string, args ...interface{}) {
	argIdx := 0
	nextArg := func() (interface{}, bool) {
		if argIdx >= len(args) {
			return nil, false
		}
		argIdx++
		return args[argIdx-1], true
	}

	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			out.Putc(format[i])
			continue
		}

		i++
		verb := format[i]
		switch verb {
		case '%':
			out.Putc('%')
			continue
		case 'd', 'x', 'p', 's', 'c':
		default:
			out.Putc('%')
			out.Putc(verb)
			continue
		}

		arg, ok := nextArg()
		if !ok {
			printString(out, "%!")
			out.Putc(verb)
			printString(out, "(MISSING)")
			continue
		}

		switch verb {
		case 'd':
			printInt(out, arg, 10)
		case 'x':
			printInt(out, arg, 16)
		case 'p':
			printString(out, "0x")
			printInt(out, arg, 16)
		case 's':
			switch v := arg.(type) {
			case string:
				printString(out, v)
			case []byte:
				for _, c := range v {
					out.Putc(c)
				}
			default:
				out.Putc('?')
			}
		case 'c':
			switch v := arg.(type) {
			case byte:
				out.Putc(v)
			case rune:
				out.Putc(byte(v))
			case int:
				out.Putc(byte(v))
			default:
				out.Putc('?')
			}
		}
	}
}

func printString(out Sink, str string) {
	for i := 0; i < len(str); i++ {
		out.Putc(str[i])
	}
}

func printInt(out Sink, arg interface{}, base uint64) {
	var (
		num uint64
		neg bool
	)

	switch v := arg.(type) {
	case int:
		neg, num = v < 0, abs(int64(v))
	case int8:
		neg, num = v < 0, abs(int64(v))
	case int16:
		neg, num = v < 0, abs(int64(v))
	case int32:
		neg, num = v < 0, abs(int64(v))
	case int64:
		neg, num = v < 0, abs(v)
	case uint:
		num = uint64(v)
	case uint8:
		num = uint64(v)
	case uint16:
		num = uint64(v)
	case uint32:
		num = uint64(v)
	case uint64:
		num = v
	case uintptr:
		num = uint64(v)
	default:
		out.Putc('?')
		return
	}

	// a uint64 needs at most 20 decimal digits.
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = hexDigits[num%base]
		num /= base
		if num == 0 {
			break
		}
	}

	if neg {
		out.Putc('-')
	}
	for ; i < len(buf); i++ {
		out.Putc(buf[i])
	}
}

func abs(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
