// Package buffer defines the text-buffer capability the engine reads
// from. Hosts adapt their editor view to this interface; tests and the
// CLI use the in-memory String implementation.
package buffer

// Buffer is a read-only view of the text surrounding a click. Offsets are
// byte positions. Reads outside the buffer are defined rather than
// panicking: Byte returns 0 and Slice clamps, which mirrors how editor
// views answer out-of-range reads and lets scanning loops run to the
// boundary without special cases.
type Buffer interface {
	Len() int
	Byte(pos int) byte
	Slice(begin, end int) string
}

// String is an immutable in-memory Buffer backed by a Go string.
type String string

// NewString wraps s as a Buffer.
func NewString(s string) String { return String(s) }

func (b String) Len() int { return len(b) }

func (b String) Byte(pos int) byte {
	if pos < 0 || pos >= len(b) {
		return 0
	}
	return b[pos]
}

func (b String) Slice(begin, end int) string {
	if begin < 0 {
		begin = 0
	}
	if end > len(b) {
		end = len(b)
	}
	if begin >= end {
		return ""
	}
	return string(b[begin:end])
}
