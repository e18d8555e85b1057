// Package linecol parses the line/column suffixes that commonly follow a
// file path in tool output.
package linecol

import "github.com/clickpath/clickpath/pkg/buffer"

// Position is a parsed line/column pair. Col 0 means unknown.
type Position struct {
	Line int
	Col  int
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// readNumber reads a run of digits starting at pos. ok is false when the
// first byte is not a digit.
func readNumber(buf buffer.Buffer, pos int) (n, next int, ok bool) {
	if !isDigit(buf.Byte(pos)) {
		return 0, pos, false
	}
	for isDigit(buf.Byte(pos)) {
		n = n*10 + int(buf.Byte(pos)-'0')
		pos++
	}
	return n, pos, true
}

// Parse recognizes, immediately after a path ending at pos, one of:
//
//	PATH:LINE          (column unknown)
//	PATH:LINE:COL      (column kept only before whitespace, ':' or EOF)
//	PATH: line LINE    (bash)
//	PATH: LINE:        (bash)
//	"PATH", line LINE  (traceback)
//
// The COL guard avoids misreading PATH:LINE:2024-01-01 log timestamps as
// a column. Returns ok false when nothing matches.
func Parse(buf buffer.Buffer, pos int) (Position, bool) {
	switch buf.Byte(pos) {
	case ':':
		pos++
		switch {
		case buf.Byte(pos) == ' ':
			pos++
			if buf.Byte(pos) == 'l' {
				if buf.Slice(pos+1, pos+5) != "ine " {
					return Position{}, false
				}
				line, _, ok := readNumber(buf, pos+5)
				if !ok {
					return Position{}, false
				}
				return Position{Line: line}, true
			}
			line, next, ok := readNumber(buf, pos)
			if !ok || buf.Byte(next) != ':' {
				return Position{}, false
			}
			return Position{Line: line}, true
		case isDigit(buf.Byte(pos)):
			line, next, _ := readNumber(buf, pos)
			if buf.Byte(next) != ':' {
				return Position{Line: line}, true
			}
			col, next, ok := readNumber(buf, next+1)
			if !ok {
				return Position{Line: line}, true
			}
			if ch := buf.Byte(next); ch <= ' ' || ch == ':' {
				return Position{Line: line, Col: col}, true
			}
			// avoid PATH:LINE:YEAR-MONTH-DAY, often found in logs
			return Position{Line: line}, true
		}
		return Position{}, false
	case '"':
		if buf.Slice(pos+1, pos+8) != ", line " {
			return Position{}, false
		}
		line, _, ok := readNumber(buf, pos+8)
		if !ok {
			return Position{}, false
		}
		return Position{Line: line}, true
	}
	return Position{}, false
}
