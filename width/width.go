// Package width measures the column width of journal text.
//
// Alignment in hledger journals is done in characters, not bytes: an account
// named "słodycze" takes eight columns even though it is nine bytes long.
package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Func measures the width of a run of bytes.
type Func func(b []byte) int

// Chars returns the number of Unicode code points in b. Malformed UTF-8 falls
// back to the byte length of b.
func Chars(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] >= utf8.RuneSelf {
			if !utf8.Valid(b[i:]) {
				return len(b)
			}
			return i + utf8.RuneCount(b[i:])
		}
	}
	return len(b)
}

// Display returns the number of terminal cells b occupies, so that East Asian
// wide characters count as two columns and combining marks as none. Malformed
// UTF-8 falls back to the byte length of b.
func Display(b []byte) int {
	if !utf8.Valid(b) {
		return len(b)
	}
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == '\t' {
			n++
		} else {
			n += runewidth.RuneWidth(r)
		}
		b = b[size:]
	}
	return n
}

// Indent returns the column width of leading whitespace, counting a tab as four
// columns, and the number of bytes it spans.
func Indent(b []byte) (columns, n int) {
	for n < len(b) {
		switch b[n] {
		case ' ':
			columns++
		case '\t':
			columns += 4
		default:
			return columns, n
		}
		n++
	}
	return columns, n
}
