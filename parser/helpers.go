package parser

// Byte-level helpers shared by the line parsers. Offsets are always absolute
// positions into the source buffer.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isCommentPrefix(c byte) bool {
	return c == ';' || c == '#'
}

func isBlank(line []byte) bool {
	for _, c := range line {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

// skipSpace returns the first offset in [from, to) that is not a space or tab.
func skipSpace(b []byte, from, to int) int {
	for from < to && isSpace(b[from]) {
		from++
	}
	return from
}

// trimRight returns the end of b[from:to] with trailing spaces and tabs removed.
func trimRight(b []byte, from, to int) int {
	for to > from && isSpace(b[to-1]) {
		to--
	}
	return to
}

// tailCommentStart finds the comment marker in the tail of a directive or
// posting line, or returns to if there is none. A semicolon outside double
// quotes always opens a comment; a hash does when it starts the tail or
// follows whitespace.
func tailCommentStart(b []byte, from, to int) int {
	quoted := false
	for i := from; i < to; i++ {
		switch c := b[i]; c {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return i
			}
		case '#':
			if !quoted && (i == from || isSpace(b[i-1])) {
				return i
			}
		}
	}
	return to
}

// titleCommentStart finds the comment marker in a transaction title, or returns
// to if there is none. Descriptions often contain hashes ("Invoice #12"), so a
// hash only opens a comment after a tab or two spaces.
func titleCommentStart(b []byte, from, to int) int {
	for i := from; i < to; i++ {
		switch b[i] {
		case ';':
			return i
		case '#':
			if i-from >= 1 && b[i-1] == '\t' {
				return i
			}
			if i-from >= 2 && b[i-1] == ' ' && isSpace(b[i-2]) {
				return i
			}
		}
	}
	return to
}
