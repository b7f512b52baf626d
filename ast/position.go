package ast

import "fmt"

// Position represents a location in the source file.
type Position struct {
	Filename string
	Offset   int // Byte offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed)
}

// Span is a zero-copy view into the document source.
//
// Width is the character width of the viewed text, computed once at parse time
// so the formatter never has to measure text again.
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
	Width int
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Bytes returns the source bytes for this span without copying.
// Returns nil if the span is empty or out of range.
func (s Span) Bytes(source []byte) []byte {
	if s.Empty() || s.Start < 0 || s.End > len(source) {
		return nil
	}
	return source[s.Start:s.End]
}

// Text extracts the source text for this span.
func (s Span) Text(source []byte) string {
	return string(s.Bytes(source))
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}
