package parser

import (
	"fmt"

	"github.com/robinvdvleuten/hledger-fmt/ast"
)

// SyntaxError is returned when a line cannot be placed in the document.
//
// Pos is the first offending character and EndColumn the column just past the
// last one, both 1-indexed. Expected describes what would have been accepted.
type SyntaxError struct {
	Pos       ast.Position
	EndColumn int
	Message   string
	Expected  string
}

func (e *SyntaxError) Error() string {
	location := fmt.Sprintf("%s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	if e.Pos.Filename == "" {
		location = fmt.Sprintf("line %d, column %d", e.Pos.Line, e.Pos.Column)
	}

	if e.Expected == "" {
		return fmt.Sprintf("%s: %s", location, e.Message)
	}
	return fmt.Sprintf("%s: %s (expected %s)", location, e.Message, e.Expected)
}

func (e *SyntaxError) GetPosition() ast.Position {
	return e.Pos
}
