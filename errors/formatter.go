// Package errors renders errors produced while reading journals. It keeps
// presentation out of the parser, so the same error can be shown on a
// terminal (TextFormatter) or handed to another program (JSONFormatter).
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output in hledger style.
type TextFormatter struct {
	source []byte
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the journal content used to print the lines around a
// syntax error.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Syntax errors get the offending line and
// carets under the offending characters when the source is known.
func (tf *TextFormatter) Format(err error) string {
	var syntaxErr *parser.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return tf.formatSyntaxError(syntaxErr)
	}

	if e, ok := err.(interface {
		GetPosition() ast.Position
		Error() string
	}); ok {
		pos := e.GetPosition()
		return fmt.Sprintf("%s:%d: %s", displayName(pos.Filename), pos.Line, e.Error())
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (tf *TextFormatter) formatSyntaxError(e *parser.SyntaxError) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "hledger-fmt error: %s:%d:%d:\n", displayName(e.Pos.Filename), e.Pos.Line, e.Pos.Column)

	lines := bytes.Split(tf.source, []byte("\n"))
	if tf.source != nil && e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
		number := strconv.Itoa(e.Pos.Line)
		gutter := string(bytes.Repeat([]byte(" "), len(number)))

		if e.Pos.Line > 1 {
			fmt.Fprintf(&buf, "%s | %s\n", gutter, bytes.TrimRight(lines[e.Pos.Line-2], "\r"))
		}
		line := bytes.TrimRight(lines[e.Pos.Line-1], "\r")
		fmt.Fprintf(&buf, "%s | %s\n", number, line)
		fmt.Fprintf(&buf, "%s | %s\n", gutter, carets(line, e.Pos.Column, e.EndColumn))
	}

	buf.WriteString(e.Message)
	if e.Expected != "" {
		buf.WriteString("\nExpected ")
		buf.WriteString(e.Expected)
	}
	return buf.String()
}

// carets underlines the byte columns [start, end) of line. Tabs before the
// error are kept so the carets line up in any terminal.
func carets(line []byte, start, end int) string {
	from := min(max(start-1, 0), len(line))
	to := min(max(end-1, from), len(line))

	var buf bytes.Buffer
	for _, r := range string(line[:from]) {
		if r == '\t' {
			buf.WriteByte('\t')
			continue
		}
		for range max(runewidth.RuneWidth(r), 1) {
			buf.WriteByte(' ')
		}
	}

	n := runewidth.StringWidth(string(line[from:to]))
	for range max(n, 1) {
		buf.WriteByte('^')
	}
	return buf.String()
}

func displayName(filename string) string {
	if filename == "" {
		return "-"
	}
	return filename
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Position *PositionJSON  `json:"position,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	var syntaxErr *parser.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		errJSON.Type = "syntax"
		errJSON.Message = syntaxErr.Message
		errJSON.Details = map[string]any{"end_column": syntaxErr.EndColumn}
		if syntaxErr.Expected != "" {
			errJSON.Details["expected"] = syntaxErr.Expected
		}
	}

	if e, ok := err.(interface{ GetPosition() ast.Position }); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	} else if syntaxErr != nil {
		errJSON.Position = &PositionJSON{
			Filename: syntaxErr.Pos.Filename,
			Line:     syntaxErr.Pos.Line,
			Column:   syntaxErr.Pos.Column,
		}
	}

	return errJSON
}
