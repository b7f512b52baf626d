// Package parser turns hledger journal source into an ast.Document.
//
// Parsing is a single forward pass over the input, one line at a time. Every
// line is classified by its first bytes and by the block that is currently
// open (a directive group or a transaction), then handed to the matching
// builder. Nothing is copied out of the source: the resulting document holds
// spans into the input buffer, which must not be modified while the document
// is in use.
package parser

import (
	"bytes"
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/telemetry"
	"github.com/robinvdvleuten/hledger-fmt/width"
)

// Parser holds the settings used to parse journals. A Parser has no mutable
// state and may be used from multiple goroutines.
type Parser struct {
	width    width.Func
	filename string
}

// Option configures a Parser.
type Option func(*Parser)

// WithWidthFunc sets the function used to measure text for alignment.
// The default is width.Chars.
func WithWidthFunc(fn width.Func) Option {
	return func(p *Parser) {
		p.width = fn
	}
}

// WithFilename sets the filename reported in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// New creates a Parser with the given options.
func New(opts ...Option) *Parser {
	p := &Parser{width: width.Chars}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses data into a document. Parsing stops at the first syntax error,
// which is returned as a *SyntaxError.
func (p *Parser) Parse(ctx context.Context, data []byte) (*ast.Document, error) {
	_, timer := telemetry.StartTimer(ctx, "parser.parse")
	defer timer.End()

	s := newScanner(data, p.filename, p.width)
	return s.run()
}

// ParseBytes parses data with the default settings.
func ParseBytes(ctx context.Context, data []byte) (*ast.Document, error) {
	return New().Parse(ctx, data)
}

// ParseBytesWithFilename parses data, reporting positions against filename.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte) (*ast.Document, error) {
	return New(WithFilename(filename)).Parse(ctx, data)
}

// ParseString parses a journal held in a string.
func ParseString(ctx context.Context, str string) (*ast.Document, error) {
	return ParseBytes(ctx, []byte(str))
}

// scanner is the state of a single parse.
type scanner struct {
	source   []byte
	filename string
	width    width.Func

	nodes []ast.Node

	line      int // current line (1-indexed)
	lineStart int // offset of the first byte of the line
	lineEnd   int // offset past the last byte, excluding "\n" and "\r"
	next      int // offset of the next line

	multiline *ast.MultilineComment
	group     *ast.DirectivesGroup
	txn       transactionBuilder
	values    valueDecomposer
}

func newScanner(source []byte, filename string, fn width.Func) *scanner {
	// Roughly one top-level node per 100 bytes of a typical journal.
	return &scanner{
		source:   source,
		filename: filename,
		width:    fn,
		nodes:    make([]ast.Node, 0, len(source)/100+8),
		values:   valueDecomposer{width: fn},
	}
}

func (s *scanner) run() (*ast.Document, error) {
	for s.next < len(s.source) {
		s.lineStart = s.next
		s.line++

		if i := bytes.IndexByte(s.source[s.lineStart:], '\n'); i >= 0 {
			s.lineEnd = s.lineStart + i
			s.next = s.lineEnd + 1
		} else {
			s.lineEnd = len(s.source)
			s.next = len(s.source)
		}
		if s.lineEnd > s.lineStart && s.source[s.lineEnd-1] == '\r' {
			s.lineEnd--
		}

		if err := s.dispatch(); err != nil {
			return nil, err
		}
	}

	if s.multiline != nil {
		s.closeMultiline()
	}
	s.closeBlocks()

	return &ast.Document{
		Filename: s.filename,
		Source:   s.source,
		Nodes:    s.nodes,
	}, nil
}

// dispatch classifies the current line and routes it to its builder.
func (s *scanner) dispatch() error {
	line := s.source[s.lineStart:s.lineEnd]
	trimmed := line[:trimRight(line, 0, len(line))]

	if s.multiline != nil {
		if string(trimmed) == "end comment" {
			s.multiline.Terminated = true
			s.closeMultiline()
			return nil
		}
		s.multiline.Content.End = s.next
		return nil
	}

	if isBlank(line) {
		s.closeBlocks()
		s.nodes = append(s.nodes, &ast.EmptyLine{Pos: s.pos(s.lineStart)})
		return nil
	}

	if string(trimmed) == "comment" {
		s.closeBlocks()
		s.multiline = &ast.MultilineComment{
			Pos:     s.pos(s.lineStart),
			Content: ast.Span{Start: s.next, End: s.next},
		}
		return nil
	}

	switch c := line[0]; {
	case isCommentPrefix(c):
		s.topComment(s.comment(s.lineStart, 0))
	case isSpace(c):
		return s.continuation()
	default:
		if n := matchDirective(line); n > 0 {
			s.closeTransaction()
			s.directive(n)
		} else {
			s.title()
		}
	}
	return nil
}

// topComment places a comment that starts a line. It joins the open block if
// there is one.
func (s *scanner) topComment(c *ast.Comment) {
	switch {
	case s.group != nil:
		s.group.Nodes = append(s.group.Nodes, c)
	case s.txn.open():
		s.txn.addComment(c)
	default:
		s.nodes = append(s.nodes, c)
	}
}

// continuation handles a line that starts with whitespace.
func (s *scanner) continuation() error {
	indent, n := width.Indent(s.source[s.lineStart:s.lineEnd])
	at := s.lineStart + n

	if s.txn.open() {
		s.entry(indent, at)
		return nil
	}

	if isCommentPrefix(s.source[at]) {
		s.topComment(s.comment(at, indent))
		return nil
	}

	if s.group != nil {
		s.subdirective(indent, at)
		return nil
	}

	r, size := utf8.DecodeRune(s.source[at:s.lineEnd])
	pos := s.pos(at)
	return &SyntaxError{
		Pos:       pos,
		EndColumn: pos.Column + size,
		Message:   "unexpected character " + strconv.QuoteRune(r),
		Expected:  "'#', ';' or newline",
	}
}

// comment parses a comment whose prefix is at offset at and runs to the end of
// the line.
func (s *scanner) comment(at, indent int) *ast.Comment {
	end := trimRight(s.source, at+1, s.lineEnd)
	return &ast.Comment{
		Pos:     s.pos(at),
		Prefix:  ast.CommentPrefix(s.source[at]),
		Content: s.span(at+1, end),
		Indent:  indent,
	}
}

func (s *scanner) closeBlocks() {
	s.closeGroup()
	s.closeTransaction()
}

func (s *scanner) closeMultiline() {
	s.nodes = append(s.nodes, s.multiline)
	s.multiline = nil
}

func (s *scanner) span(start, end int) ast.Span {
	if end <= start {
		return ast.Span{Start: start, End: start}
	}
	return ast.Span{Start: start, End: end, Width: s.width(s.source[start:end])}
}

// pos returns the position of offset, which must lie on the current line.
func (s *scanner) pos(offset int) ast.Position {
	return ast.Position{
		Filename: s.filename,
		Offset:   offset,
		Line:     s.line,
		Column:   offset - s.lineStart + 1,
	}
}
