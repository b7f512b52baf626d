// Package formatter renders an ast.Document back to journal text with its
// columns aligned.
//
// All widths are taken from the document: the parser has already measured
// every span and stored the per-block maxima, so rendering is a single pass
// that only copies source text and inserts padding.
package formatter

import (
	"context"
	"io"

	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/telemetry"
)

const (
	// DefaultEntrySpacing is the default number of spaces between columns.
	DefaultEntrySpacing = 2

	// MinimumSpacing is the smallest column gap that still parses back into
	// the same columns: a single space would join a posting name to its amount.
	MinimumSpacing = 2

	// SubdirectiveIndent is the indentation of lines under a directive.
	SubdirectiveIndent = 2

	// TitleCommentGap is the gap between a transaction title and its comment.
	TitleCommentGap = 2
)

// Formatter handles formatting of journals with proper alignment.
type Formatter struct {
	// EntrySpacing is the number of spaces between a posting's columns and
	// before aligned comments.
	EntrySpacing int

	// EstimatedLength is a capacity hint for the output buffer. If 0, the
	// length of the source is used.
	EstimatedLength int
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithEntrySpacing sets the number of spaces between columns. Values below
// MinimumSpacing are raised to it.
func WithEntrySpacing(spacing int) Option {
	return func(f *Formatter) {
		f.EntrySpacing = spacing
	}
}

// WithEstimatedLength sets the expected output size in bytes.
func WithEstimatedLength(n int) Option {
	return func(f *Formatter) {
		f.EstimatedLength = n
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		EntrySpacing: DefaultEntrySpacing,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.EntrySpacing < MinimumSpacing {
		f.EntrySpacing = MinimumSpacing
	}

	return f
}

// Format renders doc and writes the result to w.
func (f *Formatter) Format(ctx context.Context, doc *ast.Document, w io.Writer) error {
	_, err := w.Write(f.FormatBytes(ctx, doc))
	return err
}

// FormatBytes renders doc into a newly allocated buffer. The document and its
// source are not modified.
func (f *Formatter) FormatBytes(ctx context.Context, doc *ast.Document) []byte {
	_, timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	size := f.EstimatedLength
	if size <= 0 {
		size = len(doc.Source) + len(doc.Source)/8
	}

	p := &printer{
		src:     doc.Source,
		out:     make([]byte, 0, size),
		spacing: f.EntrySpacing,
	}
	for _, node := range doc.Nodes {
		p.node(node)
	}
	return p.out
}

// printer accumulates the output of a single FormatBytes call.
type printer struct {
	src     []byte
	out     []byte
	spacing int
}

func (p *printer) node(node ast.Node) {
	switch n := node.(type) {
	case *ast.EmptyLine:
		p.newline()
	case *ast.Comment:
		p.pad(n.Indent)
		p.comment(n)
		p.newline()
	case *ast.MultilineComment:
		p.multiline(n)
	case *ast.DirectivesGroup:
		p.group(n)
	case *ast.Transaction:
		p.transaction(n)
	}
}

// multiline writes the comment block with "\r\n" line endings normalized.
// An unterminated block is closed.
func (p *printer) multiline(m *ast.MultilineComment) {
	p.out = append(p.out, "comment\n"...)

	content := m.Content.Bytes(p.src)
	for len(content) > 0 {
		line := content
		rest := []byte(nil)
		for i, c := range content {
			if c == '\n' {
				line, rest = content[:i], content[i+1:]
				break
			}
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		p.out = append(p.out, line...)
		p.newline()
		content = rest
	}

	p.out = append(p.out, "end comment\n"...)
}

// group writes a directives group. Inline and sibling comments start one
// column past the widest directive plus the entry spacing.
func (p *printer) group(g *ast.DirectivesGroup) {
	column := g.MaxNameContentWidth + 1 + p.spacing

	for _, node := range g.Nodes {
		switch n := node.(type) {
		case *ast.Directive:
			p.text(n.Name)
			w := n.Name.Width
			if !n.Content.Empty() {
				p.out = append(p.out, ' ')
				p.text(n.Content)
				w += 1 + n.Content.Width
			}
			if n.Comment != nil {
				p.pad(column - w)
				p.comment(n.Comment)
			}
		case *ast.Subdirective:
			p.pad(SubdirectiveIndent)
			p.text(n.Content)
		case *ast.Comment:
			p.pad(column)
			p.comment(n)
		}
		p.newline()
	}
}

func (p *printer) comment(c *ast.Comment) {
	p.out = append(p.out, byte(c.Prefix))
	p.text(c.Content)
}

func (p *printer) text(s ast.Span) {
	p.out = append(p.out, s.Bytes(p.src)...)
}

func (p *printer) newline() {
	p.out = append(p.out, '\n')
}
