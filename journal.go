// Package hledgerfmt formats hledger journals.
//
// Format parses a journal and renders it again with the columns of every
// directive group and transaction aligned. Use the parser and formatter
// packages directly to inspect the syntax tree or to reuse a parsed document.
package hledgerfmt

import (
	"context"

	"github.com/robinvdvleuten/hledger-fmt/formatter"
	"github.com/robinvdvleuten/hledger-fmt/parser"
	"github.com/robinvdvleuten/hledger-fmt/width"
)

type config struct {
	filename     string
	entrySpacing int
	displayWidth bool
}

// Option configures Format.
type Option func(*config)

// WithEntrySpacing sets the number of spaces between posting columns.
func WithEntrySpacing(spacing int) Option {
	return func(c *config) {
		c.entrySpacing = spacing
	}
}

// WithDisplayWidth aligns columns by terminal cell width instead of by
// character count, so wide characters take two columns.
func WithDisplayWidth() Option {
	return func(c *config) {
		c.displayWidth = true
	}
}

// WithFilename sets the filename reported in syntax errors.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// Format parses src and returns the formatted journal. The only error it
// returns is a *parser.SyntaxError.
func Format(ctx context.Context, src []byte, opts ...Option) ([]byte, error) {
	c := config{entrySpacing: formatter.DefaultEntrySpacing}
	for _, opt := range opts {
		opt(&c)
	}

	popts := []parser.Option{parser.WithFilename(c.filename)}
	if c.displayWidth {
		popts = append(popts, parser.WithWidthFunc(width.Display))
	}

	doc, err := parser.New(popts...).Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	return formatter.New(
		formatter.WithEntrySpacing(c.entrySpacing),
		formatter.WithEstimatedLength(len(src)),
	).FormatBytes(ctx, doc), nil
}

// FormatString is like Format for string input.
func FormatString(ctx context.Context, src string, opts ...Option) (string, error) {
	out, err := Format(ctx, []byte(src), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
