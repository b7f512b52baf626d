package parser

import "github.com/robinvdvleuten/hledger-fmt/ast"

// transactionBuilder accumulates the open transaction.
type transactionBuilder struct {
	txn       *ast.Transaction
	postings  int
	indentSet bool
}

func (b *transactionBuilder) open() bool {
	return b.txn != nil
}

func (b *transactionBuilder) reset() {
	b.txn = nil
	b.postings = 0
	b.indentSet = false
}

// addComment appends a comment line. Until the first posting is seen, the
// first indented comment decides the indentation of the entries.
func (b *transactionBuilder) addComment(c *ast.Comment) {
	if b.postings == 0 && !b.indentSet && c.Indent > 0 {
		b.txn.FirstEntryIndent = c.Indent
		b.indentSet = true
	}
	b.txn.Entries = append(b.txn.Entries, c)
}

func (b *transactionBuilder) addPosting(p *ast.Posting) {
	t := b.txn
	if b.postings == 0 {
		t.FirstEntryIndent = p.Indent
		b.indentSet = true
	}
	b.postings++
	t.Entries = append(t.Entries, p)

	t.MaxNameWidth = max(t.MaxNameWidth, p.Name.Width)
	for k, part := range p.Value.Parts {
		t.MaxParts[k].Before = max(t.MaxParts[k].Before, part.Before.Width)
		t.MaxParts[k].After = max(t.MaxParts[k].After, part.After.Width)
	}
	for k, sep := range p.Value.Separators {
		t.MaxSeparators[k] = max(t.MaxSeparators[k], sep.Width)
	}
}

// title starts a new transaction from the current line. A transaction that is
// still open is closed and separated from the new one by a blank line.
func (s *scanner) title() {
	if s.txn.open() {
		s.closeTransaction()
		s.nodes = append(s.nodes, &ast.EmptyLine{Pos: s.pos(s.lineStart)})
	} else {
		s.closeGroup()
	}

	marker := titleCommentStart(s.source, s.lineStart, s.lineEnd)
	txn := &ast.Transaction{
		Pos:   s.pos(s.lineStart),
		Title: s.span(s.lineStart, trimRight(s.source, s.lineStart, marker)),
	}
	if marker < s.lineEnd {
		txn.TitleComment = s.comment(marker, 0)
	}
	s.txn.txn = txn
}

// entry handles an indented line inside the open transaction.
func (s *scanner) entry(indent, at int) {
	if isCommentPrefix(s.source[at]) {
		s.txn.addComment(s.comment(at, indent))
		return
	}
	s.txn.addPosting(s.posting(indent, at))
}

// posting parses a posting line starting at offset at.
//
//	assets:cash  10.00 EUR @ $1.10  ; comment
//	└── name ──┘ └───── value ────┘ └ comment ┘
//
// The name ends at a tab or at two consecutive spaces, so single spaces are
// part of the name.
func (s *scanner) posting(indent, at int) *ast.Posting {
	i := at
	for i < s.lineEnd {
		c := s.source[i]
		if c == '\t' || (c == ' ' && i+1 < s.lineEnd && isSpace(s.source[i+1])) {
			break
		}
		i++
	}
	nameEnd := trimRight(s.source, at, i)

	valueStart := skipSpace(s.source, i, s.lineEnd)
	marker := tailCommentStart(s.source, valueStart, s.lineEnd)
	valueEnd := trimRight(s.source, valueStart, marker)

	p := &ast.Posting{
		Pos:    s.pos(at),
		Indent: indent,
		Name:   s.span(at, nameEnd),
		Value:  s.values.decompose(s.source, valueStart, valueEnd),
	}
	if marker < s.lineEnd {
		p.Comment = s.comment(marker, 0)
	}
	return p
}

func (s *scanner) closeTransaction() {
	if !s.txn.open() {
		return
	}
	s.nodes = append(s.nodes, s.txn.txn)
	s.txn.reset()
}
