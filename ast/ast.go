// Package ast defines the concrete syntax tree of an hledger journal.
//
// The tree keeps every layout detail the formatter needs and nothing more.
// Text is never copied out of the input: nodes hold Spans into Document.Source,
// each carrying the character width measured by the parser. Block nodes
// (DirectivesGroup and Transaction) additionally carry the running column
// maxima of their children, so rendering is a single pass with no measuring.
package ast

// Document is the parsed form of a journal: the source it borrows from and the
// top-level nodes in file order.
type Document struct {
	Filename string
	Source   []byte
	Nodes    []Node
}

// Node is a top-level element of a Document. It is one of *EmptyLine, *Comment,
// *MultilineComment, *DirectivesGroup or *Transaction.
type Node interface {
	Position() Position
	node()
}

// DirectiveNode is a line inside a DirectivesGroup. It is one of *Directive,
// *Subdirective or *Comment.
type DirectiveNode interface {
	Position() Position
	directiveNode()
}

// TransactionNode is a line inside a Transaction. It is either a *Posting or
// a *Comment.
type TransactionNode interface {
	Position() Position
	transactionNode()
}

// Text returns the source text for span.
func (d *Document) Text(span Span) string {
	return span.Text(d.Source)
}

// Bytes returns the source bytes for span without copying.
func (d *Document) Bytes(span Span) []byte {
	return span.Bytes(d.Source)
}
