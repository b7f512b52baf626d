package ast

// DirectivesGroup is a run of consecutive directive lines, together with the
// subdirectives and comments between them.
type DirectivesGroup struct {
	Pos   Position
	Nodes []DirectiveNode

	// MaxNameContentWidth is the widest name plus content over all directives
	// in the group. Inline comments align one column past it.
	MaxNameContentWidth int
}

func (g *DirectivesGroup) Position() Position { return g.Pos }
func (*DirectivesGroup) node()                {}

// Directive is a top-level keyword line such as "account assets:cash".
type Directive struct {
	Pos     Position
	Name    Span
	Content Span
	Comment *Comment
}

func (d *Directive) Position() Position { return d.Pos }
func (*Directive) directiveNode()       {}

// Subdirective is an indented line under a directive. Content is the trimmed
// line text, including any comment, which is rendered as is.
type Subdirective struct {
	Pos     Position
	Content Span
	Indent  int
}

func (s *Subdirective) Position() Position { return s.Pos }
func (*Subdirective) directiveNode()       {}

// Transaction is a title line followed by its postings and comments.
type Transaction struct {
	Pos          Position
	Title        Span
	TitleComment *Comment
	Entries      []TransactionNode

	// FirstEntryIndent is the indentation every entry is rendered with.
	FirstEntryIndent int

	// MaxNameWidth is the widest posting name in the transaction.
	MaxNameWidth int

	// MaxParts and MaxSeparators hold the widest value part and separator per
	// slot over all postings in the transaction.
	MaxParts      [ValueParts]PartWidths
	MaxSeparators [ValueParts - 1]int
}

func (t *Transaction) Position() Position { return t.Pos }
func (*Transaction) node()                {}

// Postings returns the postings of the transaction, skipping comments.
func (t *Transaction) Postings() []*Posting {
	postings := make([]*Posting, 0, len(t.Entries))
	for _, entry := range t.Entries {
		if p, ok := entry.(*Posting); ok {
			postings = append(postings, p)
		}
	}
	return postings
}

// Posting is one account line of a transaction.
type Posting struct {
	Pos     Position
	Indent  int
	Name    Span
	Value   PostingValue
	Comment *Comment
}

func (p *Posting) Position() Position { return p.Pos }
func (*Posting) transactionNode()     {}

// ValueParts is the number of amount slots a posting value is split into:
// the amount, the cost or price and the balance assertion target.
const ValueParts = 3

// PostingValue is a posting's value text decomposed into aligned columns.
//
// Separators[i] is the marker between Parts[i] and Parts[i+1], in the order
// the markers appear in the source ("@", "@@", "=", "==", "==*").
type PostingValue struct {
	Parts      [ValueParts]ValuePart
	Separators [ValueParts - 1]Span
}

// Empty reports whether the posting has no value at all.
func (v PostingValue) Empty() bool {
	for _, part := range v.Parts {
		if !part.Empty() {
			return false
		}
	}
	for _, sep := range v.Separators {
		if !sep.Empty() {
			return false
		}
	}
	return true
}

// ValuePart is one amount split at its decimal mark. Before holds everything up
// to the mark and After the mark and everything following it.
type ValuePart struct {
	Before Span
	After  Span
}

// Empty reports whether the part has no text.
func (p ValuePart) Empty() bool {
	return p.Before.Empty() && p.After.Empty()
}

// Width returns the character width of the whole part.
func (p ValuePart) Width() int {
	return p.Before.Width + p.After.Width
}

// PartWidths holds the widths of the two halves of a value part column.
type PartWidths struct {
	Before int
	After  int
}

// Width returns the total width of the column.
func (w PartWidths) Width() int {
	return w.Before + w.After
}
