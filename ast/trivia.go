package ast

// Trivia holds the nodes that carry no journal data but must survive a
// round-trip: blank lines and comments.

// CommentPrefix is the marker character that opens a comment.
type CommentPrefix byte

const (
	HashPrefix      CommentPrefix = '#'
	SemicolonPrefix CommentPrefix = ';'
)

// String returns the prefix as it appears in the source.
func (p CommentPrefix) String() string { return string(rune(p)) }

// EmptyLine is a blank (or whitespace-only) line separating blocks.
type EmptyLine struct {
	Pos Position
}

func (e *EmptyLine) Position() Position { return e.Pos }
func (*EmptyLine) node()                {}

// Comment is a single-line comment. It appears at the top level, as a sibling
// inside a DirectivesGroup or Transaction, and inline after a directive,
// transaction title or posting.
//
// Content excludes the prefix and trailing whitespace. Indent is the column
// width of the whitespace preceding the prefix (tabs count as four) and is only
// meaningful for comments on their own line.
type Comment struct {
	Pos     Position
	Prefix  CommentPrefix
	Content Span
	Indent  int
}

func (c *Comment) Position() Position { return c.Pos }
func (*Comment) node()                {}
func (*Comment) directiveNode()       {}
func (*Comment) transactionNode()     {}

// MultilineComment is the raw text between a "comment" line and its matching
// "end comment" line. Content includes the line terminators of the source.
//
// Terminated is false when the input ended before "end comment" was seen.
type MultilineComment struct {
	Pos        Position
	Content    Span
	Terminated bool
}

func (m *MultilineComment) Position() Position { return m.Pos }
func (*MultilineComment) node()                {}
