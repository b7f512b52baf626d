package parser

import "github.com/robinvdvleuten/hledger-fmt/ast"

// directive parses a directive line whose keyword is n bytes long and adds it
// to the open group, opening one if needed.
//
//	account assets:cash   ; type:A
//	└ name ┘└ content ┘   └ comment ┘
func (s *scanner) directive(n int) {
	nameEnd := s.lineStart + n
	contentStart := skipSpace(s.source, nameEnd, s.lineEnd)
	marker := tailCommentStart(s.source, contentStart, s.lineEnd)
	contentEnd := trimRight(s.source, contentStart, marker)

	d := &ast.Directive{
		Pos:     s.pos(s.lineStart),
		Name:    s.span(s.lineStart, nameEnd),
		Content: s.span(contentStart, contentEnd),
	}
	if marker < s.lineEnd {
		d.Comment = s.comment(marker, 0)
	}

	if s.group == nil {
		s.group = &ast.DirectivesGroup{Pos: d.Pos}
	}
	s.group.Nodes = append(s.group.Nodes, d)
	if w := d.Name.Width + d.Content.Width; w > s.group.MaxNameContentWidth {
		s.group.MaxNameContentWidth = w
	}
}

// subdirective adds an indented, non-comment line to the open group. The text
// is kept as is, including any comment.
func (s *scanner) subdirective(indent, at int) {
	end := trimRight(s.source, at, s.lineEnd)
	s.group.Nodes = append(s.group.Nodes, &ast.Subdirective{
		Pos:     s.pos(at),
		Content: s.span(at, end),
		Indent:  indent,
	})
}

func (s *scanner) closeGroup() {
	if s.group == nil {
		return
	}
	s.nodes = append(s.nodes, s.group)
	s.group = nil
}
