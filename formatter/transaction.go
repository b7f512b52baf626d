package formatter

import "github.com/robinvdvleuten/hledger-fmt/ast"

// transaction writes a transaction with its postings aligned in columns:
//
//	2024-01-01 exchange  ; note
//	    assets:cash   10.00 EUR  @  $1.10
//	    assets:bank  -11 USD
//
// Every value part is aligned on its decimal mark. Comments start at the entry
// spacing past the line, but never before the title comment column.
func (p *printer) transaction(t *ast.Transaction) {
	p.text(t.Title)
	if t.TitleComment != nil {
		p.pad(TitleCommentGap)
		p.comment(t.TitleComment)
	}
	p.newline()

	titleColumn := t.Title.Width + TitleCommentGap
	last := lastSlot(t)

	for _, entry := range t.Entries {
		switch e := entry.(type) {
		case *ast.Comment:
			p.pad(t.FirstEntryIndent)
			p.comment(e)
			p.newline()
		case *ast.Posting:
			p.posting(t, e, last, titleColumn)
		}
	}
}

func (p *printer) posting(t *ast.Transaction, e *ast.Posting, last, titleColumn int) {
	start := len(p.out)

	p.pad(t.FirstEntryIndent)
	p.text(e.Name)
	column := t.FirstEntryIndent + e.Name.Width

	if !e.Value.Empty() {
		n := t.MaxNameWidth - e.Name.Width + p.spacing
		p.pad(n)
		column += n

		for k := 0; k <= last; k++ {
			if k > 0 {
				column += p.separator(t.MaxSeparators[k-1], e.Value.Separators[k-1])
			}
			column += p.part(t.MaxParts[k], e.Value.Parts[k])
		}
	}

	if e.Comment != nil {
		p.pad(max(titleColumn, column+p.spacing) - column)
		p.comment(e.Comment)
	} else {
		p.trimTrailingSpaces(start)
	}
	p.newline()
}

// part writes one value column and returns its width.
func (p *printer) part(widths ast.PartWidths, part ast.ValuePart) int {
	p.pad(widths.Before - part.Before.Width)
	p.text(part.Before)
	p.text(part.After)
	p.pad(widths.After - part.After.Width)
	return widths.Width()
}

// separator writes the column between two value parts and returns its width.
// When no posting has a separator in this slot, the column is just the entry
// spacing.
func (p *printer) separator(widest int, sep ast.Span) int {
	if widest == 0 {
		p.pad(p.spacing)
		return p.spacing
	}

	w := 2*p.spacing + widest
	if sep.Empty() {
		p.pad(w)
		return w
	}

	p.pad(p.spacing)
	p.text(sep)
	p.pad(widest - sep.Width + p.spacing)
	return w
}

// lastSlot returns the index of the last value part any posting of t uses.
func lastSlot(t *ast.Transaction) int {
	last := 0
	for k := 1; k < ast.ValueParts; k++ {
		if t.MaxParts[k].Width() > 0 || t.MaxSeparators[k-1] > 0 {
			last = k
		}
	}
	return last
}
