package parser

import (
	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/width"
)

// valueState is the position of the decomposer inside a posting value.
//
// A value is a sequence of up to three parts joined by separators:
//
//	10.00 EUR  @  $1.10  =  $500
//	└ part ┘  sep └part┘ sep └part┘
//
// Each part moves from its leading commodity, through the number, to its
// trailing commodity. The number states are tracked so a part without a
// decimal mark can still be split right after its digits.
type valueState int

const (
	partCommodityBefore valueState = iota
	partNumber
	partCommodityAfter
	partSeparator
)

func (s valueState) String() string {
	switch s {
	case partCommodityBefore:
		return "commodity-before"
	case partNumber:
		return "number"
	case partCommodityAfter:
		return "commodity-after"
	case partSeparator:
		return "separator"
	}
	return "unknown"
}

type valueRange struct {
	start, end int
	numEnd     int // end of the first numeric run, -1 if the part has none
}

// valueDecomposer splits posting values into aligned columns. One instance is
// reused for every posting of a parse and reset in between.
type valueDecomposer struct {
	width width.Func

	state  valueState
	part   int
	quoted bool
	parts  [ast.ValueParts]valueRange
	seps   [ast.ValueParts - 1]valueRange
}

func (d *valueDecomposer) reset() {
	d.state = partCommodityBefore
	d.part = 0
	d.quoted = false
	for i := range d.parts {
		d.parts[i] = valueRange{numEnd: -1}
	}
	for i := range d.seps {
		d.seps[i] = valueRange{numEnd: -1}
	}
}

// DecomposeValue splits a trimmed posting value into its parts and separators.
// The returned spans are relative to value. It never fails: text that does not
// look like an amount ends up in the closest matching column.
func DecomposeValue(value []byte) ast.PostingValue {
	d := valueDecomposer{width: width.Chars}
	return d.decompose(value, 0, len(value))
}

// decompose splits src[start:end] and returns spans into src.
func (d *valueDecomposer) decompose(src []byte, start, end int) ast.PostingValue {
	d.reset()
	if start >= end {
		return ast.PostingValue{}
	}

	last := ast.ValueParts - 1
	cur := &d.parts[0]
	cur.start, cur.end = start, start

	sepStart, sepEnd := -1, -1
	sepClosed := false

	i := start
	for i < end {
		c := src[i]

		if d.state == partSeparator {
			switch {
			case isSpace(c):
				if sepStart >= 0 {
					sepClosed = true
				}
				i++
				continue
			case !sepClosed && (c == '@' || c == '=' || (c == '*' && sepStart >= 0)):
				if sepStart < 0 {
					sepStart = i
				}
				sepEnd = i + 1
				i++
				continue
			}

			if sepStart < 0 {
				sepStart, sepEnd = i, i
			}
			d.seps[d.part] = valueRange{start: sepStart, end: sepEnd, numEnd: -1}
			sepStart, sepEnd, sepClosed = -1, -1, false

			d.part++
			d.state = partCommodityBefore
			cur = &d.parts[d.part]
			cur.start, cur.end = i, i
			continue
		}

		if d.quoted {
			if c == '"' {
				d.quoted = false
			}
			cur.end = i + 1
			i++
			continue
		}

		if d.part < last {
			if c == '\t' || (c == ' ' && i+1 < end && isSpace(src[i+1])) {
				d.state = partSeparator
				i++
				continue
			}
			if c == '@' || c == '=' {
				d.state = partSeparator
				continue
			}
		}

		switch {
		case isSpace(c):
			if d.state == partNumber {
				d.state = partCommodityAfter
			}
			i++
			continue
		case c == '"':
			d.quoted = true
		}

		switch d.state {
		case partCommodityBefore:
			if isDigit(c) {
				d.state = partNumber
				cur.numEnd = i + 1
			}
		case partNumber:
			if isDigit(c) || c == '.' || c == ',' {
				cur.numEnd = i + 1
			} else {
				d.state = partCommodityAfter
			}
		}

		cur.end = i + 1
		i++
	}

	if d.state == partSeparator && sepStart >= 0 {
		d.seps[d.part] = valueRange{start: sepStart, end: sepEnd, numEnd: -1}
	}

	var v ast.PostingValue
	for k := range d.parts {
		r := d.parts[k]
		if r.end <= r.start {
			continue
		}
		mid := r.start + splitPart(src[r.start:r.end], r.numEnd-r.start)
		v.Parts[k] = ast.ValuePart{
			Before: d.span(src, r.start, mid),
			After:  d.span(src, mid, r.end),
		}
	}
	for k := range d.seps {
		r := d.seps[k]
		if r.end > r.start {
			v.Separators[k] = d.span(src, r.start, r.end)
		}
	}
	return v
}

func (d *valueDecomposer) span(src []byte, start, end int) ast.Span {
	if end <= start {
		return ast.Span{Start: start, End: start}
	}
	return ast.Span{Start: start, End: end, Width: d.width(src[start:end])}
}

// splitPart returns the length of the "before decimals" half of an amount.
//
// The right-most '.' or ',' outside quotes is the decimal mark, unless exactly
// three digits follow it, in which case it groups thousands and the whole part
// is kept together. Without a mark the part is split after its numeric run
// (numEnd, negative when there is none).
func splitPart(part []byte, numEnd int) int {
	mark := -1
	quoted := false
	for i, c := range part {
		switch {
		case c == '"':
			quoted = !quoted
		case !quoted && (c == '.' || c == ','):
			mark = i
		}
	}

	if mark >= 0 {
		digits := 0
		for j := mark + 1; j < len(part) && isDigit(part[j]); j++ {
			digits++
		}
		if digits == 3 {
			return len(part)
		}
		return mark
	}

	if numEnd >= 0 {
		return numEnd
	}
	return len(part)
}
