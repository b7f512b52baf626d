package formatter

// blanks is sliced to write padding without building strings.
const blanks = "                                                                "

func (p *printer) pad(n int) {
	for n > len(blanks) {
		p.out = append(p.out, blanks...)
		n -= len(blanks)
	}
	if n > 0 {
		p.out = append(p.out, blanks[:n]...)
	}
}

// trimTrailingSpaces removes spaces written since offset start.
func (p *printer) trimTrailingSpaces(start int) {
	end := len(p.out)
	for end > start && p.out[end-1] == ' ' {
		end--
	}
	p.out = p.out[:end]
}
