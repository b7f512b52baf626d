package parser

// directiveKeywords are the words that open a directive line at column 0.
// Multi-word keywords must be separated by exactly one space.
var directiveKeywords = [...]string{
	"account",
	"commodity",
	"decimal-mark",
	"payee",
	"tag",
	"include",
	"P",
	"apply account",
	"D",
	"Y",
	"apply fixed",
	"apply tag",
	"assert",
	"capture",
	"check",
	"define",
	"bucket",
	"A",
	"end apply fixed",
	"end apply tag",
	"end apply year",
	"end tag",
	"eval",
	"expr",
	"python",
	"value",
	"--command-line-flags",
}

// matchDirective returns the length of the directive keyword line starts with,
// or 0 if it does not start with one. A keyword must be followed by a space,
// a tab or the end of the line.
func matchDirective(line []byte) int {
	for _, kw := range directiveKeywords {
		n := len(kw)
		if len(line) < n || string(line[:n]) != kw {
			continue
		}
		if len(line) == n || isSpace(line[n]) {
			return n
		}
	}
	return 0
}
