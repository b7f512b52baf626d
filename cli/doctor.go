package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/loader"
)

// DoctorCmd provides doctor utilities for debugging journal files.
type DoctorCmd struct {
	CST    CSTCmd    `cmd:"" name:"cst" help:"Dump the concrete syntax tree of a journal file."`
	Values ValuesCmd `cmd:"" help:"Show how posting values are split into alignment columns."`
}

// load reads file and renders a syntax error when it cannot be parsed.
func load(ctx context.Context, file *FileOrStdin, stderr io.Writer) (*loader.File, error) {
	f, err := file.Load(ctx, loader.New())
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if f.Err != nil {
		_, _ = fmt.Fprintln(stderr, NewErrorRenderer(f.Source).Render(f.Err))
		return nil, NewCommandError(ExitFailure)
	}
	return f, nil
}

// CSTCmd dumps the concrete syntax tree of a journal file.
type CSTCmd struct {
	File FileOrStdin `help:"Journal filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the cst command.
func (cmd *CSTCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.startTelemetry(context.Background(), ctx.Stderr, "doctor cst")
	defer report()

	f, err := load(runCtx, &cmd.File, ctx.Stderr)
	if err != nil {
		return err
	}

	dumpCST(ctx.Stdout, f.Document)
	return nil
}

func dumpCST(w io.Writer, doc *ast.Document) {
	repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(doc.Nodes)
}

// ValuesCmd shows the decomposition of every posting value.
type ValuesCmd struct {
	File FileOrStdin `help:"Journal filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the values command.
func (cmd *ValuesCmd) Run(ctx *kong.Context, globals *Globals) error {
	globals.applyColor()

	runCtx, report := globals.startTelemetry(context.Background(), ctx.Stderr, "doctor values")
	defer report()

	f, err := load(runCtx, &cmd.File, ctx.Stderr)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(ctx.Stdout, valuesTable(f.Document))
	return nil
}

// valuesTable lists each posting with its value parts. Parts are shown as
// the text left and right of the alignment point, joined by "|".
func valuesTable(doc *ast.Document) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINE", "ACCOUNT", "AMOUNT", "SEP", "PRICE", "SEP", "ASSERTION", "QUANTITY").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, node := range doc.Nodes {
		txn, ok := node.(*ast.Transaction)
		if !ok {
			continue
		}
		for _, p := range txn.Postings() {
			t.Row(postingRow(doc, p)...)
		}
	}

	return t
}

func postingRow(doc *ast.Document, p *ast.Posting) []string {
	part := func(i int) string {
		v := p.Value.Parts[i]
		if v.Empty() {
			return ""
		}
		return doc.Text(v.Before) + "|" + doc.Text(v.After)
	}

	amount := p.Value.Parts[0]
	qty := ""
	if d, ok := quantity(doc.Text(amount.Before) + doc.Text(amount.After)); ok {
		qty = d.String()
	}

	return []string{
		strconv.Itoa(p.Pos.Line),
		doc.Text(p.Name),
		part(0),
		doc.Text(p.Value.Separators[0]),
		part(1),
		doc.Text(p.Value.Separators[1]),
		part(2),
		qty,
	}
}

// quantity extracts the number of an amount such as "$-1,000.50" or
// "10 EUR". A lone mark followed by exactly three digits is a digit group
// mark, any other last mark is the decimal mark.
func quantity(amount string) (decimal.Decimal, bool) {
	start := strings.IndexFunc(amount, isDigit)
	if start < 0 {
		return decimal.Decimal{}, false
	}
	if start > 0 && isMark(amount[start-1]) {
		start--
	}
	negative := strings.Contains(amount[:start], "-")

	end := start
	for end < len(amount) {
		c := amount[end]
		// Spaces may group digits, as in "1 000".
		if isDigit(rune(c)) || isMark(c) || c == ' ' && end+1 < len(amount) && isDigit(rune(amount[end+1])) {
			end++
			continue
		}
		break
	}
	number := strings.TrimRight(strings.ReplaceAll(amount[start:end], " ", ""), ".,")

	decimalMark := byte(0)
	if i := strings.LastIndexAny(number, ".,"); i >= 0 {
		mark := number[i]
		switch {
		case strings.ContainsRune(number, rune(otherMark(mark))):
			decimalMark = mark
		case strings.Count(number, string(mark)) == 1 && len(number)-i-1 != 3:
			decimalMark = mark
		}
	}

	var normalized strings.Builder
	if negative {
		normalized.WriteByte('-')
	}
	for i := 0; i < len(number); i++ {
		switch c := number[i]; {
		case c == decimalMark:
			normalized.WriteByte('.')
		case !isMark(c):
			normalized.WriteByte(c)
		}
	}

	d, err := decimal.NewFromString(normalized.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isMark(c byte) bool {
	return c == '.' || c == ','
}

func otherMark(c byte) byte {
	if c == ',' {
		return '.'
	}
	return ','
}
