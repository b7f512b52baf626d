package formatter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/hledger-fmt/parser"
	"github.com/robinvdvleuten/hledger-fmt/width"
)

func formatString(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	doc, err := parser.ParseString(context.Background(), input)
	assert.NoError(t, err)
	return string(New(opts...).FormatBytes(context.Background(), doc))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "AddsFinalNewline",
			input:    "# comment",
			expected: "# comment\n",
		},
		{
			name:     "BlankLinesKept",
			input:    "\n\n\n\n",
			expected: "\n\n\n\n",
		},
		{
			name:     "WhitespaceOnlyLines",
			input:    "; a\n   \n; b\n",
			expected: "; a\n\n; b\n",
		},
		{
			name:     "DirectiveComment",
			input:    "decimal-mark .      ; comment",
			expected: "decimal-mark .  ; comment\n",
		},
		{
			name:     "DirectiveGroupAlignment",
			input:    "account cash:foo:bar:baz     ; comment\ntag foo  ; comment",
			expected: "account cash:foo:bar:baz  ; comment\ntag foo                   ; comment\n",
		},
		{
			name: "SubdirectivesAndGroupComments",
			input: "account assets:cash   ; cash\n" +
				"    type:A  ; raw\n" +
				"  ; aligned\n" +
				"account expenses  ; x\n",
			expected: "account assets:cash  ; cash\n" +
				"  type:A  ; raw\n" +
				"                     ; aligned\n" +
				"account expenses     ; x\n",
		},
		{
			name:     "DirectiveTrailingWhitespace",
			input:    "account a   \n",
			expected: "account a\n",
		},
		{
			name:     "TopLevelIndentedComment",
			input:    "\t; note\n",
			expected: "    ; note\n",
		},
		{
			name: "PostingsAlignOnDecimalMark",
			input: "2024-01-01 opening balances  ; note\n" +
				"  assets:cash    10.00 EUR\n" +
				"    expenses:słodycze  $-1.5\n" +
				"  equity\n",
			expected: "2024-01-01 opening balances  ; note\n" +
				"  assets:cash         10.00 EUR\n" +
				"  expenses:słodycze  $-1.5\n" +
				"  equity\n",
		},
		{
			name: "UnicodeNamesUseCharacterWidth",
			input: "2024-01-01 x\n" +
				"  expenses:słodycze  1\n" +
				"  assets:cash  -1\n",
			expected: "2024-01-01 x\n" +
				"  expenses:słodycze   1\n" +
				"  assets:cash        -1\n",
		},
		{
			name: "ThreeParts",
			input: "2024-01-01 x\n" +
				"  a  0.0 AAAA  =  2.0 AAAA  @   $1.50\n" +
				"  bb  10 AAAA @ $2\n",
			expected: "2024-01-01 x\n" +
				"  a    0.0 AAAA  =   2.0 AAAA  @  $1.50\n" +
				"  bb  10 AAAA    @  $2\n",
		},
		{
			name: "CommentColumnFollowsTitle",
			input: "2024-01-01 a very long transaction title here  ; t\n" +
				"    a  1  ; short\n" +
				"    b\n" +
				"; col0 comment\n",
			expected: "2024-01-01 a very long transaction title here  ; t\n" +
				"    a  1" + strings.Repeat(" ", 39) + "; short\n" +
				"    b\n" +
				"    ; col0 comment\n",
		},
		{
			name:     "CommentColumnFollowsLine",
			input:    "2024-01-01 t\n    assets:cash  10 EUR ; c\n",
			expected: "2024-01-01 t\n    assets:cash  10 EUR  ; c\n",
		},
		{
			name:     "AdjacentTransactionsSeparated",
			input:    "2024-01-01 a\n  x  1\n2024-01-02 b\n  y  2\n",
			expected: "2024-01-01 a\n  x  1\n\n2024-01-02 b\n  y  2\n",
		},
		{
			name:     "EntriesUseFirstIndent",
			input:    "2024-01-01 a\n    x  1\n  y  2\n\t; c\n",
			expected: "2024-01-01 a\n    x  1\n    y  2\n    ; c\n",
		},
		{
			name:     "TitleWithDoubleSpaces",
			input:    "2025-10-10  Description after two spaces\n",
			expected: "2025-10-10  Description after two spaces\n",
		},
		{
			name:     "TitleCommentWithoutSpace",
			input:    "2025-10-10 Description after multiple spaces; comment\n",
			expected: "2025-10-10 Description after multiple spaces  ; comment\n",
		},
		{
			name: "PeriodicTransaction",
			input: "~ monthly  set budget goals  ; <- Note\n" +
				"    (expenses:rent)      $2,000\n" +
				"    (expenses:food)      $400\n",
			expected: "~ monthly  set budget goals  ; <- Note\n" +
				"    (expenses:rent)  $2,000\n" +
				"    (expenses:food)    $400\n",
		},
		{
			name:     "UnterminatedMultilineComment",
			input:    "comment\ncontent",
			expected: "comment\ncontent\nend comment\n",
		},
		{
			name:     "MultilineCommentCRLF",
			input:    "comment\r\nx\r\n\r\nend comment\r\n",
			expected: "comment\nx\n\nend comment\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(t, tt.input))
		})
	}
}

func TestFormatEntrySpacing(t *testing.T) {
	input := "2024-01-01 a\n  x  1\n  yy  22\n"

	t.Run("Wide", func(t *testing.T) {
		got := formatString(t, input, WithEntrySpacing(4))
		assert.Equal(t, "2024-01-01 a\n  x      1\n  yy    22\n", got)
	})

	t.Run("ClampedToMinimum", func(t *testing.T) {
		f := New(WithEntrySpacing(1))
		assert.Equal(t, MinimumSpacing, f.EntrySpacing)
		assert.Equal(t, "2024-01-01 a\n  x    1\n  yy  22\n", formatString(t, input, WithEntrySpacing(1)))
	})
}

func TestFormatDisplayWidth(t *testing.T) {
	input := "2024-01-01 x\n  食費  ¥100\n  assets  -¥100\n"

	doc, err := parser.New(parser.WithWidthFunc(width.Display)).Parse(context.Background(), []byte(input))
	assert.NoError(t, err)

	got := string(New().FormatBytes(context.Background(), doc))
	assert.Equal(t, "2024-01-01 x\n  食費     ¥100\n  assets  -¥100\n", got)
}

func TestFormatWriter(t *testing.T) {
	doc, err := parser.ParseString(context.Background(), "account a  ; x\n")
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = New().Format(context.Background(), doc, &buf)
	assert.NoError(t, err)
	assert.Equal(t, "account a  ; x\n", buf.String())
}

func TestFormatDoesNotModifySource(t *testing.T) {
	source := []byte("2024-01-01 x\n      a    1\n")
	original := append([]byte(nil), source...)

	doc, err := parser.ParseBytes(context.Background(), source)
	assert.NoError(t, err)
	_ = New(WithEstimatedLength(1)).FormatBytes(context.Background(), doc)

	assert.Equal(t, original, source)
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"account assets:cash   ; cash\n    type:A  ; raw\n  ; aligned\naccount expenses  ; x\n",
		"2024-01-01 a\n  x  1\n2024-01-02 b\n  y  = $500\n  z  10 USD  20 EUR\n",
		"2024-01-01 * Shop  # tag\n\tassets  1,000 USD @@ \"Chocolate  Frogs\" ; c\n\t; note\n",
		"comment\nunterminated",
		"P 2024-01-01 € $1.10\nD $1,000.00\n2024-01-01 x\n  a  -$1 == $0 @ 3 X @ 4\n",
		"2024-01-01 x\n  a  10 USD @\n  b\n",
	}

	for _, input := range inputs {
		first := formatString(t, input)
		second := formatString(t, first)
		assert.Equal(t, first, second, "input: %q", input)
	}
}
