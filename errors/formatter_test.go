package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/parser"
)

type positionalError struct {
	pos ast.Position
	msg string
}

func (e positionalError) Error() string             { return e.msg }
func (e positionalError) GetPosition() ast.Position { return e.pos }

func parseError(t *testing.T, filename, source string) error {
	t.Helper()
	_, err := parser.ParseBytesWithFilename(context.Background(), filename, []byte(source))
	assert.Error(t, err)
	return err
}

func TestTextFormatter_Format_SyntaxError(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:   "FirstLine",
			source: "  foo\n",
			expected: "hledger-fmt error: test.journal:1:3:\n" +
				"1 |   foo\n" +
				"  |   ^\n" +
				"unexpected character 'f'\n" +
				"Expected '#', ';' or newline",
		},
		{
			name:   "WithPreviousLine",
			source: "2024-01-01 x\n  a  1\n\n  foo\n",
			expected: "hledger-fmt error: test.journal:4:3:\n" +
				"  | \n" +
				"4 |   foo\n" +
				"  |   ^\n" +
				"unexpected character 'f'\n" +
				"Expected '#', ';' or newline",
		},
		{
			name:   "TabIndent",
			source: "\tfoo",
			expected: "hledger-fmt error: test.journal:1:2:\n" +
				"1 | \tfoo\n" +
				"  | \t^\n" +
				"unexpected character 'f'\n" +
				"Expected '#', ';' or newline",
		},
		{
			name:   "WideCharacter",
			source: "  食費",
			expected: "hledger-fmt error: test.journal:1:3:\n" +
				"1 |   食費\n" +
				"  |   ^^\n" +
				"unexpected character '食'\n" +
				"Expected '#', ';' or newline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, "test.journal", tt.source)
			tf := NewTextFormatter(WithSource([]byte(tt.source)))
			assert.Equal(t, tt.expected, tf.Format(err))
		})
	}
}

func TestTextFormatter_Format_WrappedSyntaxError(t *testing.T) {
	source := "  foo\n"
	err := fmt.Errorf("formatting: %w", parseError(t, "", source))

	tf := NewTextFormatter(WithSource([]byte(source)))
	output := tf.Format(err)

	assert.Contains(t, output, "hledger-fmt error: -:1:3:\n")
	assert.Contains(t, output, "1 |   foo\n")
}

func TestTextFormatter_Format_WithoutSource(t *testing.T) {
	err := parseError(t, "test.journal", "  foo\n")

	tf := NewTextFormatter()
	expected := "hledger-fmt error: test.journal:1:3:\n" +
		"unexpected character 'f'\n" +
		"Expected '#', ';' or newline"
	assert.Equal(t, expected, tf.Format(err))
}

func TestTextFormatter_Format_WithPosition(t *testing.T) {
	tf := NewTextFormatter()

	err := positionalError{
		pos: ast.Position{Filename: "main.journal", Line: 42},
		msg: "something went wrong",
	}

	assert.Equal(t, "main.journal:42: something went wrong", tf.Format(err))
}

func TestTextFormatter_Format_PlainError(t *testing.T) {
	tf := NewTextFormatter()
	assert.Equal(t, "boom", tf.Format(fmt.Errorf("boom")))
}

func TestTextFormatter_FormatAll(t *testing.T) {
	tf := NewTextFormatter()

	assert.Equal(t, "", tf.FormatAll(nil))

	output := tf.FormatAll([]error{fmt.Errorf("first"), fmt.Errorf("second")})
	assert.Equal(t, "first\n\nsecond", output)
}

func TestCarets(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		start, end int
		expected   string
	}{
		{"SingleColumn", "  foo", 3, 4, "  ^"},
		{"Range", "  foo", 3, 6, "  ^^^"},
		{"EmptyRange", "  foo", 3, 3, "  ^"},
		{"PastEnd", "ab", 10, 12, "  ^"},
		{"TabsKept", "\t\tx", 3, 4, "\t\t^"},
		{"WidePrefix", "食x", 4, 5, "  ^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, carets([]byte(tt.line), tt.start, tt.end))
		})
	}
}

func TestJSONFormatter_Format_SyntaxError(t *testing.T) {
	err := parseError(t, "test.journal", "  foo\n")

	jf := NewJSONFormatter()

	var decoded ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.Format(err)), &decoded))

	assert.Equal(t, "syntax", decoded.Type)
	assert.Equal(t, "unexpected character 'f'", decoded.Message)
	assert.Equal(t, &PositionJSON{Filename: "test.journal", Line: 1, Column: 3}, decoded.Position)
	assert.Equal(t, "'#', ';' or newline", decoded.Details["expected"])
	assert.Equal[any](t, float64(4), decoded.Details["end_column"])
}

func TestJSONFormatter_FormatAll(t *testing.T) {
	jf := NewJSONFormatter()

	errs := []error{
		positionalError{pos: ast.Position{Filename: "a.journal", Line: 3, Column: 1}, msg: "first"},
		fmt.Errorf("second"),
	}

	result := jf.FormatAllToSlice(errs)
	assert.Equal(t, 2, len(result))
	assert.Equal(t, "first", result[0].Message)
	assert.Equal(t, 3, result[0].Position.Line)
	assert.Equal(t, "second", result[1].Message)
	assert.Zero(t, result[1].Position)

	var decoded []ErrorJSON
	assert.NoError(t, json.Unmarshal([]byte(jf.FormatAll(errs)), &decoded))
	assert.Equal(t, 2, len(decoded))
}
