package parser

import (
	"context"
	"errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"account assets:cash  ; comment\n  type:A\n",
		"2024-01-01 * Shop\n    expenses:food  10.00 EUR @ $1.10\n    assets\n",
		"comment\nunterminated",
		"; top\n  # indented\n",
		"P 2024-01-01 € $1.10\n\n~ monthly\n  (budget)  = $500\n",
		"  stray\n",
		"\xff\xfe\n\t\xc5",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("parser panicked: %v\ninput: %q", r, data)
			}
		}()

		doc, err := ParseBytes(context.Background(), data)
		if err != nil {
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}

		for _, node := range doc.Nodes {
			if node.Position().Offset > len(data) {
				t.Fatalf("node position %v outside input of %d bytes", node.Position(), len(data))
			}
		}
	})
}
