package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}

	if styles.output == nil {
		t.Error("Styles should have non-nil output")
	}
}

func TestStylesFilePath(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.FilePath("/path/to/file.txt")

	// Should contain the path
	if !strings.Contains(result, "/path/to/file.txt") {
		t.Errorf("FilePath() result should contain path, got: %s", result)
	}
}

func TestStylesAdded(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Added("+    assets:checking  10.00 EUR")

	if !strings.Contains(result, "assets:checking") {
		t.Errorf("Added() result should contain the line, got: %s", result)
	}
}

func TestStylesRemoved(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Removed("-  assets:checking 10.00 EUR")

	if !strings.Contains(result, "10.00 EUR") {
		t.Errorf("Removed() result should contain the line, got: %s", result)
	}
}

func TestStylesKeyword(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Keyword("balance")

	// Should contain the keyword
	if !strings.Contains(result, "balance") {
		t.Errorf("Keyword() result should contain keyword, got: %s", result)
	}
}

func TestStylesDim(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	result := styles.Dim("dimmed text")

	// Should contain the text
	if !strings.Contains(result, "dimmed text") {
		t.Errorf("Dim() result should contain text, got: %s", result)
	}
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	t.Run("FastOperation", func(t *testing.T) {
		result := styles.Timing("5ms", false)

		// Should contain the timing
		if !strings.Contains(result, "5ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})

	t.Run("SlowOperation", func(t *testing.T) {
		result := styles.Timing("500ms", true)

		// Should contain the timing
		if !strings.Contains(result, "500ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})
}

func TestPlainStylesHaveNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	styles := NewPlainStyles(&buf)

	for _, result := range []string{
		styles.Added("+ line"),
		styles.Removed("- line"),
		styles.Hunk("@@ -1 +1 @@"),
		styles.Dim("slow"),
	} {
		if strings.Contains(result, "\x1b[") {
			t.Errorf("plain styles should not emit escapes, got: %q", result)
		}
	}

	if got := styles.Added("+ line"); got != "+ line" {
		t.Errorf("Added() = %q, want %q", got, "+ line")
	}
}
