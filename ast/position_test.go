package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSpan_Text(t *testing.T) {
	source := []byte("hello world")

	t.Run("Valid span", func(t *testing.T) {
		span := Span{Start: 0, End: 5}
		result := span.Text(source)
		assert.Equal(t, "hello", result)
	})

	t.Run("Valid span in middle", func(t *testing.T) {
		span := Span{Start: 6, End: 11}
		result := span.Text(source)
		assert.Equal(t, "world", result)
	})

	t.Run("Zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 0}
		result := span.Text(source)
		assert.Equal(t, "", result, "zero span should return empty string")
	})

	t.Run("Negative start", func(t *testing.T) {
		span := Span{Start: -5, End: 3}
		result := span.Text(source)
		assert.Equal(t, "", result, "negative start should return empty string")
	})

	t.Run("Start greater than End", func(t *testing.T) {
		span := Span{Start: 10, End: 5}
		result := span.Text(source)
		assert.Equal(t, "", result, "start > end should return empty string")
	})

	t.Run("End beyond source length", func(t *testing.T) {
		span := Span{Start: 0, End: 100}
		result := span.Text(source)
		assert.Equal(t, "", result, "end > len(source) should return empty string")
	})

	t.Run("Start beyond source length", func(t *testing.T) {
		span := Span{Start: 100, End: 105}
		result := span.Text(source)
		assert.Equal(t, "", result, "start > len(source) should return empty string")
	})

	t.Run("Empty source", func(t *testing.T) {
		emptySource := []byte("")
		span := Span{Start: 0, End: 5}
		result := span.Text(emptySource)
		assert.Equal(t, "", result, "should handle empty source gracefully")
	})
}

func TestSpan_Empty(t *testing.T) {
	t.Run("Zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 0}
		assert.True(t, span.Empty(), "zero span should be empty")
		assert.Equal(t, 0, span.Len())
	})

	t.Run("Empty span at offset", func(t *testing.T) {
		span := Span{Start: 7, End: 7}
		assert.True(t, span.Empty())
	})

	t.Run("Non-empty span", func(t *testing.T) {
		span := Span{Start: 2, End: 5, Width: 3}
		assert.False(t, span.Empty())
		assert.Equal(t, 3, span.Len())
	})
}

func TestSpan_BytesIsZeroCopy(t *testing.T) {
	source := []byte("account assets")
	span := Span{Start: 8, End: 14}

	b := span.Bytes(source)
	assert.Equal(t, "assets", string(b))

	source[8] = 'A'
	assert.Equal(t, "Assets", string(b))
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "3:5", Position{Line: 3, Column: 5}.String())
	assert.Equal(t, "main.journal:3:5", Position{Filename: "main.journal", Line: 3, Column: 5}.String())
}
