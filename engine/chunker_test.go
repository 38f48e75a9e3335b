package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_Empty(t *testing.T) {
	assert.Nil(t, splitText("", 100, 10))
	assert.Nil(t, splitText("   \n\t  ", 100, 10))
}

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	chunks := splitText("a short document", 100, 10)

	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestSplitText_RespectsSize(t *testing.T) {
	words := strings.Repeat("word ", 200)

	chunks := splitText(words, 100, 10)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), 100, "chunk %d too long", i)
	}
}

func TestSplitText_BreaksAtWhitespace(t *testing.T) {
	words := strings.Repeat("alpha beta gamma ", 50)

	chunks := splitText(words, 64, 8)

	for i, chunk := range chunks {
		assert.False(t, strings.HasSuffix(chunk, "alph"), "chunk %d cut a word: %q", i, chunk)
	}
}

func TestSplitText_CoversAllContent(t *testing.T) {
	// Overlap means later chunks re-include earlier text, so check the
	// last words of the input survive into the final chunk.
	text := strings.Repeat("lorem ipsum dolor ", 100) + "finalword"

	chunks := splitText(text, 120, 20)

	require.NotEmpty(t, chunks)
	assert.Contains(t, chunks[len(chunks)-1], "finalword")
}

func TestSplitText_UnbrokenRunFallsBackToHardCut(t *testing.T) {
	text := strings.Repeat("x", 500)

	chunks := splitText(text, 100, 0)

	require.Len(t, chunks, 5)
	for _, chunk := range chunks {
		assert.Len(t, chunk, 100)
	}
}

func TestSplitText_BadParamsUseDefaults(t *testing.T) {
	text := strings.Repeat("word ", 10)

	chunks := splitText(text, -1, -1)

	require.Len(t, chunks, 1)
}
