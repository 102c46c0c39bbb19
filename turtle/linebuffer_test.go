package turtle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceLinePlainLineEndsAtNewline(t *testing.T) {
	p := newTestParser(t, "abc\ndef")
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(p.currentLine))
	assert.Empty(t, p.quoteEnds)
}

func TestAdvanceLineAbsorbsNewlineInsideTripleQuote(t *testing.T) {
	p := newTestParser(t, "\"\"\"a\nb\"\"\" rest")
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\"\"\"a\nb\"\"\" rest", string(p.currentLine))
	require.Len(t, p.quoteEnds, 1)
	assert.Equal(t, 9, p.quoteEnds[0])
}

func TestAdvanceLineSingleQuoteClosesOnSameLine(t *testing.T) {
	p := newTestParser(t, `"a" rest`)
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p.quoteEnds, 1)
	assert.Equal(t, 3, p.quoteEnds[0])
}

func TestAdvanceLineNewlineInsideSingleQuoteEndsLineUnterminated(t *testing.T) {
	p := newTestParser(t, "\"a\nb\"")
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\"a", string(p.currentLine))
	assert.Empty(t, p.quoteEnds)
}

func TestAdvanceLineEscapedQuoteDoesNotClose(t *testing.T) {
	p := newTestParser(t, `"a\"b" rest`)
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, p.quoteEnds, 1)
	assert.Equal(t, `"a\"b"`, string(p.currentLine[:p.quoteEnds[0]]))
}

func TestAdvanceLineEOFWithNoInputReturnsFalse(t *testing.T) {
	p := newTestParser(t, "")
	ok, err := p.advanceLine()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdvanceLineEOFAfterPartialContentFlushes(t *testing.T) {
	p := newTestParser(t, "no trailing newline")
	ok, err := p.advanceLine()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "no trailing newline", string(p.currentLine))
}
