package turtle

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentSpyHandler records only the comments it is handed, ignoring
// every other event; it exists so the scanner-level tests below can
// observe skipMultilineWSC's processComment calls in isolation.
type commentSpyHandler struct {
	comments []string
}

func (h *commentSpyHandler) StartRDF() error                          { return nil }
func (h *commentSpyHandler) EndRDF() error                            { return nil }
func (h *commentSpyHandler) HandleNamespace(prefix, iri string) error { return nil }
func (h *commentSpyHandler) HandleComment(text string) error {
	h.comments = append(h.comments, text)
	return nil
}
func (h *commentSpyHandler) HandleStatement(stmt Statement) error { return nil }

func newTestParser(t *testing.T, src string) *parserState {
	t.Helper()
	return newParserState(strings.NewReader(src), defaultConfig())
}

func TestReadCodePointCrossesLogicalLines(t *testing.T) {
	p := newTestParser(t, "ab\ncd")
	var got []rune
	for i := 0; i < 4; i++ {
		r, err := p.readCodePoint()
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, "abcd", string(got))

	_, err := p.readCodePoint()
	assert.ErrorIs(t, err, io.EOF)
}

func TestPeekCodePointAtDoesNotConsume(t *testing.T) {
	p := newTestParser(t, "xyz")
	r, err := p.peekCodePointAt(2)
	require.NoError(t, err)
	assert.Equal(t, 'z', r)

	for _, want := range []rune{'x', 'y', 'z'} {
		r, err := p.readCodePoint()
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
}

func TestPeekCodePointAtAcrossLineBoundary(t *testing.T) {
	p := newTestParser(t, "a\nb")
	r, err := p.peekCodePointAt(1)
	require.NoError(t, err)
	assert.Equal(t, 'b', r)

	r, err = p.peekCodePointAt(2)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, rune(0), r)

	first, _ := p.readCodePoint()
	assert.Equal(t, 'a', first)
}

func TestSkipInlineWSCStopsAtLineEnd(t *testing.T) {
	p := newTestParser(t, "   ")
	idx := p.skipInlineWSC()
	assert.Equal(t, -1, idx)
}

func TestSkipInlineWSCFindsNextChar(t *testing.T) {
	p := newTestParser(t, "")
	p.currentLine = []rune("   x")
	p.currentIndex = -1
	idx := p.skipInlineWSC()
	assert.Equal(t, 3, idx)
}

func TestSkipMultilineWSCReportsComments(t *testing.T) {
	spy := &commentSpyHandler{}
	p := newTestParser(t, "  # hello\n:s")
	p.handler = spy

	idx, err := p.skipMultilineWSC(false)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
	require.Len(t, spy.comments, 1)
	assert.Equal(t, " hello", spy.comments[0])
}

func TestSkipMultilineWSCStrictEOFIsFatal(t *testing.T) {
	p := newTestParser(t, "   ")
	_, err := p.skipMultilineWSC(true)
	assert.Error(t, err)
}

func TestSkipMultilineWSCLenientEOFIsClean(t *testing.T) {
	p := newTestParser(t, "   ")
	idx, err := p.skipMultilineWSC(false)
	assert.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestIsPNCharsBaseAndIsPNChars(t *testing.T) {
	assert.True(t, isPNCharsBase('a'))
	assert.True(t, isPNCharsBase('Z'))
	assert.False(t, isPNCharsBase('_'))
	assert.False(t, isPNCharsBase('5'))

	assert.True(t, isPNChars('_'))
	assert.True(t, isPNChars('-'))
	assert.True(t, isPNChars('7'))
	assert.False(t, isPNChars(' '))
}
