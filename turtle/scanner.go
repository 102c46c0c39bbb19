package turtle

import "io"

// readCodePoint returns the next code point, transparently crossing a
// logical-line boundary via advanceLine when currentLine is exhausted.
// Go's native UTF-8 rune decoding already yields one rune per code point
// beyond the Basic Multilingual Plane, so unlike a UTF-16-based
// reader, no surrogate-pair reassembly step is needed here; see
// DESIGN.md.
func (p *parserState) readCodePoint() (rune, error) {
	if n := len(p.pushback); n > 0 {
		r := p.pushback[n-1]
		p.pushback = p.pushback[:n-1]
		return r, nil
	}
	for {
		p.currentIndex++
		if p.currentIndex < len(p.currentLine) {
			return p.currentLine[p.currentIndex], nil
		}
		ok, err := p.advanceLine()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
		p.currentIndex = -1
		p.statementBytes += len(p.currentLine)
		if p.cfg.MaxStatementBytes > 0 && p.statementBytes > p.cfg.MaxStatementBytes {
			return 0, p.fatalWrap(ErrStatementTooLong)
		}
	}
}

// peekCodePoint returns the next code point without consuming it.
func (p *parserState) peekCodePoint() (rune, error) {
	return p.peekCodePointAt(0)
}

// peekCodePointAt returns the code point n positions ahead (0 = the
// very next one) without consuming anything, by reading through
// readCodePoint and then giving back what it consumed: runes taken
// from the line now under the cursor are given back by moving
// currentIndex back (so currentIndex+1 stays the next unread rune of
// currentLine), and only runes from a line already left behind go
// onto pushback.
func (p *parserState) peekCodePointAt(n int) (rune, error) {
	buf := make([]rune, 0, n+1)
	fromLine := 0
	var firstErr error
	for i := 0; i <= n; i++ {
		fromPushback := len(p.pushback) > 0
		r, err := p.readCodePoint()
		if err != nil {
			firstErr = err
			break
		}
		buf = append(buf, r)
		if !fromPushback {
			fromLine++
		}
	}
	rewind := 0
	if p.currentLine != nil {
		rewind = fromLine
		if p.currentIndex+1 < rewind {
			rewind = p.currentIndex + 1
		}
	}
	p.currentIndex -= rewind
	for i := len(buf) - 1 - rewind; i >= 0; i-- {
		p.pushback = append(p.pushback, buf[i])
	}
	if firstErr != nil {
		return 0, firstErr
	}
	return buf[n], nil
}

func isWSChar(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// skipInlineWSC advances past run of plain whitespace without crossing
// a logical-line boundary and without consuming comments; it returns
// the index of the next non-whitespace character, or -1 if the
// current line was exhausted first.
func (p *parserState) skipInlineWSC() int {
	for {
		r, ok := p.peekWithinLine(1)
		if !ok {
			return -1
		}
		if r == ' ' || r == '\t' || r == '\r' {
			p.currentIndex++
			continue
		}
		return p.currentIndex + 1
	}
}

func (p *parserState) peekWithinLine(offset int) (rune, bool) {
	idx := p.currentIndex + offset
	if idx < 0 || idx >= len(p.currentLine) {
		return 0, false
	}
	return p.currentLine[idx], true
}

// skipMultilineWSC skips whitespace and '#'-to-end-of-line comments,
// crossing logical-line boundaries, reporting each comment's text to
// the handler via processComment. When strict is true, running out of
// input is a fatal error (used between tokens of a single
// construct); when false, EOF is reported back as idx == -1 with a
// nil error (used at the top of the statement loop, where EOF is a
// clean end of document).
func (p *parserState) skipMultilineWSC(strict bool) (int, error) {
	for {
		r, err := p.peekCodePoint()
		if err != nil {
			if err == io.EOF {
				if strict {
					return -1, p.fatalf("unexpected end of input")
				}
				return -1, nil
			}
			return -1, err
		}
		switch {
		case isWSChar(r):
			p.readCodePoint()
		case r == '#':
			p.readCodePoint()
			if err := p.processComment(); err != nil {
				return -1, err
			}
		default:
			return p.currentIndex + 1, nil
		}
	}
}

// processComment reports the rest of currentLine, starting just past
// the '#' already consumed by the caller, to the handler as a comment
// and consumes it.
func (p *parserState) processComment() error {
	start := p.currentIndex + 1
	if start > len(p.currentLine) {
		start = len(p.currentLine)
	}
	text := string(p.currentLine[start:])
	p.currentIndex = len(p.currentLine)
	if p.handler == nil {
		return nil
	}
	return p.handler.HandleComment(text)
}

// verifyCharacterOrFail raises a fatal error unless r/err denote one
// of the runes in expected.
func (p *parserState) verifyCharacterOrFail(r rune, err error, expected string) error {
	if err != nil {
		return p.fatalf("unexpected end of input, expected one of %q", expected)
	}
	for _, e := range expected {
		if r == e {
			return nil
		}
	}
	return p.fatalf("expected one of %q but got %q", expected, r)
}

// verifyStatementEndsWithDot consumes trailing whitespace/comments and
// requires a terminating '.'.
func (p *parserState) verifyStatementEndsWithDot() error {
	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	r, err := p.readCodePoint()
	return p.verifyCharacterOrFail(r, err, ".")
}

// isPNCharsBase implements (a subset of) the Turtle PN_CHARS_BASE
// production: the letter ranges a prefixed name or a bare directive
// keyword may start with.
func isPNCharsBase(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x00C0 && r <= 0x00D6,
		r >= 0x00D8 && r <= 0x00F6,
		r >= 0x00F8 && r <= 0x02FF,
		r >= 0x0370 && r <= 0x037D,
		r >= 0x037F && r <= 0x1FFF,
		r >= 0x200C && r <= 0x200D,
		r >= 0x2070 && r <= 0x218F,
		r >= 0x2C00 && r <= 0x2FEF,
		r >= 0x3001 && r <= 0xD7FF,
		r >= 0xF900 && r <= 0xFDCF,
		r >= 0xFDF0 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0xEFFFF:
		return true
	}
	return false
}

// isPNChars implements the Turtle PN_CHARS production: PN_CHARS_BASE
// plus '_', '-', digits, and the combining-mark ranges.
func isPNChars(r rune) bool {
	if isPNCharsBase(r) {
		return true
	}
	switch {
	case r == '_', r == '-':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == 0x00B7:
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case r >= 0x203F && r <= 0x2040:
		return true
	}
	return false
}
