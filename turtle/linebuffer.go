package turtle

import "io"

// encKind is the quote-state the line buffer tracks while assembling
// one logical line: none/single-1/single-3/double-1/double-3.
type encKind int

const (
	encNone encKind = iota
	encSingle1
	encSingle3
	encDouble1
	encDouble3
)

// nextRawRune reads the next raw rune, preferring anything advanceLine
// itself pushed back while deciding whether a quote opened a
// single-char or triple-quoted string.
func (p *parserState) nextRawRune() (rune, error) {
	if n := len(p.srcPushback); n > 0 {
		r := p.srcPushback[n-1]
		p.srcPushback = p.srcPushback[:n-1]
		return r, nil
	}
	r, _, err := p.src.ReadRune()
	return r, err
}

func (p *parserState) pushRawRunes(rs ...rune) {
	for i := len(rs) - 1; i >= 0; i-- {
		p.srcPushback = append(p.srcPushback, rs[i])
	}
}

// advanceLine assembles the next logical line into currentLine,
// resetting quoteEnds: a bare newline outside any string ends the
// logical line; a newline while a triple-quoted string
// is open is absorbed into the line instead; a newline while a
// single-char string is open also ends the line (the unterminated
// string is caught downstream as an unexpected-EOF/unterminated-string
// error, since no matching quoteEnds entry exists for it).
//
// quoteEnds records, for every quoted region closed while assembling
// this line, the index just past its closing delimiter -- ready for a
// literal sub-parser to slice the lexical form out of currentLine
// without re-scanning for the close.
func (p *parserState) advanceLine() (bool, error) {
	var buf []rune
	var quoteEnds []int
	enclosing := encNone
	backslashRun := 0
	readAny := false

	flush := func() (bool, error) {
		p.currentLine = buf
		p.quoteEnds = quoteEnds
		p.quoteEndCursor = 0
		return true, nil
	}

	for {
		if p.cfg.MaxLineBytes > 0 && len(buf) > p.cfg.MaxLineBytes {
			return false, p.fatalWrap(ErrLineTooLong)
		}
		r, err := p.nextRawRune()
		if err != nil {
			if err == io.EOF {
				if !readAny {
					p.currentLine = nil
					p.quoteEnds = nil
					p.quoteEndCursor = 0
					return false, nil
				}
				return flush()
			}
			return false, err
		}
		readAny = true

		if r == '\\' {
			buf = append(buf, r)
			backslashRun++
			continue
		}

		if r == '\n' {
			p.lineNumber++
			if enclosing == encNone || enclosing == encSingle1 || enclosing == encDouble1 {
				return flush()
			}
			buf = append(buf, r)
			backslashRun = 0
			continue
		}

		if enclosing == encNone && (r == '\'' || r == '"') {
			quoteChar := r
			r2, err2 := p.nextRawRune()
			if err2 != nil {
				buf = append(buf, r)
				if err2 == io.EOF {
					return flush()
				}
				return false, err2
			}
			if r2 != quoteChar {
				buf = append(buf, r)
				p.pushRawRunes(r2)
				if quoteChar == '\'' {
					enclosing = encSingle1
				} else {
					enclosing = encDouble1
				}
				backslashRun = 0
				continue
			}
			r3, err3 := p.nextRawRune()
			if err3 != nil {
				buf = append(buf, r, r2)
				quoteEnds = append(quoteEnds, len(buf))
				if err3 == io.EOF {
					return flush()
				}
				return false, err3
			}
			if r3 != quoteChar {
				buf = append(buf, r, r2)
				quoteEnds = append(quoteEnds, len(buf))
				p.pushRawRunes(r3)
				backslashRun = 0
				continue
			}
			buf = append(buf, r, r2, r3)
			if quoteChar == '\'' {
				enclosing = encSingle3
			} else {
				enclosing = encDouble3
			}
			backslashRun = 0
			continue
		}

		if enclosing != encNone {
			var quoteChar rune
			isTriple := enclosing == encSingle3 || enclosing == encDouble3
			if enclosing == encSingle1 || enclosing == encSingle3 {
				quoteChar = '\''
			} else {
				quoteChar = '"'
			}
			if r == quoteChar && backslashRun%2 == 0 {
				if !isTriple {
					buf = append(buf, r)
					quoteEnds = append(quoteEnds, len(buf))
					enclosing = encNone
					backslashRun = 0
					continue
				}
				r2, err2 := p.nextRawRune()
				if err2 != nil {
					buf = append(buf, r)
					if err2 == io.EOF {
						return flush()
					}
					return false, err2
				}
				if r2 != quoteChar {
					buf = append(buf, r)
					p.pushRawRunes(r2)
					backslashRun = 0
					continue
				}
				r3, err3 := p.nextRawRune()
				if err3 != nil {
					buf = append(buf, r, r2)
					if err3 == io.EOF {
						return flush()
					}
					return false, err3
				}
				if r3 != quoteChar {
					buf = append(buf, r, r2)
					p.pushRawRunes(r3)
					backslashRun = 0
					continue
				}
				buf = append(buf, r, r2, r3)
				quoteEnds = append(quoteEnds, len(buf))
				enclosing = encNone
				backslashRun = 0
				continue
			}
		}

		buf = append(buf, r)
		backslashRun = 0
	}
}
