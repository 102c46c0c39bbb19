package turtle

import "strings"

// parseQuotedLiteralTerm parses a quoted string literal and whatever
// @lang or ^^datatype suffix follows it.
func (p *parserState) parseQuotedLiteralTerm() (Term, error) {
	raw, err := p.parseQuotedLiteralLexeme()
	if err != nil {
		return nil, err
	}
	lexical, err := p.unescapeString(raw)
	if err != nil {
		return nil, err
	}

	if r, ok := p.peekWithinLine(1); ok && r == '@' {
		p.readCodePoint()
		lang, err := p.readLangTag()
		if err != nil {
			return nil, err
		}
		return p.factory.CreateLiteral(lexical, lang, nil, p.lineNumber)
	}
	if ok, err := p.peekMatches2('^', '^'); err != nil {
		return nil, err
	} else if ok {
		p.readCodePoint()
		p.readCodePoint()
		dtTerm, err := p.parseValue(false)
		if err != nil {
			return nil, err
		}
		dt, ok := dtTerm.(IRI)
		if !ok {
			return nil, p.fatalf("datatype must be an IRI")
		}
		return p.factory.CreateLiteral(lexical, "", &dt, p.lineNumber)
	}
	return p.factory.CreateLiteral(lexical, "", nil, p.lineNumber)
}

// parseQuotedLiteralLexeme extracts the raw (still-escaped) content of
// a quoted string by consulting quoteEnds rather than re-scanning for
// the closing delimiter: the line buffer already recorded where every
// quoted region on this logical line closes.
func (p *parserState) parseQuotedLiteralLexeme() (string, error) {
	startIdx := p.currentIndex + 1
	quoteChar, ok := p.peekWithinLine(1)
	if !ok || (quoteChar != '"' && quoteChar != '\'') {
		return "", p.fatalf("expected a string literal")
	}
	triple := false
	if r2, ok2 := p.peekWithinLine(2); ok2 && r2 == quoteChar {
		if r3, ok3 := p.peekWithinLine(3); ok3 && r3 == quoteChar {
			triple = true
		}
	}
	delimLen := 1
	if triple {
		delimLen = 3
	}
	for i := 0; i < delimLen; i++ {
		if _, err := p.readCodePoint(); err != nil {
			return "", p.fatalf("unexpected end of input in string literal")
		}
	}
	contentStart := startIdx + delimLen
	if p.quoteEndCursor >= len(p.quoteEnds) {
		return "", p.fatalf("unterminated string literal")
	}
	end := p.quoteEnds[p.quoteEndCursor]
	p.quoteEndCursor++
	contentEnd := end - delimLen
	if contentEnd < contentStart || end > len(p.currentLine) {
		return "", p.fatalf("unterminated string literal")
	}
	raw := string(p.currentLine[contentStart:contentEnd])
	p.currentIndex = end - 1
	return raw, nil
}

// unescapeString decodes the simple character escapes and \u/\U
// escapes STRING_LITERAL productions allow. An escape this parser does
// not recognize is either fatal or passed through literally depending
// on Settings.VerifyDatatypeValues.
func (p *parserState) unescapeString(raw string) (string, error) {
	runes := []rune(raw)
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return p.escapeFallback(sb.String(), "dangling escape at end of string literal")
		}
		esc := runes[i+1]
		switch esc {
		case 't', 'b', 'n', 'r', 'f', '"', '\'', '\\':
			sb.WriteRune(simpleEscape(esc))
			i++
		case 'u':
			cp, ok := decodeHexRunes(runes, i+2, 4)
			if !ok {
				return p.escapeFallback(sb.String(), "invalid \\u escape in string literal")
			}
			sb.WriteRune(cp)
			i += 5
		case 'U':
			cp, ok := decodeHexRunes(runes, i+2, 8)
			if !ok {
				return p.escapeFallback(sb.String(), "invalid \\U escape in string literal")
			}
			sb.WriteRune(cp)
			i += 9
		default:
			if p.bridge.severity(diagDatatypeEscape) == sevFatal {
				return "", p.fatalf("invalid escape sequence \\%c in string literal", esc)
			}
			sb.WriteRune('\\')
			sb.WriteRune(esc)
			i++
		}
	}
	return sb.String(), nil
}

func (p *parserState) escapeFallback(partial, reason string) (string, error) {
	if p.bridge.severity(diagDatatypeEscape) == sevFatal {
		return "", p.fatalf("%s", reason)
	}
	return partial, nil
}

func simpleEscape(r rune) rune {
	switch r {
	case 't':
		return '\t'
	case 'b':
		return '\b'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	default:
		return r
	}
}

func decodeHexRunes(runes []rune, start, n int) (rune, bool) {
	if start+n > len(runes) {
		return 0, false
	}
	var v rune
	for i := 0; i < n; i++ {
		d, ok := hexDigit(runes[start+i])
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	return v, true
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func isHexDigit(r rune) bool {
	_, ok := hexDigit(r)
	return ok
}

// readLangTag reads the subtag run after an '@' already consumed by
// the caller and validates it against Settings.VerifyLanguageTags.
func (p *parserState) readLangTag() (string, error) {
	p.scratch.Reset()
	r, ok := p.peekWithinLine(1)
	if !ok || !isASCIIAlpha(r) {
		return "", p.fatalf("invalid language tag")
	}
	for {
		r, ok := p.peekWithinLine(1)
		if !ok {
			break
		}
		if isASCIIAlpha(r) || r == '-' || (r >= '0' && r <= '9') {
			p.scratch.WriteRune(r)
			p.readCodePoint()
			continue
		}
		break
	}
	tag := p.scratch.String()
	if !isValidLangTag(tag) && p.bridge.severity(diagLanguageTag) == sevFatal {
		return "", p.fatalf("invalid language tag %q", tag)
	}
	return tag, nil
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isValidLangTag applies a structural (not full BCP 47 registry) check:
// one or more subtags of letters/digits, hyphen-separated, with the
// first subtag alphabetic.
func isValidLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	subtags := strings.Split(tag, "-")
	for i, sub := range subtags {
		if sub == "" {
			return false
		}
		for _, r := range sub {
			if i == 0 {
				if !isASCIIAlpha(r) {
					return false
				}
			} else if !isASCIIAlpha(r) && !(r >= '0' && r <= '9') {
				return false
			}
		}
	}
	return true
}

// parseIRIRefLexeme parses a '<...>' IRI reference, decoding \u/\U
// escapes and applying structural validation gated by
// Settings.VerifyURISyntax.
func (p *parserState) parseIRIRefLexeme() (string, error) {
	r, err := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r, err, "<"); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		r, err := p.readCodePoint()
		if err != nil {
			return "", p.fatalf("unexpected end of input in IRI reference")
		}
		if r == '>' {
			break
		}
		if r == '\\' {
			r2, err2 := p.readCodePoint()
			if err2 != nil {
				return "", p.fatalf("unexpected end of input in IRI reference")
			}
			switch r2 {
			case 'u':
				cp, ok := p.readHexCodePoints(4)
				if !ok {
					if p.bridge.severity(diagURISyntax) == sevFatal {
						return "", p.fatalf("invalid \\u escape in IRI reference")
					}
					sb.WriteString("\\u")
					continue
				}
				sb.WriteRune(cp)
			case 'U':
				cp, ok := p.readHexCodePoints(8)
				if !ok {
					if p.bridge.severity(diagURISyntax) == sevFatal {
						return "", p.fatalf("invalid \\U escape in IRI reference")
					}
					sb.WriteString("\\U")
					continue
				}
				sb.WriteRune(cp)
			default:
				if p.bridge.severity(diagURISyntax) == sevFatal {
					return "", p.fatalf("invalid escape \\%c in IRI reference", r2)
				}
				sb.WriteRune('\\')
				sb.WriteRune(r2)
			}
			continue
		}
		if r < 0x20 || r == '<' || r == '"' || r == '{' || r == '}' || r == '|' || r == '`' {
			if p.bridge.severity(diagURISyntax) == sevFatal {
				return "", p.fatalf("invalid character %q in IRI reference", r)
			}
		}
		sb.WriteRune(r)
	}
	iri := sb.String()
	if ok, reason := validateIRIStructure(iri); !ok && p.bridge.severity(diagURISyntax) == sevFatal {
		return "", p.fatalf("%s", reason)
	}
	return iri, nil
}

func (p *parserState) readHexCodePoints(n int) (rune, bool) {
	var v rune
	for i := 0; i < n; i++ {
		r, err := p.readCodePoint()
		if err != nil {
			return 0, false
		}
		d, ok := hexDigit(r)
		if !ok {
			return 0, false
		}
		v = v*16 + rune(d)
	}
	return v, true
}

// parsePrefixedNameOrBoolean distinguishes the "true"/"false" boolean
// keywords from a genuine prefixed name.
func (p *parserState) parsePrefixedNameOrBoolean() (Term, error) {
	if p.peekMatchesWord("true") {
		p.consumeWord("true")
		return p.factory.CreateLiteral("true", "", &xsdBoolean, p.lineNumber)
	}
	if p.peekMatchesWord("false") {
		p.consumeWord("false")
		return p.factory.CreateLiteral("false", "", &xsdBoolean, p.lineNumber)
	}
	return p.parsePrefixedName()
}

func (p *parserState) peekMatchesWord(word string) bool {
	rs := []rune(word)
	for i, want := range rs {
		r, ok := p.peekWithinLine(1 + i)
		if !ok || r != want {
			return false
		}
	}
	next, ok := p.peekWithinLine(1 + len(rs))
	if ok && (isPNChars(next) || next == ':') {
		return false
	}
	return true
}

func (p *parserState) consumeWord(word string) {
	for range word {
		p.readCodePoint()
	}
}

// parsePrefixedName parses "prefix:local" (or ":local", or "prefix:")
// and expands it against the bound namespace.
func (p *parserState) parsePrefixedName() (IRI, error) {
	prefix, err := p.readPNPrefix()
	if err != nil {
		return IRI{}, err
	}
	local, err := p.readPNLocal()
	if err != nil {
		return IRI{}, err
	}
	ns, ok := p.namespaces.Namespace(prefix)
	if !ok {
		return IRI{}, p.fatalf("%w: %q", ErrUnknownPrefix, prefix)
	}
	return IRI{Value: ns + local}, nil
}

var pnLocalEscapable = "_~.-!$&'()*+,;=/?#@%"

func isPNLocalEscapable(r rune) bool {
	return strings.ContainsRune(pnLocalEscapable, r)
}

// readPNLocal reads a PN_LOCAL production: PN_CHARS plus '.', ':',
// %-escapes, and \-escaped reserved punctuation, with a trailing '.'
// excluded unless followed by more local-name content (so the
// statement-terminating '.' is never swallowed into a prefixed name).
func (p *parserState) readPNLocal() (string, error) {
	p.scratch.Reset()
	first := true
	for {
		r, ok := p.peekWithinLine(1)
		if !ok {
			break
		}
		switch {
		case r == '%':
			r1, ok1 := p.peekWithinLine(2)
			r2, ok2 := p.peekWithinLine(3)
			if !ok1 || !ok2 || !isHexDigit(r1) || !isHexDigit(r2) {
				return "", p.fatalf("invalid %%-escape in local name")
			}
			p.scratch.WriteRune(r)
			p.scratch.WriteRune(r1)
			p.scratch.WriteRune(r2)
			p.readCodePoint()
			p.readCodePoint()
			p.readCodePoint()
		case r == '\\':
			r1, ok1 := p.peekWithinLine(2)
			if !ok1 || !isPNLocalEscapable(r1) {
				if first {
					return "", nil
				}
				return p.scratch.String(), nil
			}
			p.scratch.WriteRune(r1)
			p.readCodePoint()
			p.readCodePoint()
		case r == '.':
			r1, ok1 := p.peekWithinLine(2)
			if ok1 && (isPNChars(r1) || r1 == '.' || r1 == ':' || r1 == '%' || r1 == '\\') {
				p.scratch.WriteRune(r)
				p.readCodePoint()
			} else {
				return p.scratch.String(), nil
			}
		case isPNChars(r) || r == ':':
			p.scratch.WriteRune(r)
			p.readCodePoint()
		default:
			return p.scratch.String(), nil
		}
		first = false
	}
	return p.scratch.String(), nil
}

// parseBlankNodeLabel parses "_:label".
func (p *parserState) parseBlankNodeLabel() (Term, error) {
	r, err := p.readCodePoint()
	if err != nil || r != '_' {
		return nil, p.fatalf("expected blank node label")
	}
	r2, err2 := p.readCodePoint()
	if err2 != nil || r2 != ':' {
		return nil, p.fatalf("expected ':' in blank node label")
	}
	p.scratch.Reset()
	first, ok := p.peekWithinLine(1)
	if !ok || !(isPNCharsBase(first) || first == '_' || (first >= '0' && first <= '9')) {
		return nil, p.fatalf("invalid blank node label")
	}
	p.scratch.WriteRune(first)
	p.readCodePoint()
	for {
		r, ok := p.peekWithinLine(1)
		if !ok {
			break
		}
		if r == '.' {
			r1, ok1 := p.peekWithinLine(2)
			if ok1 && isPNChars(r1) {
				p.scratch.WriteRune(r)
				p.readCodePoint()
				continue
			}
			break
		}
		if isPNChars(r) {
			p.scratch.WriteRune(r)
			p.readCodePoint()
			continue
		}
		break
	}
	return p.factory.CreateBlankNodeWithLabel(p.scratch.String())
}

// parseNumber parses INTEGER/DECIMAL/DOUBLE, resolving the "1."
// ambiguity by requiring a digit immediately after '.' before treating
// it as a decimal point rather than the statement-terminating dot.
func (p *parserState) parseNumber() (Term, error) {
	startIdx := p.currentIndex + 1
	if r, ok := p.peekWithinLine(1); ok && (r == '+' || r == '-') {
		p.readCodePoint()
	}
	digitsBefore := 0
	for {
		r, ok := p.peekWithinLine(1)
		if !ok || r < '0' || r > '9' {
			break
		}
		p.readCodePoint()
		digitsBefore++
	}
	isDecimal := false
	if r, ok := p.peekWithinLine(1); ok && r == '.' {
		if r2, ok2 := p.peekWithinLine(2); ok2 && r2 >= '0' && r2 <= '9' {
			isDecimal = true
			p.readCodePoint()
			for {
				r, ok := p.peekWithinLine(1)
				if !ok || r < '0' || r > '9' {
					break
				}
				p.readCodePoint()
			}
		}
	}
	if digitsBefore == 0 && !isDecimal {
		return nil, p.fatalf("expected a numeric literal")
	}
	isDouble := false
	if r, ok := p.peekWithinLine(1); ok && (r == 'e' || r == 'E') {
		save := p.currentIndex
		p.readCodePoint()
		if r2, ok2 := p.peekWithinLine(1); ok2 && (r2 == '+' || r2 == '-') {
			p.readCodePoint()
		}
		expDigits := 0
		for {
			r, ok := p.peekWithinLine(1)
			if !ok || r < '0' || r > '9' {
				break
			}
			p.readCodePoint()
			expDigits++
		}
		if expDigits == 0 {
			p.currentIndex = save
		} else {
			isDouble = true
		}
	}
	lexeme := string(p.currentLine[startIdx : p.currentIndex+1])
	var datatype IRI
	switch {
	case isDouble:
		datatype = xsdDouble
	case isDecimal:
		datatype = xsdDecimal
	default:
		datatype = xsdInteger
	}
	return p.factory.CreateLiteral(lexeme, "", &datatype, p.lineNumber)
}
