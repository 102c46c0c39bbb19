package turtle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// parserState is one parse invocation's worth of mutable state. It is
// created fresh by NewDecoder/Parse and is not reentrant: callers
// sharing a Decoder across goroutines must serialize externally.
type parserState struct {
	src *bufio.Reader

	// srcPushback holds raw source runes advanceLine read ahead of
	// need (to decide whether a quote opens a long string, etc.) and
	// must replay before pulling more from src.
	srcPushback []rune

	currentLine    []rune
	currentIndex   int
	lineNumber     int
	quoteEnds      []int
	quoteEndCursor int

	// pushback holds runes from an already-replaced logical line that
	// a lookahead (peekCodePointAt) read past and must replay before
	// resuming normal advancement through currentLine.
	pushback []rune

	subject   Term
	predicate IRI
	object    Term
	scratch   strings.Builder

	// extraStatements accumulates every statement produced while
	// parsing the current top-level triples block. A statement whose
	// object is a collection or blank-node property list is placed
	// ahead of the statements that object's expansion produced;
	// annotation statements follow the statement they annotate.
	extraStatements []Statement

	handler    Handler
	factory    ValueFactory
	settings   *Settings
	bridge     *severityBridge
	namespaces NamespaceTable

	cfg   config
	depth int

	// statementBytes counts currentLine bytes pulled in by advanceLine
	// since the current statement started, checked against
	// cfg.MaxStatementBytes each time a new line is fetched.
	statementBytes int
	fatalErr       error
}

func newParserState(r io.Reader, cfg config) *parserState {
	ns := cfg.Namespaces
	if ns == nil {
		ns = NewNamespaceTable()
	}
	if cfg.BaseIRI != "" {
		ns.SetBaseURI(cfg.BaseIRI)
	}
	factory := cfg.Factory
	if factory == nil {
		factory = NewValueFactory("", cfg.Settings.PreserveBNodeIDs)
	}
	handler := cfg.Handler
	if handler == nil {
		handler = HandlerFunc(func(Statement) error { return nil })
	}
	return &parserState{
		src:          bufio.NewReader(r),
		currentIndex: -1,
		settings:     cfg.Settings,
		bridge:       &severityBridge{settings: cfg.Settings},
		namespaces:   ns,
		factory:      factory,
		handler:      handler,
		cfg:          cfg,
	}
}

// parseOne advances the engine until exactly one statement is ready to
// report, EOF is reached, or an error occurs. It is the core loop
// NewDecoder's Decoder.Next and Parse share.
//
// pending lets a production that emits more than one statement at once
// (a collection, a blank-node property list) hand the rest back
// without re-entering the top-level loop.
func (p *parserState) parseOne(pending *[]Statement) (Statement, error) {
	if len(*pending) > 0 {
		stmt := (*pending)[0]
		*pending = (*pending)[1:]
		return stmt, nil
	}
	for {
		if err := p.checkContext(); err != nil {
			return Statement{}, err
		}
		idx, err := p.skipMultilineWSC(false)
		if err != nil {
			return Statement{}, err
		}
		if idx < 0 {
			return Statement{}, io.EOF
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return Statement{}, err
		}
		if len(stmts) == 0 {
			continue
		}
		*pending = stmts[1:]
		return stmts[0], nil
	}
}

func (p *parserState) checkContext() error {
	ctx := p.cfg.Context
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// parseStatement parses exactly one directive or one triples block. A
// directive yields zero statements; a triples block yields one plus
// whatever expansion triples (collections, property lists) its object
// positions produced, each object's statement ahead of its expansion.
func (p *parserState) parseStatement() ([]Statement, error) {
	p.statementBytes = 0
	r, err := p.peekCodePoint()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	if handled, stmts, err := p.tryProcessDirective(r); handled || err != nil {
		return stmts, err
	}

	p.extraStatements = nil
	subject, err := p.parseSubject()
	if err != nil {
		p.extraStatements = nil
		return nil, err
	}
	p.subject = subject

	if err := p.parsePredicateObjectList(subject); err != nil {
		p.subject, p.predicate, p.object = nil, IRI{}, nil
		p.extraStatements = nil
		return nil, err
	}

	if err := p.verifyStatementEndsWithDot(); err != nil {
		p.subject, p.predicate, p.object = nil, IRI{}, nil
		p.extraStatements = nil
		return nil, err
	}
	p.subject, p.predicate, p.object = nil, IRI{}, nil
	out := p.extraStatements
	p.extraStatements = nil
	return out, nil
}

func (p *parserState) emit(stmt Statement) {
	p.extraStatements = append(p.extraStatements, stmt)
}

// tryProcessDirective recognizes a case-sensitive "@prefix"/"@base"
// (requires a trailing '.'), or, unless CaseInsensitiveDirectives is
// off, a case-insensitive bare "PREFIX"/"BASE" (SPARQL style, no
// trailing '.').
func (p *parserState) tryProcessDirective(first rune) (handled bool, stmts []Statement, err error) {
	if first == '@' {
		word, err := p.readBareWord()
		if err != nil {
			return true, nil, err
		}
		switch word {
		case "@prefix":
			return true, nil, p.parseDirectiveBody(true, true)
		case "@base":
			return true, nil, p.parseBaseDirectiveBody(true)
		default:
			return true, nil, p.fatalf("unknown directive %q", word)
		}
	}

	if isPNCharsBase(first) {
		save := p.snapshot()
		word, err := p.readBareWord()
		if err != nil {
			return false, nil, nil
		}
		// A genuine SPARQL-style directive keyword stands alone,
		// followed by whitespace or a comment; "prefix:foo" (a
		// prefixed name using the literal prefix "prefix") is not one.
		next, nextErr := p.peekCodePoint()
		standsAlone := nextErr != nil || isWSChar(next) || next == '#'
		switch {
		case standsAlone && strings.EqualFold(word, "prefix"):
			if !p.settings.CaseInsensitiveDirectives {
				return true, nil, p.fatalDirectiveRejected(word)
			}
			return true, nil, p.parseDirectiveBody(false, true)
		case standsAlone && strings.EqualFold(word, "base"):
			if !p.settings.CaseInsensitiveDirectives {
				return true, nil, p.fatalDirectiveRejected(word)
			}
			return true, nil, p.parseBaseDirectiveBody(false)
		default:
			p.restore(save)
			return false, nil, nil
		}
	}
	return false, nil, nil
}

func (p *parserState) fatalDirectiveRejected(word string) error {
	return p.fatalf("case-insensitive directive %q requires the %s setting", word, settingName(diagCaseInsensitiveDirective))
}

// parseDirectiveBody parses the "prefix : <iri>" tail common to both
// "@prefix" and bare "PREFIX". requireDot enforces the trailing '.'
// that only the '@'-form requires.
func (p *parserState) parseDirectiveBody(requireDot bool, _ bool) error {
	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	prefix, err := p.readPNPrefix()
	if err != nil {
		return err
	}
	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	iri, err := p.parseIRIRefLexeme()
	if err != nil {
		return err
	}
	resolved, err := p.resolveIRI(iri)
	if err != nil {
		return err
	}
	p.namespaces.SetNamespace(prefix, resolved)
	if requireDot {
		if err := p.verifyStatementEndsWithDot(); err != nil {
			return err
		}
	}
	return p.handler.HandleNamespace(prefix, resolved)
}

func (p *parserState) parseBaseDirectiveBody(requireDot bool) error {
	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	iri, err := p.parseIRIRefLexeme()
	if err != nil {
		return err
	}
	resolved, err := p.resolveIRI(iri)
	if err != nil {
		return err
	}
	p.namespaces.SetBaseURI(resolved)
	if requireDot {
		if err := p.verifyStatementEndsWithDot(); err != nil {
			return err
		}
	}
	return nil
}

// readPNPrefix reads the "prefix" part of a PNAME_NS up to (and
// consuming) the terminating ':'. An empty prefix (the default
// namespace, ":") is allowed.
func (p *parserState) readPNPrefix() (string, error) {
	p.scratch.Reset()
	r, err := p.peekCodePoint()
	if err != nil {
		return "", p.fatalf("unexpected end of input in prefix name")
	}
	if r != ':' {
		if !isPNCharsBase(r) {
			return "", p.fatalf("invalid prefix name")
		}
		p.scratch.WriteRune(r)
		p.readCodePoint()
		for {
			r, err := p.peekCodePoint()
			if err != nil {
				return "", p.fatalf("unexpected end of input in prefix name")
			}
			if r == ':' {
				break
			}
			if !isPNChars(r) && r != '.' {
				return "", p.fatalf("invalid character %q in prefix name", r)
			}
			p.scratch.WriteRune(r)
			p.readCodePoint()
		}
	}
	// consume ':'
	if _, err := p.readCodePoint(); err != nil {
		return "", p.fatalf("unexpected end of input, expected ':'")
	}
	return p.scratch.String(), nil
}

// readBareWord reads a run of PN_CHARS_BASE-ish ASCII letters, used
// for directive keyword recognition ("prefix", "base") and for
// "@prefix"/"@base".
func (p *parserState) readBareWord() (string, error) {
	p.scratch.Reset()
	r, err := p.readCodePoint()
	if err != nil {
		return "", p.fatalf("unexpected end of input")
	}
	p.scratch.WriteRune(r)
	for {
		next, err := p.peekCodePoint()
		if err != nil {
			break
		}
		if !((next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') || next == '@') {
			break
		}
		p.scratch.WriteRune(next)
		p.readCodePoint()
	}
	return p.scratch.String(), nil
}

// snapshot/restore let tryProcessDirective back out of a speculative
// bare-word read when it turns out not to be "prefix"/"base" (so that
// "based:on ..." is not mistaken for a BASE directive, for instance).
type parserSnapshot struct {
	currentIndex int
	pushback     []rune
}

func (p *parserState) snapshot() parserSnapshot {
	pb := make([]rune, len(p.pushback))
	copy(pb, p.pushback)
	return parserSnapshot{currentIndex: p.currentIndex, pushback: pb}
}

func (p *parserState) restore(s parserSnapshot) {
	p.currentIndex = s.currentIndex
	p.pushback = s.pushback
}

// parseSubject parses the subject production: '(' collection, '['
// implicit blank, or a general resource term.
func (p *parserState) parseSubject() (Term, error) {
	r, err := p.peekCodePoint()
	if err != nil {
		return nil, p.fatalf("unexpected end of input, expected subject")
	}
	switch r {
	case '(':
		return p.parseCollection()
	case '[':
		return p.parseBlankNodePropertyList()
	}
	term, err := p.parseValue(false)
	if err != nil {
		return nil, err
	}
	if _, ok := term.(Literal); ok {
		return nil, p.fatalf("subject must be an IRI, blank node, or triple term, not a literal")
	}
	return term, nil
}

// parsePredicateObjectList parses the predicate-object-list /
// object-list productions, recursing through ';' and ',' and
// tolerating empty predicate-object pairs between consecutive ';'.
func (p *parserState) parsePredicateObjectList(subject Term) error {
	for {
		if consumed, err := p.trySkipSemicolons(); err != nil {
			return err
		} else if consumed {
			if p.atStatementTerminator() {
				return nil
			}
		}
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}
		p.predicate = predicate
		if err := p.parseObjectList(subject, predicate); err != nil {
			return err
		}

		if !p.peekIsSemicolon() {
			return nil
		}
	}
}

func (p *parserState) peekIsSemicolon() bool {
	if _, err := p.skipMultilineWSC(false); err != nil {
		return false
	}
	r, err := p.peekCodePoint()
	return err == nil && r == ';'
}

func (p *parserState) trySkipSemicolons() (bool, error) {
	any := false
	for p.peekIsSemicolon() {
		p.readCodePoint()
		any = true
	}
	return any, nil
}

func (p *parserState) atStatementTerminator() bool {
	if _, err := p.skipMultilineWSC(false); err != nil {
		return true
	}
	r, err := p.peekCodePoint()
	if err != nil {
		return true
	}
	return r == '.' || r == ']' || r == '}'
}

func (p *parserState) parseObjectList(subject Term, predicate IRI) error {
	for {
		mark := len(p.extraStatements)
		obj, err := p.parseValue(true)
		if err != nil {
			return err
		}
		p.object = obj
		stmt, err := p.factory.CreateStatement(subject, predicate, obj)
		if err != nil {
			return p.fatalf("%v", err)
		}
		// The statement naming obj goes ahead of the statements that
		// parsing obj emitted (a collection or property-list expansion).
		p.extraStatements = append(p.extraStatements, Statement{})
		copy(p.extraStatements[mark+1:], p.extraStatements[mark:])
		p.extraStatements[mark] = stmt

		if p.settings.AcceptTurtleStar {
			if _, err := p.skipMultilineWSC(false); err != nil {
				return err
			}
			if ok, err := p.peekMatches2('{', '|'); err != nil {
				return err
			} else if ok {
				if err := p.parseAnnotation(stmt); err != nil {
					return err
				}
			}
		}

		if _, err := p.skipMultilineWSC(false); err != nil {
			return err
		}
		r, err := p.peekCodePoint()
		if err != nil || r != ',' {
			return nil
		}
		p.readCodePoint()
		if _, err := p.skipMultilineWSC(true); err != nil {
			return err
		}
	}
}

// parsePredicate accepts "a" (rdf:type), an IRIref, or a prefixed
// name; booleans are rejected here.
func (p *parserState) parsePredicate() (IRI, error) {
	if _, err := p.skipMultilineWSC(true); err != nil {
		return IRI{}, err
	}
	r, err := p.peekCodePoint()
	if err != nil {
		return IRI{}, p.fatalf("unexpected end of input, expected predicate")
	}
	if r == 'a' {
		if ok, _ := p.peekMatchesAKeyword(); ok {
			p.readCodePoint()
			return rdfType, nil
		}
	}
	term, err := p.parseValue(false)
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, p.fatalf("predicate must be an IRI, got %T", term)
	}
	return iri, nil
}

// peekMatchesAKeyword confirms that a lone "a" is the rdf:type
// shorthand and not the start of a longer prefixed name/keyword: "a"
// must be followed by whitespace, a comment, or a terminator.
func (p *parserState) peekMatchesAKeyword() (bool, error) {
	next, err := p.peekCodePointAt(1)
	if err != nil {
		return true, nil
	}
	if isWSChar(next) || next == '#' {
		return true, nil
	}
	switch next {
	case '.', ',', ';', ')', ']', '}', '<', '"', '\'', '(', '[':
		return true, nil
	}
	return false, nil
}

func (p *parserState) peekMatches2(a, b rune) (bool, error) {
	r0, err := p.peekCodePointAt(0)
	if err != nil || r0 != a {
		return false, nil
	}
	r1, err := p.peekCodePointAt(1)
	if err != nil || r1 != b {
		return false, nil
	}
	return true, nil
}

// parseValue is the central term dispatch. allowLiteral is false in
// subject/predicate position, true in object position.
func (p *parserState) parseValue(allowLiteral bool) (Term, error) {
	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	r, err := p.peekCodePoint()
	if err != nil {
		return nil, p.fatalf("unexpected end of input, expected a term")
	}

	if r == '<' {
		if ok, _ := p.peekMatches2('<', '<'); ok && p.settings.AcceptTurtleStar {
			return p.parseTripleTerm()
		}
		iri, err := p.parseIRIRefLexeme()
		if err != nil {
			return nil, err
		}
		resolved, err := p.resolveIRI(iri)
		if err != nil {
			return nil, err
		}
		return p.factory.CreateIRI(resolved)
	}
	switch {
	case r == ':' || isPNCharsBase(r):
		return p.parsePrefixedNameOrBoolean()
	case r == '_':
		return p.parseBlankNodeLabel()
	case r == '"' || r == '\'':
		if !allowLiteral {
			return nil, p.fatalf("literal not allowed in this position")
		}
		return p.parseQuotedLiteralTerm()
	case r >= '0' && r <= '9', r == '+', r == '-', r == '.':
		if !allowLiteral {
			return nil, p.fatalf("numeric literal not allowed in this position")
		}
		return p.parseNumber()
	case r == '(':
		return p.parseCollection()
	case r == '[':
		return p.parseBlankNodePropertyList()
	default:
		return nil, p.fatalf("unexpected character %q", r)
	}
}

func (p *parserState) fatalf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	pe := WrapParseError("turtle", "", p.lineNumber, err)
	p.fatalErr = pe
	return pe
}

// fatalWrap wraps a sentinel error (ErrMaxDepthExceeded and friends)
// so callers can still match it with errors.Is through ParseError.Unwrap.
func (p *parserState) fatalWrap(err error) error {
	pe := WrapParseError("turtle", "", p.lineNumber, err)
	p.fatalErr = pe
	return pe
}

// resolveIRI resolves relative against the active base and escalates
// a still-relative result to a fatal error when
// Settings.VerifyRelativeURIs is on.
func (p *parserState) resolveIRI(relative string) (string, error) {
	resolved := p.namespaces.ResolveURI(relative)
	if looksRelative(resolved) && p.bridge.severity(diagRelativeURI) == sevFatal {
		return "", p.fatalf("relative IRI %q not permitted", resolved)
	}
	return resolved, nil
}
