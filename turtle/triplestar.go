package turtle

// parseTripleTerm parses an RDF-star quoted triple "<< s p o >>" used
// as a term, gated by Settings.AcceptTurtleStar. It reuses parseValue
// for the subject/object positions (disallowing a literal subject the
// same way parseSubject does), which is a superset of the stricter
// qtSubject/qtObject grammar -- documented in DESIGN.md as an accepted
// leniency.
func (p *parserState) parseTripleTerm() (Term, error) {
	if p.depth >= p.cfg.MaxDepth {
		return nil, p.fatalWrap(ErrMaxDepthExceeded)
	}
	p.depth++
	defer func() { p.depth-- }()

	if _, err := p.readCodePoint(); err != nil {
		return nil, p.fatalf("unexpected end of input, expected '<<'")
	}
	if _, err := p.readCodePoint(); err != nil {
		return nil, p.fatalf("unexpected end of input, expected '<<'")
	}

	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	s, err := p.parseValue(false)
	if err != nil {
		return nil, err
	}
	if _, ok := s.(Literal); ok {
		return nil, p.fatalf("triple term subject must be an IRI, blank node, or triple term, not a literal")
	}
	predicate, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}
	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	o, err := p.parseValue(true)
	if err != nil {
		return nil, err
	}

	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	r1, e1 := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r1, e1, ">"); err != nil {
		return nil, err
	}
	r2, e2 := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r2, e2, ">"); err != nil {
		return nil, err
	}
	return p.factory.CreateTriple(s, predicate, o)
}

// parseAnnotation parses the additive "{| p o ; ... |}" shorthand:
// sugar for a predicate-object list whose subject is the quoted form
// of the triple just asserted.
func (p *parserState) parseAnnotation(stmt Statement) error {
	if p.depth >= p.cfg.MaxDepth {
		return p.fatalWrap(ErrMaxDepthExceeded)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.readCodePoint() // '{'
	p.readCodePoint() // '|'

	tt, err := p.factory.CreateTriple(stmt.S, stmt.P, stmt.O)
	if err != nil {
		return err
	}

	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	if err := p.parsePredicateObjectList(tt); err != nil {
		return err
	}
	if _, err := p.skipMultilineWSC(true); err != nil {
		return err
	}
	r1, e1 := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r1, e1, "|"); err != nil {
		return err
	}
	r2, e2 := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r2, e2, "}"); err != nil {
		return err
	}
	return nil
}
