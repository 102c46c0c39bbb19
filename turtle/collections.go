package turtle

// parseCollection parses a Turtle collection "( item* )", expanding it
// into an rdf:first/rdf:rest chain terminated by rdf:nil. An empty
// collection is rdf:nil itself with no blank nodes created. Every
// expansion triple is reported through p.emit before parseCollection
// returns; when the collection is an object, parseObjectList then
// places the triple that references its head ahead of them.
func (p *parserState) parseCollection() (Term, error) {
	if p.depth >= p.cfg.MaxDepth {
		return nil, p.fatalWrap(ErrMaxDepthExceeded)
	}
	p.depth++
	defer func() { p.depth-- }()

	if _, err := p.readCodePoint(); err != nil {
		return nil, p.fatalf("unexpected end of input, expected '('")
	}

	var items []Term
	for {
		if _, err := p.skipMultilineWSC(true); err != nil {
			return nil, err
		}
		r, err := p.peekCodePoint()
		if err != nil {
			return nil, p.fatalf("unexpected end of input in collection")
		}
		if r == ')' {
			p.readCodePoint()
			break
		}
		item, err := p.parseValue(true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return rdfNilIRI, nil
	}

	nodes := make([]Term, len(items))
	for i := range items {
		bn, err := p.factory.CreateBlankNode()
		if err != nil {
			return nil, err
		}
		nodes[i] = bn
	}
	for i, item := range items {
		firstStmt, err := p.factory.CreateStatement(nodes[i], rdfFirstIRI, item)
		if err != nil {
			return nil, p.fatalf("%v", err)
		}
		p.emit(firstStmt)

		var rest Term = rdfNilIRI
		if i+1 < len(nodes) {
			rest = nodes[i+1]
		}
		restStmt, err := p.factory.CreateStatement(nodes[i], rdfRestIRI, rest)
		if err != nil {
			return nil, p.fatalf("%v", err)
		}
		p.emit(restStmt)
	}
	return nodes[0], nil
}

// parseBlankNodePropertyList parses "[ predicateObjectList? ]",
// generating one fresh blank node and reporting every (node, p, o)
// triple inside it via p.emit before parseBlankNodePropertyList
// returns.
func (p *parserState) parseBlankNodePropertyList() (Term, error) {
	if p.depth >= p.cfg.MaxDepth {
		return nil, p.fatalWrap(ErrMaxDepthExceeded)
	}
	p.depth++
	defer func() { p.depth-- }()

	if _, err := p.readCodePoint(); err != nil {
		return nil, p.fatalf("unexpected end of input, expected '['")
	}
	bn, err := p.factory.CreateBlankNode()
	if err != nil {
		return nil, err
	}

	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	r, err := p.peekCodePoint()
	if err != nil {
		return nil, p.fatalf("unexpected end of input in blank node property list")
	}
	if r == ']' {
		p.readCodePoint()
		return bn, nil
	}

	if err := p.parsePredicateObjectList(bn); err != nil {
		return nil, err
	}
	if _, err := p.skipMultilineWSC(true); err != nil {
		return nil, err
	}
	r2, err2 := p.readCodePoint()
	if err := p.verifyCharacterOrFail(r2, err2, "]"); err != nil {
		return nil, err
	}
	return bn, nil
}
