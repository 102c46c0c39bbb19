package turtle

import "fmt"

// ValueFactory constructs RDF values. Every method may return a
// ParseError (via WrapParseError) which the caller reports with
// line-position context attached.
type ValueFactory interface {
	CreateIRI(value string) (IRI, error)
	CreateLiteral(lexical, lang string, datatype *IRI, line int) (Literal, error)
	CreateBlankNode() (BlankNode, error)
	CreateBlankNodeWithLabel(label string) (BlankNode, error)
	CreateTriple(s Term, p IRI, o Term) (TripleTerm, error)
	CreateStatement(s Term, p IRI, o Term) (Statement, error)
}

// defaultValueFactory implements ValueFactory with a counter-based
// anonymous blank-node generator, generalized with a label table so
// that repeated occurrences of the same syntactic label ("_:x", n
// times) always yield the same BlankNode value within one document.
type defaultValueFactory struct {
	counter  int
	labels   map[string]string
	scope    string
	preserve bool
}

// NewValueFactory returns the default ValueFactory. scope, when
// non-empty, is prefixed ("scope-") to every generated or labeled
// blank-node ID so that blank nodes from distinct parses of documents
// using the same literal labels never collide once merged. With an
// empty scope, labels are kept raw only when preserveBNodeIDs is true;
// otherwise each label becomes "label-N".
func NewValueFactory(scope string, preserveBNodeIDs bool) ValueFactory {
	return &defaultValueFactory{
		labels:   map[string]string{},
		scope:    scope,
		preserve: preserveBNodeIDs,
	}
}

func (f *defaultValueFactory) CreateIRI(value string) (IRI, error) {
	return IRI{Value: value}, nil
}

func (f *defaultValueFactory) CreateLiteral(lexical, lang string, datatype *IRI, line int) (Literal, error) {
	if lang != "" && datatype != nil {
		return Literal{}, WrapParseError("turtle", "", line, fmt.Errorf("literal cannot have both a language tag and a datatype"))
	}
	lit := Literal{Lexical: lexical, Lang: lang}
	if datatype != nil {
		lit.Datatype = *datatype
	}
	return lit, nil
}

func (f *defaultValueFactory) CreateBlankNode() (BlankNode, error) {
	f.counter++
	id := fmt.Sprintf("g%d", f.counter)
	if f.scope != "" {
		id = f.scope + "-" + id
	}
	return BlankNode{ID: id}, nil
}

func (f *defaultValueFactory) CreateBlankNodeWithLabel(label string) (BlankNode, error) {
	if existing, ok := f.labels[label]; ok {
		return BlankNode{ID: existing}, nil
	}
	id := label
	if f.scope != "" {
		// Disambiguate across parses even when PreserveBNodeIDs is set,
		// since the scope tag itself guarantees no cross-document
		// collision while still reusing one ID per label within this
		// document.
		id = f.scope + "-" + label
	} else if !f.preserve {
		id = fmt.Sprintf("%s-%d", label, len(f.labels))
	}
	f.labels[label] = id
	return BlankNode{ID: id}, nil
}

func (f *defaultValueFactory) CreateTriple(s Term, p IRI, o Term) (TripleTerm, error) {
	if s == nil || o == nil {
		return TripleTerm{}, fmt.Errorf("triple term requires non-nil subject and object")
	}
	return TripleTerm{S: s, P: p, O: o}, nil
}

func (f *defaultValueFactory) CreateStatement(s Term, p IRI, o Term) (Statement, error) {
	if s == nil || o == nil {
		return Statement{}, fmt.Errorf("statement requires non-nil subject and object")
	}
	return Statement{S: s, P: p, O: o}, nil
}
