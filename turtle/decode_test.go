package turtle

import (
	"strings"
	"testing"
)

func mustParseAll(t *testing.T, src string, opts ...Option) ([]Statement, map[string]string) {
	t.Helper()
	stmts, ns, err := ParseAll(strings.NewReader(src), opts...)
	if err != nil {
		t.Fatalf("ParseAll(%q) error: %v", src, err)
	}
	return stmts, ns
}

func TestScenarioSimpleTriple(t *testing.T) {
	stmts, _ := mustParseAll(t, `@prefix : <http://x/> . :a :b :c .`)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	s := stmts[0]
	if s.S.String() != "http://x/a" || s.P.Value != "http://x/b" || s.O.String() != "http://x/c" {
		t.Fatalf("unexpected statement: %+v", s)
	}
}

func TestScenarioNumericDatatypes(t *testing.T) {
	stmts, _ := mustParseAll(t, `@prefix ex: <http://e/> . ex:s ex:p 42, 3.14, 1e2 .`)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	want := []IRI{xsdInteger, xsdDecimal, xsdDouble}
	for i, stmt := range stmts {
		lit, ok := stmt.O.(Literal)
		if !ok {
			t.Fatalf("statement %d object is %T, want Literal", i, stmt.O)
		}
		if lit.Datatype != want[i] {
			t.Errorf("statement %d datatype = %v, want %v", i, lit.Datatype, want[i])
		}
	}
}

func TestScenarioCollection(t *testing.T) {
	stmts, _ := mustParseAll(t, `<http://s> <http://p> ( 1 2 3 ) .`)
	if len(stmts) != 7 {
		t.Fatalf("got %d statements, want 7", len(stmts))
	}
	if stmts[0].P.Value != "http://p" {
		t.Fatalf("first statement should relate s to the list head: %+v", stmts[0])
	}
	head := stmts[0].O
	firstCount, restCount := 0, 0
	for _, s := range stmts {
		switch s.P {
		case rdfFirstIRI:
			firstCount++
		case rdfRestIRI:
			restCount++
		}
	}
	if firstCount != 3 || restCount != 3 {
		t.Fatalf("got %d rdf:first and %d rdf:rest, want 3 and 3", firstCount, restCount)
	}
	if _, ok := head.(BlankNode); !ok {
		t.Fatalf("list head should be a blank node, got %T", head)
	}
}

func TestScenarioBlankNodePropertyList(t *testing.T) {
	stmts, _ := mustParseAll(t, `<http://s> <http://p> [ <http://q> <http://r> ; <http://q2> <http://r2> ] .`)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	anon := stmts[0].O
	if stmts[1].S != anon || stmts[2].S != anon {
		t.Fatalf("second and third statements should share the anonymous subject: %+v", stmts)
	}
}

func TestScenarioCaseInsensitiveDirectives(t *testing.T) {
	src := "PREFIX ex: <http://e/>\nex:s ex:p true ."

	stmts, _ := mustParseAll(t, src, WithCaseInsensitiveDirectives(true))
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	lit, ok := stmts[0].O.(Literal)
	if !ok || lit.Datatype != xsdBoolean || lit.Lexical != "true" {
		t.Fatalf("unexpected object: %+v", stmts[0].O)
	}

	if _, _, err := ParseAll(strings.NewReader(src)); err == nil {
		t.Fatalf("expected a fatal error with case-insensitive directives off")
	}
}

func TestScenarioTripleTerm(t *testing.T) {
	stmts, _ := mustParseAll(t,
		`@prefix : <http://x/> . << :s :p :o >> :mentions :doc .`,
		WithTurtleStar(true))
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	tt, ok := stmts[0].S.(TripleTerm)
	if !ok {
		t.Fatalf("subject is %T, want TripleTerm", stmts[0].S)
	}
	if tt.S.String() != "http://x/s" || tt.P.Value != "http://x/p" || tt.O.String() != "http://x/o" {
		t.Fatalf("unexpected quoted triple: %+v", tt)
	}
	if stmts[0].P.Value != "http://x/mentions" {
		t.Fatalf("unexpected predicate: %+v", stmts[0].P)
	}
}

func TestScenarioAnnotation(t *testing.T) {
	stmts, _ := mustParseAll(t,
		`@prefix : <http://x/> . :s :p :o {| :certainty :high |} .`,
		WithTurtleStar(true))
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	tt, ok := stmts[1].S.(TripleTerm)
	if !ok {
		t.Fatalf("annotation subject is %T, want TripleTerm", stmts[1].S)
	}
	if tt.S.String() != "http://x/s" || tt.P.Value != "http://x/p" || tt.O.String() != "http://x/o" {
		t.Fatalf("annotation should quote the preceding triple: %+v", tt)
	}
}

func TestOnlyDirectivesAndCommentsEmitNoStatements(t *testing.T) {
	stmts, ns := mustParseAll(t, "# a comment\n@prefix ex: <http://e/> .\n# another\n")
	if len(stmts) != 0 {
		t.Fatalf("got %d statements, want 0", len(stmts))
	}
	if ns["ex"] != "http://e/" {
		t.Fatalf("missing expected namespace binding: %v", ns)
	}
}

func TestBlankNodeLabelReuse(t *testing.T) {
	stmts, _ := mustParseAll(t, `<http://s> <http://p1> _:x . <http://s> <http://p2> _:x .`)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if stmts[0].O != stmts[1].O {
		t.Fatalf("repeated _:x should yield the same blank node: %+v vs %+v", stmts[0].O, stmts[1].O)
	}
}

func TestTripleQuotedLiteralBoundaries(t *testing.T) {
	stmts, _ := mustParseAll(t, "<http://s> <http://p> \"\"\"has \" and \"\" and \\\" and\nan embedded newline\"\"\" .")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	lit, ok := stmts[0].O.(Literal)
	if !ok {
		t.Fatalf("object is %T, want Literal", stmts[0].O)
	}
	if !strings.Contains(lit.Lexical, "\n") {
		t.Fatalf("expected embedded newline in lexical form, got %q", lit.Lexical)
	}
}

func TestIRIWithUnicodeEscape(t *testing.T) {
	stmts, _ := mustParseAll(t, "<http://s> <http://p> <http://x/\\u00E9> .")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	iri, ok := stmts[0].O.(IRI)
	if !ok || !strings.Contains(iri.Value, "é") {
		t.Fatalf("expected decoded \\u escape, got %+v", stmts[0].O)
	}
}

func TestPrefixedNameWithPercentEscapeAndTrailingDot(t *testing.T) {
	stmts, _ := mustParseAll(t, "@prefix ex: <http://e/> .\nex:a ex:has.suffix ex:na%20me .")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	if stmts[0].O.String() != "http://e/na%20me" {
		t.Fatalf("unexpected object: %+v", stmts[0].O)
	}
	if stmts[0].P.Value != "http://e/has.suffix" {
		t.Fatalf("unexpected predicate: %+v", stmts[0].P)
	}
}

func TestIntegerVsDecimalDotDisambiguation(t *testing.T) {
	stmts, _ := mustParseAll(t, `<http://s> <http://p> 1 .`)
	lit := stmts[0].O.(Literal)
	if lit.Datatype != xsdInteger || lit.Lexical != "1" {
		t.Fatalf("expected integer 1, got %+v", lit)
	}

	stmts2, _ := mustParseAll(t, `<http://s> <http://p> 1.0 .`)
	lit2 := stmts2[0].O.(Literal)
	if lit2.Datatype != xsdDecimal || lit2.Lexical != "1.0" {
		t.Fatalf("expected decimal 1.0, got %+v", lit2)
	}
}

func TestDefaultNamespaceRebinding(t *testing.T) {
	stmts, ns := mustParseAll(t, "@prefix : <http://a/> .\n@prefix : <http://b/> .\n:x :y :z .")
	if ns[""] != "http://b/" {
		t.Fatalf("expected default namespace rebound to http://b/, got %v", ns)
	}
	if stmts[0].S.String() != "http://b/x" {
		t.Fatalf("triple should use the rebound namespace, got %+v", stmts[0])
	}
}

func TestEOFMidCollectionIsFatal(t *testing.T) {
	_, _, err := ParseAll(strings.NewReader(`<http://s> <http://p> ( 1 2`))
	if err == nil {
		t.Fatal("expected a fatal error for EOF mid-collection")
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, _, err := ParseAll(strings.NewReader(`<http://s> <http://p> "unterminated .`))
	if err == nil {
		t.Fatal("expected a fatal error for an unterminated string")
	}
}
