// Package turtle implements a streaming parser for the RDF-1.1 Turtle
// concrete syntax, including an optional RDF-star (<< s p o >>, and the
// {| ... |} annotation shorthand) extension.
//
// The parser is line-buffered: a logical line is either one physical
// line of input, or, when a triple-quoted string straddles physical
// newlines, every physical line up to and including the one that
// closes it. Grammar productions read from the current logical line
// through a small set of scanner primitives; directives and triples
// are recognized by a recursive-descent engine that reports namespaces,
// comments, and statements to a Handler as they are recognized.
//
// Decode pulls statements with a Decoder:
//
//	dec := turtle.NewDecoder(r)
//	defer dec.Close()
//	for {
//	    stmt, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // use stmt.S, stmt.P, stmt.O
//	}
//
// Parse pushes statements to a Handler instead:
//
//	err := turtle.Parse(ctx, r, turtle.HandlerFunc(func(s turtle.Statement) error {
//	    fmt.Println(s)
//	    return nil
//	}))
//
// Deviations from strict W3C Turtle are gated by Settings (case-
// insensitive SPARQL-style PREFIX/BASE, RDF-star term and annotation
// syntax, and escalation of several non-fatal validation warnings to
// errors) and are documented alongside each Option.
package turtle
