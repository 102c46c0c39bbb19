package turtle

import (
	"context"
	"io"
)

// Decoder pulls one Statement at a time from a Turtle document. It is
// not safe for concurrent use.
type Decoder struct {
	state   *parserState
	pending []Statement
	err     error
	closed  bool
}

// NewDecoder returns a Decoder reading from r, configured by opts.
// Namespace and comment events are reported to the Handler supplied
// via WithHandler, if any; otherwise they are silently discarded.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{state: newParserState(r, cfg)}
}

// Next returns the next Statement, or an error. io.EOF (unwrapped)
// signals a clean end of document; any other error is fatal and every
// subsequent call to Next returns the same error.
func (d *Decoder) Next() (Statement, error) {
	if d.err != nil {
		return Statement{}, d.err
	}
	if d.closed {
		return Statement{}, ErrUnexpectedEOF
	}
	stmt, err := d.state.parseOne(&d.pending)
	if err != nil {
		if err != io.EOF {
			d.err = err
		} else {
			d.err = io.EOF
		}
		return Statement{}, err
	}
	return stmt, nil
}

// Err returns the first non-EOF error Next returned, if any.
func (d *Decoder) Err() error {
	if d.err == io.EOF {
		return nil
	}
	return d.err
}

// Close releases the Decoder. The underlying io.Reader is never
// closed by the Decoder itself: callers that opened it are
// responsible for closing it.
func (d *Decoder) Close() error {
	d.closed = true
	return nil
}

// Parse reads every statement from r and reports it, along with every
// namespace binding and comment, to handler. ctx is checked between
// statements; ctx.Err() is returned as soon as it is non-nil.
func Parse(ctx context.Context, r io.Reader, handler Handler, opts ...Option) error {
	opts = append(opts, WithContext(ctx), WithHandler(handler))
	dec := NewDecoder(r, opts...)
	defer dec.Close()

	if err := handler.StartRDF(); err != nil {
		return err
	}
	for {
		stmt, err := dec.Next()
		if err == io.EOF {
			return handler.EndRDF()
		}
		if err != nil {
			return err
		}
		if err := handler.HandleStatement(stmt); err != nil {
			return err
		}
	}
}

// ParseAll reads every statement from r into memory and returns them
// along with the namespace bindings encountered, for callers that do
// not need streaming. Comments are not returned.
func ParseAll(r io.Reader, opts ...Option) ([]Statement, map[string]string, error) {
	h := newCollectingHandler()
	if err := Parse(context.Background(), r, h, opts...); err != nil {
		return nil, nil, err
	}
	return h.statements, h.namespaces, nil
}
