package turtle

import "context"

// Default resource limits, so untrusted input cannot exhaust memory
// while a logical line or collection is being accumulated.
const (
	DefaultMaxLineBytes      = 1 << 20
	DefaultMaxStatementBytes = 4 << 20
	DefaultMaxDepth          = 128
)

// Settings are the binary flags the grammar engine and the error
// bridge query. The zero value is strict W3C Turtle: no
// case-insensitive directives, no RDF-star, and every escalatable
// warning left as a warning.
type Settings struct {
	// CaseInsensitiveDirectives accepts SPARQL-style PREFIX/BASE
	// (case-insensitive keyword, no trailing '.'). When false,
	// encountering one of these forms is a fatal error naming this
	// setting. A bare VERSION keyword is not recognized as a directive.
	CaseInsensitiveDirectives bool
	// AcceptTurtleStar enables RDF-star <<...>> triple terms and the
	// {| ... |} annotation shorthand.
	AcceptTurtleStar bool
	// VerifyURISyntax escalates IRI well-formedness warnings (bad
	// escapes, raw spaces) to fatal errors.
	VerifyURISyntax bool
	// VerifyLanguageTags escalates language-tag grammar violations to
	// fatal errors.
	VerifyLanguageTags bool
	// VerifyDatatypeValues escalates bad escape sequences in string
	// literals to fatal errors. Bad escapes inside an IRI reference
	// are governed by VerifyURISyntax instead.
	VerifyDatatypeValues bool
	// VerifyRelativeURIs escalates an IRI that resolves to something
	// without a scheme to a fatal error.
	VerifyRelativeURIs bool
	// PreserveBNodeIDs makes the default ValueFactory keep syntactic
	// blank-node labels (_:x) as the BlankNode ID. When false, it
	// renames each label to "label-N", N counting the distinct labels
	// seen before it in this parse, so two parses that use the same
	// labels in the same order yield the same IDs (NewValueFactory's
	// scope is what separates parses). Within a single parse, repeated
	// occurrences of "_:x" denote the same node either way.
	PreserveBNodeIDs bool
}

// DefaultSettings returns strict-mode settings (every deviation
// disabled).
func DefaultSettings() *Settings {
	return &Settings{}
}

// Bool reports the current value of a named Setting. It exists
// alongside the exported struct fields so the error bridge and tests
// can address a setting generically, via a table mapping diagnostic
// kind to setting name.
func (s *Settings) Bool(name string) bool {
	switch name {
	case "CaseInsensitiveDirectives":
		return s.CaseInsensitiveDirectives
	case "AcceptTurtleStar":
		return s.AcceptTurtleStar
	case "VerifyURISyntax":
		return s.VerifyURISyntax
	case "VerifyLanguageTags":
		return s.VerifyLanguageTags
	case "VerifyDatatypeValues":
		return s.VerifyDatatypeValues
	case "VerifyRelativeURIs":
		return s.VerifyRelativeURIs
	case "PreserveBNodeIDs":
		return s.PreserveBNodeIDs
	default:
		return false
	}
}

// config bundles Settings with the resource limits and collaborators
// that the Option functions below configure, split into an
// API-facing Settings block and format-internal fields (context,
// factory, namespaces, handler).
type config struct {
	Settings          *Settings
	MaxLineBytes      int
	MaxStatementBytes int
	MaxDepth          int
	Context           context.Context
	Factory           ValueFactory
	Namespaces        NamespaceTable
	BaseIRI           string
	Handler           Handler
}

func defaultConfig() config {
	return config{
		Settings:          DefaultSettings(),
		MaxLineBytes:      DefaultMaxLineBytes,
		MaxStatementBytes: DefaultMaxStatementBytes,
		MaxDepth:          DefaultMaxDepth,
		Context:           context.Background(),
	}
}

// Option configures a Decoder or a Parse/ParseAll call.
type Option func(*config)

// WithCaseInsensitiveDirectives toggles Settings.CaseInsensitiveDirectives.
func WithCaseInsensitiveDirectives(v bool) Option {
	return func(c *config) { c.Settings.CaseInsensitiveDirectives = v }
}

// WithTurtleStar toggles Settings.AcceptTurtleStar.
func WithTurtleStar(v bool) Option {
	return func(c *config) { c.Settings.AcceptTurtleStar = v }
}

// WithVerifyURISyntax toggles Settings.VerifyURISyntax.
func WithVerifyURISyntax(v bool) Option {
	return func(c *config) { c.Settings.VerifyURISyntax = v }
}

// WithVerifyLanguageTags toggles Settings.VerifyLanguageTags.
func WithVerifyLanguageTags(v bool) Option {
	return func(c *config) { c.Settings.VerifyLanguageTags = v }
}

// WithVerifyDatatypeValues toggles Settings.VerifyDatatypeValues.
func WithVerifyDatatypeValues(v bool) Option {
	return func(c *config) { c.Settings.VerifyDatatypeValues = v }
}

// WithVerifyRelativeURIs toggles Settings.VerifyRelativeURIs.
func WithVerifyRelativeURIs(v bool) Option {
	return func(c *config) { c.Settings.VerifyRelativeURIs = v }
}

// WithPreserveBNodeIDs toggles Settings.PreserveBNodeIDs.
func WithPreserveBNodeIDs(v bool) Option {
	return func(c *config) { c.Settings.PreserveBNodeIDs = v }
}

// WithSettings replaces the whole Settings block in one call.
func WithSettings(s Settings) Option {
	return func(c *config) { *c.Settings = s }
}

// WithMaxLineBytes overrides the logical-line size limit (counted in
// runes) enforced in advanceLine. Zero or negative disables the limit.
func WithMaxLineBytes(n int) Option {
	return func(c *config) { c.MaxLineBytes = n }
}

// WithMaxStatementBytes overrides the logical-statement size limit
// enforced while accumulating a single statement's lines. Zero or
// negative disables the limit.
func WithMaxStatementBytes(n int) Option {
	return func(c *config) { c.MaxStatementBytes = n }
}

// WithMaxDepth overrides the nested collection / blank-node property
// list depth limit.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.MaxDepth = n }
}

// WithContext sets the cancellation context consulted between
// statements.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.Context = ctx }
}

// WithValueFactory overrides the default ValueFactory.
func WithValueFactory(f ValueFactory) Option {
	return func(c *config) { c.Factory = f }
}

// WithNamespaceTable overrides the default NamespaceTable.
func WithNamespaceTable(n NamespaceTable) Option {
	return func(c *config) { c.Namespaces = n }
}

// WithBaseIRI seeds the base IRI before parsing begins, as if a
// leading "@base <...> ." had already been processed.
func WithBaseIRI(iri string) Option {
	return func(c *config) { c.BaseIRI = iri }
}

// WithHandler supplies the Handler namespace and comment events are
// reported to while pulling from a Decoder. Parse and ParseAll set
// this internally after the caller's options, so a Handler passed to
// them through WithHandler is replaced by theirs.
func WithHandler(h Handler) Option {
	return func(c *config) { c.Handler = h }
}
