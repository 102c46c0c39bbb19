package turtle

import (
	"net/url"
	"strings"
)

// NamespaceTable stores prefix -> IRI bindings and resolves relative
// IRIs against the active base.
type NamespaceTable interface {
	SetNamespace(prefix, iri string)
	Namespace(prefix string) (string, bool)
	SetBaseURI(iri string)
	BaseURI() string
	ResolveURI(relative string) string
}

// defaultNamespaceTable is a map-backed NamespaceTable. IRI resolution
// prefers net/url's RFC 3986 resolution, and falls back to
// slash-aware concatenation when either side fails to parse, rather
// than rejecting an otherwise-recoverable document outright.
type defaultNamespaceTable struct {
	prefixes map[string]string
	base     string
}

// NewNamespaceTable returns an empty, map-backed NamespaceTable.
func NewNamespaceTable() NamespaceTable {
	return &defaultNamespaceTable{prefixes: map[string]string{}}
}

func (t *defaultNamespaceTable) SetNamespace(prefix, iri string) {
	t.prefixes[prefix] = iri
}

func (t *defaultNamespaceTable) Namespace(prefix string) (string, bool) {
	iri, ok := t.prefixes[prefix]
	return iri, ok
}

func (t *defaultNamespaceTable) SetBaseURI(iri string) { t.base = iri }

func (t *defaultNamespaceTable) BaseURI() string { return t.base }

func (t *defaultNamespaceTable) ResolveURI(relative string) string {
	if t.base == "" {
		return relative
	}
	return resolveAgainstBase(t.base, relative)
}

func resolveAgainstBase(baseStr, relative string) string {
	fallback := func() string {
		if strings.HasSuffix(baseStr, "/") {
			return baseStr + relative
		}
		if idx := strings.LastIndex(baseStr, "/"); idx >= 0 {
			return baseStr[:idx+1] + relative
		}
		return baseStr + "/" + relative
	}

	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return fallback()
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return fallback()
	}
	if relURL.Scheme != "" {
		return relative
	}
	return baseURL.ResolveReference(relURL).String()
}
