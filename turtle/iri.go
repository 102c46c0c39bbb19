package turtle

import "strings"

// validateIRIStructure performs a structural check, not full RFC 3987
// validation: it flags raw control characters and the small set of
// characters Turtle requires to be percent-encoded or escaped.
func validateIRIStructure(iri string) (ok bool, reason string) {
	for _, r := range iri {
		if r < 0x20 {
			return false, "control character in IRI"
		}
		if r == ' ' {
			return false, "unencoded space in IRI"
		}
		if r == '<' || r == '>' || r == '"' || r == '{' || r == '}' || r == '|' || r == '`' {
			return false, "unescaped reserved character in IRI"
		}
	}
	return true, ""
}

// looksRelative reports whether an IRI has no scheme component, the
// structural signal VerifyRelativeURIs escalates on.
func looksRelative(iri string) bool {
	idx := strings.IndexByte(iri, ':')
	if idx <= 0 {
		return true
	}
	scheme := iri[:idx]
	for i, r := range scheme {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isSchemeChar := isAlpha || (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'
		if i == 0 && !isAlpha {
			return true
		}
		if !isSchemeChar {
			return true
		}
	}
	return false
}
