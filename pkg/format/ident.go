package format

// sanitize copies name, replacing every character that is not an ASCII
// letter, digit, or underscore with an underscore.
func sanitize(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// ValueIdent maps a resource name to a valid value-level identifier.
// Empty names become "unnamed". Names starting with an uppercase
// letter or a digit get a leading underscore, since value identifiers
// must not start with either in the generated grammar.
//
// ValueIdent is pure and idempotent on its own output. Two distinct
// names may sanitize to the same identifier; collisions are not
// detected.
func ValueIdent(name string) string {
	s := sanitize(name)
	if s == "" {
		return "unnamed"
	}
	c := s[0]
	if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return "_" + s
	}
	return s
}

// ModuleIdent maps a resource name to a valid module identifier.
// Empty names become "Unnamed". Names starting with a digit get the
// "Ns_" marker, names starting with an underscore get a leading "M",
// and a leading lowercase letter is capitalized.
func ModuleIdent(name string) string {
	s := sanitize(name)
	if s == "" {
		return "Unnamed"
	}
	switch c := s[0]; {
	case c >= '0' && c <= '9':
		return "Ns_" + s
	case c == '_':
		return "M" + s
	case c >= 'a' && c <= 'z':
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
