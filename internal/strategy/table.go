package strategy

// Table maps strategies to one tool family's native strategy token.
// A strategy missing from the table is unsupported by that family. An empty
// token means the family supports the strategy without taking a flag for it.
type Table map[Strategy]string

// Token returns the native token for s, or ok=false if unsupported.
func (t Table) Token(s Strategy) (token string, ok bool) {
	token, ok = t[s]
	return token, ok
}

// Supports reports whether the family can run s at all.
func (t Table) Supports(s Strategy) bool {
	_, ok := t[s]
	return ok
}

// With returns a copy of t with overrides applied. A nil override value
// marks the strategy unsupported.
func (t Table) With(overrides map[Strategy]*string) Table {
	out := make(Table, len(t)+len(overrides))
	for s, tok := range t {
		out[s] = tok
	}
	for s, tok := range overrides {
		if tok == nil {
			delete(out, s)
			continue
		}
		out[s] = *tok
	}
	return out
}
