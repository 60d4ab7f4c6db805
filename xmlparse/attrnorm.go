package xmlparse

// collapseSpaces discards leading and trailing #x20 and collapses every
// internal run of #x20 to a single space, the tokenized-attribute half
// of §3.3.3's normalization procedure.
func collapseSpaces(b []byte) []byte {
	out := make([]byte, 0, len(b))
	pending := false
	started := false
	for _, c := range b {
		if c == ' ' {
			if started {
				pending = true
			}
			continue
		}
		if pending {
			out = append(out, ' ')
			pending = false
		}
		out = append(out, c)
		started = true
	}
	return out
}

// normalizeAttrValue applies attribute-value normalization in four
// steps: EOL normalization, whitespace-to-space substitution, reference
// resolution, and (for attributes declared as something other than
// CDATA in the internal DTD subset) leading/trailing/internal space
// collapsing. References are resolved in a single pass; the resolved
// value is not scanned for references a second time.
func (p *Parser) normalizeAttrValue(raw, elementName, attrName []byte) ([]byte, ErrorKind, bool) {
	v := make([]byte, len(raw))
	copy(v, raw)
	v = normalizeEOL(v)
	for i := range v {
		if v[i] == '\t' || v[i] == '\n' || v[i] == '\r' {
			v[i] = ' '
		}
	}
	expanded, ek, foundExternal := p.expandEntities(v, true)
	if ek != ErrNone {
		return nil, ek, foundExternal
	}
	if row, ok := p.attlists.lookup(elementName, attrName); ok && row.kind != attlistCDATA {
		expanded = collapseSpaces(expanded)
	}
	return expanded, ErrNone, foundExternal
}
