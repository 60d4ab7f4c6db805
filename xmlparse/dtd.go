package xmlparse

import "bytes"

// scanDoctypeHeader copies the "!DOCTYPE name (SYSTEM/PUBLIC id)?"
// portion into p.work, stopping at whichever of '[' (an internal
// subset follows) or '>' (no subset) appears first outside a quoted
// literal.
func (p *Parser) scanDoctypeHeader() (ek ErrorKind, ready bool, hasSubset bool) {
	var quote byte
	n := 0
	for {
		b, ok := p.ring.peek(n)
		if !ok {
			return ErrNone, false, false
		}
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			n++
			continue
		}
		switch b {
		case '"', '\'':
			quote = b
		case '[', '>':
			if n > p.cfg.WorkCap {
				return ErrLargeDTDPortionlength, true, false
			}
			p.work = p.work[:0]
			for i := 0; i < n; i++ {
				c, _ := p.ring.peek(i)
				p.work = append(p.work, c)
			}
			p.ring.consume(n + 1)
			return ErrNone, true, b == '['
		}
		n++
		if n > p.cfg.WorkCap {
			return ErrLargeDTDPortionlength, true, false
		}
	}
}

// parseDoctypeHeader extracts the root element name from a scanned
// doctype header and loosely validates the optional external ID
// keyword. Non-validating: it does not resolve or fetch the external
// identifier, matching this package's well-formedness-only scope.
func parseDoctypeHeader(content []byte) (name []byte, ek ErrorKind) {
	body := bytes.TrimPrefix(content, tokDoctype)
	body = bytes.TrimLeft(body, " \t\r\n")
	name, rest := splitName(body)
	if ek := validateName(name); ek != ErrNone {
		return nil, ek
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) == 0 {
		return name, ErrNone
	}
	if bytes.HasPrefix(rest, []byte("SYSTEM")) || bytes.HasPrefix(rest, []byte("PUBLIC")) {
		return name, ErrNone
	}
	return nil, ErrDTDMissingSystemIDError
}

// tryCloseDTDSubset recognizes the "]" S? ">" that ends an internal
// subset. ready is false if the ring doesn't yet hold enough to decide.
func (p *Parser) tryCloseDTDSubset() (closed bool, ek ErrorKind, ready bool) {
	if !p.ring.startsWith([]byte("]")) {
		return false, ErrNone, true
	}
	n := 1
	for {
		b, ok := p.ring.peek(n)
		if !ok {
			return false, ErrNone, false
		}
		if isAsciiSpace(b) {
			n++
			continue
		}
		if b == '>' {
			p.ring.consume(n + 1)
			return true, ErrNone, true
		}
		return false, ErrDTDMissingPortionError, true
	}
}

// parseElementDecl validates an <!ELEMENT> declaration's content
// model: EMPTY, ANY, or a parenthesized group whose only operators are
// ',' and '|', bounded by Config.MaxOperators.
func parseElementDecl(content []byte, cfg Config) (name []byte, ek ErrorKind) {
	body := bytes.TrimPrefix(content, tokDTDElement)
	body = bytes.TrimLeft(body, " \t\r\n")
	name, rest := splitName(body)
	if ek := validateName(name); ek != ErrNone {
		return nil, ek
	}
	rest = bytes.TrimSpace(rest)
	if len(rest) == 0 {
		return nil, ErrDTDMissingPortionError
	}
	if bytes.Equal(rest, []byte("EMPTY")) || bytes.Equal(rest, []byte("ANY")) {
		return name, ErrNone
	}
	if rest[0] != '(' {
		return nil, ErrInvalidOperator
	}
	depth, operators := 0, 0
	for _, c := range rest {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, ErrInvalidOperator
			}
		case '|', ',':
			operators++
			if operators > cfg.MaxOperators {
				return nil, ErrLargeChildrenOperatorsProperty
			}
		case '?', '*', '+', ' ', '\t', '\r', '\n':
		default:
			alnum := c == '_' || c == '-' || c == '.' || c == ':' || c == '#' ||
				(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			if !alnum {
				return nil, ErrInvalidOperator
			}
		}
	}
	if depth != 0 {
		return nil, ErrInvalidOperator
	}
	return name, ErrNone
}

func classifyAttlistType(tok []byte) attlistType {
	if len(tok) > 0 && tok[0] == '(' {
		return attlistEnumeration
	}
	switch string(tok) {
	case "CDATA":
		return attlistCDATA
	case "ID":
		return attlistID
	case "IDREF":
		return attlistIDRef
	case "IDREFS":
		return attlistIDRefs
	case "ENTITY":
		return attlistEntity
	case "ENTITIES":
		return attlistEntities
	case "NMTOKEN":
		return attlistNMToken
	case "NMTOKENS":
		return attlistNMTokens
	case "NOTATION":
		return attlistNotation
	default:
		return attlistCDATA
	}
}

// readQuoted splits a leading quoted literal off b, returning its body
// and whatever trails the closing quote.
func readQuoted(b []byte) (value, rest []byte, ek ErrorKind) {
	if len(b) == 0 || (b[0] != '"' && b[0] != '\'') {
		return nil, b, ErrMissingQuote
	}
	q := b[0]
	end := bytes.IndexByte(b[1:], q)
	if end == -1 {
		return nil, b, ErrMissingQuote
	}
	return b[1 : 1+end], b[1+end+1:], ErrNone
}

// parseAttlistDecl registers zero or more attribute definitions from a
// single <!ATTLIST> declaration against p.attlists, the table
// normalizeAttrValue later consults to decide CDATA-vs-other
// collapsing. Once an external parameter-entity reference has been
// seen in this subset, the declaration is skipped outright (§2.8):
// it may depend on content from an entity this parser never fetches.
func (p *Parser) parseAttlistDecl(content []byte) ErrorKind {
	if p.sawExternalPERef {
		return ErrNone
	}
	body := bytes.TrimPrefix(content, tokDTDAttlist)
	body = bytes.TrimLeft(body, " \t\r\n")
	elemName, rest := splitName(body)
	if ek := validateName(elemName); ek != ErrNone {
		return ek
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	for len(rest) > 0 {
		attrName, r2 := splitName(rest)
		if len(attrName) == 0 {
			break
		}
		if ek := validateName(attrName); ek != ErrNone {
			return ek
		}
		r2 = bytes.TrimLeft(r2, " \t\r\n")

		var typeTok []byte
		if len(r2) > 0 && r2[0] == '(' {
			end := bytes.IndexByte(r2, ')')
			if end == -1 {
				return ErrDTDInvalidAttributeType
			}
			typeTok = r2[:end+1]
			r2 = r2[end+1:]
		} else {
			typeTok, r2 = splitName(r2)
		}
		r2 = bytes.TrimLeft(r2, " \t\r\n")
		kind := classifyAttlistType(typeTok)

		defKind := attlistNoDefault
		var fixedValue []byte
		switch {
		case bytes.HasPrefix(r2, []byte("#REQUIRED")):
			defKind = attlistRequired
			r2 = r2[len("#REQUIRED"):]
		case bytes.HasPrefix(r2, []byte("#IMPLIED")):
			defKind = attlistImplied
			r2 = r2[len("#IMPLIED"):]
		case bytes.HasPrefix(r2, []byte("#FIXED")):
			defKind = attlistFixed
			r2 = bytes.TrimLeft(r2[len("#FIXED"):], " \t\r\n")
			v, rr, ek := readQuoted(r2)
			if ek != ErrNone {
				return ek
			}
			fixedValue, r2 = v, rr
		default:
			v, rr, ek := readQuoted(r2)
			if ek != ErrNone {
				return ErrDTDInvalidDefaultDeclaration
			}
			fixedValue, r2 = v, rr
		}
		if ek := p.attlists.add(attlistRow{
			element:     elemName,
			attribute:   attrName,
			kind:        kind,
			defaultKind: defKind,
			fixedValue:  fixedValue,
		}); ek != ErrNone {
			return ek
		}
		rest = bytes.TrimLeft(r2, " \t\r\n")
	}
	return ErrNone
}

// parseEntityDecl registers a general or parameter entity declaration.
// External entities (SYSTEM/PUBLIC) are recorded but not fetched; any
// reference to one only sets the FoundExternalEntity flag. Once an
// external parameter-entity reference has been seen in this subset,
// the declaration is skipped outright (§2.8): it may depend on content
// from an entity this parser never fetches.
func (p *Parser) parseEntityDecl(content []byte) ErrorKind {
	if p.sawExternalPERef {
		return ErrNone
	}
	body := bytes.TrimPrefix(content, tokDTDEntity)
	body = bytes.TrimLeft(body, " \t\r\n")
	parameter := false
	if len(body) > 0 && body[0] == '%' {
		parameter = true
		body = bytes.TrimLeft(body[1:], " \t\r\n")
	}
	name, rest := splitName(body)
	if ek := validateName(name); ek != ErrNone {
		return ek
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) == 0 {
		return ErrDTDMissingPortionError
	}
	if bytes.HasPrefix(rest, []byte("SYSTEM")) || bytes.HasPrefix(rest, []byte("PUBLIC")) {
		p.foundExternalEntity = true
		return p.entities.add(entityRow{name: name, parameter: parameter, external: true})
	}
	value, _, ek := readQuoted(rest)
	if ek != ErrNone {
		return ek
	}
	if bytes.IndexByte(value, '%') != -1 {
		return ErrPEReferencesinInInternalSubset
	}
	return p.entities.add(entityRow{name: name, value: value, parameter: parameter})
}

// parseNotationDecl validates a <!NOTATION> declaration's name and the
// presence of its external ID keyword.
func parseNotationDecl(content []byte) (name []byte, ek ErrorKind) {
	body := bytes.TrimPrefix(content, tokDTDNotation)
	body = bytes.TrimLeft(body, " \t\r\n")
	name, rest := splitName(body)
	if ek := validateName(name); ek != ErrNone {
		return nil, ek
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if !bytes.HasPrefix(rest, []byte("SYSTEM")) && !bytes.HasPrefix(rest, []byte("PUBLIC")) {
		return nil, ErrDTDMissingSystemIDError
	}
	return name, ErrNone
}

// expandParameterEntity looks up name in the parameter-entity table and,
// if it names a declared internal entity, switches parsing into a
// second-level buffer holding its replacement text (§4.8's resolver
// entry for "Named parameter"). An undeclared or external parameter
// entity cannot be expanded — this parser never fetches external
// content — so it only marks sawExternalPERef, which in turn gates
// later <!ENTITY>/<!ATTLIST> declarations in this subset per §2.8.
func (p *Parser) expandParameterEntity(name []byte, depth int) ErrorKind {
	if depth > p.cfg.MaxEntityResolvingDepth {
		return ErrLargeResolvingTrialsProperty
	}
	row, ok := p.entities.lookupParameter(name)
	if !ok || row.external {
		p.sawExternalPERef = true
		return ErrNone
	}
	return p.parseSubsetFragment(row.value, depth+1)
}

// parseSubsetFragment re-enters a parameter entity's replacement text
// as a standalone run of internal-subset content: whitespace, nested
// parameter-entity references, comments, PIs, and the four markup
// declaration kinds. It mirrors stepDTDSubset/resumeSubsetConstruct but
// runs over an in-memory value instead of the ring, since the entire
// replacement text is already buffered once looked up.
func (p *Parser) parseSubsetFragment(value []byte, depth int) ErrorKind {
	i := 0
	for i < len(value) {
		b := value[i]
		if isAsciiSpace(b) {
			i++
			continue
		}
		if b == '%' {
			semi := bytes.IndexByte(value[i:], ';')
			if semi == -1 {
				return ErrInvalidParameterEntity
			}
			semi += i
			name := value[i+1 : semi]
			if ek := validateName(name); ek != ErrNone {
				return ErrInvalidParameterEntity
			}
			if ek := p.expandParameterEntity(name, depth); ek != ErrNone {
				return ek
			}
			i = semi + 1
			continue
		}
		if b != '<' {
			return ErrDTDMissingPortionError
		}
		rest := value[i:]
		switch {
		case bytes.HasPrefix(rest, []byte("<!--")):
			end := bytes.Index(rest, []byte("-->"))
			if end == -1 {
				return ErrDTDMissingPortionError
			}
			body := rest[4:end]
			if bytes.Contains(body, []byte("--")) {
				return ErrDoubleHyphenInComment
			}
			if ek := p.dispatchEvent(Event{Kind: EventComment, Comment: append([]byte(nil), body...)}); ek != ErrNone {
				return ek
			}
			i += end + 3

		case bytes.HasPrefix(rest, []byte("<?")):
			end := bytes.Index(rest, []byte("?>"))
			if end == -1 {
				return ErrDTDMissingPortionError
			}
			pi := splitPI(rest[2:end])
			if len(pi.target) == 0 {
				return ErrMissingPITarget
			}
			if ek := validateName(pi.target); ek != ErrNone {
				return ek
			}
			if isReservedPITarget(pi.target) {
				return ErrWrongDeclarationLocation
			}
			if ek := p.dispatchEvent(Event{Kind: EventProcessingInstruction,
				PITarget: append([]byte(nil), pi.target...), PIData: append([]byte(nil), pi.data...)}); ek != ErrNone {
				return ek
			}
			i += end + 2

		default:
			gt := bytes.IndexByte(rest, '>')
			if gt == -1 {
				return ErrDTDMissingPortionError
			}
			content := rest[1:gt]
			i += gt + 1
			switch {
			case bytes.HasPrefix(content, tokDTDElement):
				if _, dek := parseElementDecl(content, p.cfg); dek != ErrNone {
					return dek
				}
			case bytes.HasPrefix(content, tokDTDAttlist):
				if dek := p.parseAttlistDecl(content); dek != ErrNone {
					return dek
				}
			case bytes.HasPrefix(content, tokDTDEntity):
				if dek := p.parseEntityDecl(content); dek != ErrNone {
					return dek
				}
			case bytes.HasPrefix(content, tokDTDNotation):
				name, dek := parseNotationDecl(content)
				if dek != ErrNone {
					return dek
				}
				if ek := p.dispatchEvent(Event{Kind: EventNotation, Notation: append([]byte(nil), name...)}); ek != ErrNone {
					return ek
				}
			default:
				return ErrUnExpectedDirectiveType
			}
		}
	}
	return ErrNone
}
