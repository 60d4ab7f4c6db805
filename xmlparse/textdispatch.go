package xmlparse

import (
	"bytes"
	"unicode/utf8"
)

// emitText walks raw character data, resolving references as it goes.
// Plain runs and character/predefined references accumulate into a
// single Text event. A reference to an internal general entity whose
// replacement text contains markup is expanded and re-entered as its
// own nested fragment (via parseContentFragment) rather than inlined
// as literal characters, so a document that hides an element inside an
// entity is still seen as that element. External and unresolved
// entities are left unexpanded and only set foundExternalEntity; this
// package never fetches external content.
func (p *Parser) emitText(raw []byte) ErrorKind {
	v := normalizeEOL(append([]byte(nil), raw...))
	var plain []byte
	flush := func() ErrorKind {
		if len(plain) == 0 {
			return ErrNone
		}
		ek := p.dispatchEvent(Event{Kind: EventText, Text: plain})
		plain = nil
		return ek
	}
	i := 0
	for i < len(v) {
		if v[i] != '&' {
			plain = append(plain, v[i])
			i++
			continue
		}
		semi := bytes.IndexByte(v[i:], ';')
		if semi == -1 {
			return ErrMissingSemicolon
		}
		semi += i
		body := v[i+1 : semi]
		if len(body) == 0 {
			return ErrInvalidReference
		}
		if body[0] == '#' {
			r, ek := decodeCharRef(body[1:])
			if ek != ErrNone {
				return ek
			}
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], r)
			plain = append(plain, tmp[:n]...)
			i = semi + 1
			continue
		}
		switch string(body) {
		case "lt":
			plain = append(plain, '<')
		case "gt":
			plain = append(plain, '>')
		case "amp":
			plain = append(plain, '&')
		case "apos":
			plain = append(plain, '\'')
		case "quot":
			plain = append(plain, '"')
		default:
			row, ok := p.entities.lookup(body)
			if !ok || row.external {
				p.foundExternalEntity = true
				i = semi + 1
				continue
			}
			name := string(body)
			if bytes.IndexByte(row.value, '<') == -1 {
				expanded, ek := p.expandEntitiesDepth(row.value, false, 1, map[string]bool{name: true}, &p.foundExternalEntity)
				if ek != ErrNone {
					return ek
				}
				plain = append(plain, expanded...)
			} else {
				if ek := flush(); ek != ErrNone {
					return ek
				}
				if ek := p.parseContentFragment(row.value, name); ek != ErrNone {
					return ek
				}
			}
		}
		i = semi + 1
	}
	return flush()
}

// parseContentFragment re-enters a parsed entity's replacement text as
// a standalone run of markup and character data, pushing/popping
// shadowPath exactly like the main engine does for real elements. This
// is silent mode: every event the fragment would otherwise dispatch
// (Start, End, Text, Comment, CData, PI) is suppressed for its
// duration, since an entity's internal markup is only ever observable
// through the shadow path, never through the Callback. The fragment
// must close every element it opens; a dangling open or close at the
// end of the value is ErrParsedEntityError.
func (p *Parser) parseContentFragment(value []byte, entityName string) ErrorKind {
	p.expandingEntity++
	defer func() { p.expandingEntity-- }()
	depth := 0
	i := 0
	for i < len(value) {
		if value[i] != '<' {
			j := i
			for j < len(value) && value[j] != '<' {
				j++
			}
			if ek := p.emitText(value[i:j]); ek != ErrNone {
				return ek
			}
			i = j
			continue
		}
		if bytes.HasPrefix(value[i:], []byte("<!--")) {
			end := bytes.Index(value[i:], []byte("-->"))
			if end == -1 {
				return ErrParsedEntityError
			}
			body := value[i+4 : i+end]
			if bytes.Contains(body, []byte("--")) {
				return ErrDoubleHyphenInComment
			}
			if ek := p.dispatchEvent(Event{Kind: EventComment, Comment: body}); ek != ErrNone {
				return ek
			}
			i += end + 3
			continue
		}
		if bytes.HasPrefix(value[i:], []byte("<![CDATA[")) {
			end := bytes.Index(value[i:], []byte("]]>"))
			if end == -1 {
				return ErrParsedEntityError
			}
			body := value[i+9 : i+end]
			if ek := p.dispatchEvent(Event{Kind: EventCData, Text: body}); ek != ErrNone {
				return ek
			}
			i += end + 3
			continue
		}
		if i+1 < len(value) && value[i+1] == '?' {
			end := bytes.Index(value[i:], []byte("?>"))
			if end == -1 {
				return ErrParsedEntityError
			}
			pi := splitPI(value[i+2 : i+end])
			if ek := p.dispatchEvent(Event{Kind: EventProcessingInstruction, PITarget: pi.target, PIData: pi.data}); ek != ErrNone {
				return ek
			}
			i += end + 2
			continue
		}
		gt := bytes.IndexByte(value[i:], '>')
		if gt == -1 {
			return ErrParsedEntityError
		}
		content := value[i+1 : i+gt]
		tag, ek := p.processTag(content)
		if ek != ErrNone {
			return ek
		}
		switch tag.form {
		case tagEnd:
			if ek := p.shadowPath.pop(tag.name); ek != ErrNone {
				return ErrParsedEntityError
			}
			depth--
			if ek := p.dispatchEvent(Event{Kind: EventEndElement, ElementName: tag.name}); ek != ErrNone {
				return ek
			}
		default:
			attrs := make([]Attr, 0, len(tag.attrs))
			for _, a := range tag.attrs {
				val, ek, _ := p.normalizeAttrValue(a.value, tag.name, a.name)
				if ek != ErrNone {
					return ek
				}
				attrs = append(attrs, Attr{Name: a.name, Value: val})
			}
			if ek := p.dispatchEvent(Event{Kind: EventStartElement, ElementName: tag.name, Attrs: attrs}); ek != ErrNone {
				return ek
			}
			if tag.form == tagStart {
				if ek := p.shadowPath.push(tag.name); ek != ErrNone {
					return ek
				}
				depth++
			} else {
				if ek := p.dispatchEvent(Event{Kind: EventEndElement, ElementName: tag.name}); ek != ErrNone {
					return ek
				}
			}
		}
		i += gt + 1
	}
	if depth != 0 {
		return ErrParsedEntityError
	}
	return ErrNone
}
