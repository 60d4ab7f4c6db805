package xmlparse

import "bytes"

// scanDelimited copies the bytes between an already-matched prefix
// (not yet consumed) and the first occurrence of suffix into p.work,
// consuming through suffix. ready is false while suffix hasn't
// appeared yet and the construct could still be completed by more
// input.
func (p *Parser) scanDelimited(prefix, suffix []byte, overflowErr ErrorKind) (ek ErrorKind, ready bool) {
	idx := p.ring.index(suffix)
	if idx == -1 {
		if p.ring.ready() > p.cfg.WorkCap+len(prefix)+len(suffix) {
			return overflowErr, true
		}
		return ErrNone, false
	}
	contentLen := idx - len(prefix)
	if contentLen > p.cfg.WorkCap {
		return overflowErr, true
	}
	p.ring.consume(len(prefix))
	p.work = p.work[:0]
	for i := 0; i < contentLen; i++ {
		b, _ := p.ring.peek(i)
		p.work = append(p.work, b)
	}
	p.ring.consume(contentLen + len(suffix))
	return ErrNone, true
}

func (p *Parser) scanPI() (ErrorKind, bool) {
	return p.scanDelimited([]byte("?"), []byte("?>"), ErrLargeDirectiveProperty)
}

func (p *Parser) scanComment() (ErrorKind, bool) {
	ek, ready := p.scanDelimited(tokCommentStart, []byte("-->"), ErrLargeDirectiveProperty)
	if ek != ErrNone || !ready {
		return ek, ready
	}
	if bytes.Contains(p.work, []byte("--")) {
		return ErrDoubleHyphenInComment, true
	}
	return ErrNone, true
}

func (p *Parser) scanCDATA() (ErrorKind, bool) {
	return p.scanDelimited(tokCDATAStart, []byte("]]>"), ErrLargeDatalength)
}

// piBody is the target/data split of a processing instruction's
// content, as produced by splitPI.
type piBody struct {
	target []byte
	data   []byte
}

func splitPI(content []byte) piBody {
	name, rest := splitName(content)
	rest = bytes.TrimLeft(rest, " \t\r\n")
	return piBody{target: name, data: rest}
}

// isReservedPITarget reports whether name is a case-insensitive match
// for "xml", the only form of PI target reserved by the XML
// recommendation.
func isReservedPITarget(name []byte) bool {
	if len(name) != 3 {
		return false
	}
	lower := func(b byte) byte {
		if b >= 'A' && b <= 'Z' {
			return b + ('a' - 'A')
		}
		return b
	}
	return lower(name[0]) == 'x' && lower(name[1]) == 'm' && lower(name[2]) == 'l'
}

func validVersionNum(v []byte) bool {
	if len(v) < 3 || v[0] != '1' || v[1] != '.' {
		return false
	}
	for _, c := range v[2:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// processXMLDecl validates and applies the pseudo-attributes of an XML
// declaration: version (required, first), encoding (optional),
// standalone (optional), in that fixed order.
func (p *Parser) processXMLDecl(data []byte) ErrorKind {
	attrs, ek := parseAttrs(data, p.cfg)
	if ek != ErrNone {
		return ek
	}
	if len(attrs) == 0 || !bytes.Equal(attrs[0].name, []byte("version")) {
		return ErrInvalidVersionOrder
	}
	if !validVersionNum(attrs[0].value) {
		return ErrInvalidVersionOrder
	}
	const (
		stageVersion = iota
		stageEncoding
		stageStandalone
	)
	stage := stageVersion
	for _, a := range attrs[1:] {
		switch {
		case bytes.Equal(a.name, []byte("encoding")):
			if stage != stageVersion {
				return ErrInvalidSDeclOrder
			}
			stage = stageEncoding
			p.applyDeclaredEncoding(a.value)
		case bytes.Equal(a.name, []byte("standalone")):
			if stage == stageStandalone {
				return ErrInvalidSDeclOrder
			}
			stage = stageStandalone
			if bytes.Equal(a.value, []byte("yes")) {
				p.standaloneDocument = true
			} else if !bytes.Equal(a.value, []byte("no")) {
				return ErrWrongAttributeFormat
			}
		default:
			return ErrWrongAttributeFormat
		}
	}
	return ErrNone
}
