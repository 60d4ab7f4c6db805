package xmlparse

import "bytes"

// Step advances the parser by exactly one recognized construct
// (element, text run, comment, processing instruction, CDATA section,
// or DTD declaration) and dispatches the events that construct
// produces. Most constructs produce one event or none; an empty-element
// tag produces Start then End in the same Step, and a text run or a
// parameter-entity reference can produce more than one event.
// Call it in a loop, feeding more bytes via Feed whenever it reports
// StatusContinueAddingData, until it reports StatusFinished or
// StatusError.
func (p *Parser) Step() Status {
	if p.closed {
		return StatusError
	}
	if p.errKind != ErrNone {
		return StatusError
	}
	st, ek := p.step()
	if ek != ErrNone {
		p.setError(ek)
		return StatusError
	}
	return st
}

func (p *Parser) step() (Status, ErrorKind) {
	if p.parsingDTDInProgress {
		return p.stepDTDSubset()
	}
	if p.pendingConstruct != markupUnknown {
		return p.resumeConstruct(p.pendingConstruct)
	}
	for {
		b, ok := p.ring.peek(0)
		if !ok {
			if p.reachedXMLEnd {
				return StatusFinished, ErrNone
			}
			return StatusContinueAddingData, ErrNone
		}
		if p.path.empty() && isAsciiSpace(b) {
			p.ring.consume(1)
			continue
		}
		break
	}
	b, _ := p.ring.peek(0)
	if b != '<' {
		if p.path.empty() {
			if p.reachedXMLEnd {
				return StatusError, ErrExtraContentAtTheEnd
			}
			return StatusError, ErrInvalidRootToken
		}
		ek, ready := p.scanText()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		if ek != ErrNone {
			return StatusError, ek
		}
		text := append([]byte(nil), p.work...)
		if ek := p.emitText(text); ek != ErrNone {
			return StatusError, ek
		}
		p.sawAnyConstruct = true
		return StatusContinueParsing, ErrNone
	}
	kind, ready := classifyMarkup(p.ring, 1)
	if !ready {
		return StatusContinueAddingData, ErrNone
	}
	p.ring.consume(1)
	p.pendingConstruct = kind
	return p.resumeConstruct(kind)
}

// resumeConstruct scans the body of the construct already classified
// as kind (the leading '<' has been consumed). It may be called more
// than once for the same construct if earlier attempts ran out of
// buffered input; p.pendingConstruct tracks that across Step calls.
func (p *Parser) resumeConstruct(kind markupKind) (Status, ErrorKind) {
	switch kind {
	case markupTag:
		ek, ready := p.scanTag()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		return p.finishTag(p.work)

	case markupPI:
		ek, ready := p.scanPI()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		return p.finishPI(p.work)

	case markupComment:
		ek, ready := p.scanComment()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		comment := append([]byte(nil), p.work...)
		p.sawAnyConstruct = true
		if ek := p.dispatchEvent(Event{Kind: EventComment, Comment: comment}); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone

	case markupCDATA:
		ek, ready := p.scanCDATA()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		if p.path.empty() {
			return StatusError, ErrDataWithoutStartTag
		}
		text := append([]byte(nil), p.work...)
		p.sawAnyConstruct = true
		if ek := p.dispatchEvent(Event{Kind: EventCData, Text: text}); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone

	case markupDoctype:
		ek, ready, hasSubset := p.scanDoctypeHeader()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		if p.sawRootElement || p.doctypeSeen {
			return StatusError, ErrWrongDeclarationLocation
		}
		if _, dek := parseDoctypeHeader(p.work); dek != ErrNone {
			return StatusError, dek
		}
		p.doctypeSeen = true
		p.sawAnyConstruct = true
		if hasSubset {
			p.parsingDTDInProgress = true
		}
		return StatusContinueParsing, ErrNone

	case markupDTDElement, markupDTDAttlist, markupDTDEntity, markupDTDNotation:
		// Markup declarations are only legal inside a DOCTYPE's
		// internal subset; seeing one at the top level is a
		// misplaced declaration.
		p.pendingConstruct = markupUnknown
		return StatusError, ErrWrongDeclarationLocation

	default:
		p.pendingConstruct = markupUnknown
		return StatusError, ErrUnExpectedDirectiveType
	}
}

// finishTag validates a scanned tag body and dispatches the
// corresponding Start/End element events, maintaining the element
// path.
func (p *Parser) finishTag(content []byte) (Status, ErrorKind) {
	tag, ek := p.processTag(content)
	if ek != ErrNone {
		return StatusError, ek
	}
	p.sawAnyConstruct = true

	if tag.form == tagEnd {
		if p.path.empty() || !bytes.Equal(p.path.topSegment(), tag.name) {
			return StatusError, ErrWrongNesting
		}
		name := append([]byte(nil), tag.name...)
		if ek := p.dispatchEvent(Event{Kind: EventEndElement, ElementName: name}); ek != ErrNone {
			return StatusError, ek
		}
		_ = p.path.pop(tag.name) // already validated above
		if p.path.empty() {
			p.reachedXMLEnd = true
		}
		return StatusContinueParsing, ErrNone
	}

	if p.path.empty() && p.sawRootElement {
		return StatusError, ErrExtraContentAtTheEnd
	}
	name := append([]byte(nil), tag.name...)
	attrs := make([]Attr, 0, len(tag.attrs))
	for _, a := range tag.attrs {
		val, aek, _ := p.normalizeAttrValue(a.value, tag.name, a.name)
		if aek != ErrNone {
			return StatusError, aek
		}
		attrs = append(attrs, Attr{Name: append([]byte(nil), a.name...), Value: val})
	}
	p.sawRootElement = true
	if ek := p.path.push(tag.name); ek != ErrNone {
		return StatusError, ek
	}
	if ek := p.dispatchEvent(Event{Kind: EventStartElement, ElementName: name, Attrs: attrs}); ek != ErrNone {
		return StatusError, ek
	}
	if tag.form == tagStart {
		return StatusContinueParsing, ErrNone
	}
	endEk := p.dispatchEvent(Event{Kind: EventEndElement, ElementName: name})
	_ = p.path.pop(tag.name) // pushed above with the same name
	if endEk != ErrNone {
		return StatusError, endEk
	}
	if p.path.empty() {
		p.reachedXMLEnd = true
	}
	return StatusContinueParsing, ErrNone
}

// finishPI validates a scanned processing-instruction body. A target
// of "xml" is the XML declaration, legal only as the very first
// construct in the document; any other reserved-looking target
// ("xMl", "XML", ...) is rejected outright.
func (p *Parser) finishPI(content []byte) (Status, ErrorKind) {
	pi := splitPI(content)
	if len(pi.target) == 0 {
		return StatusError, ErrMissingPITarget
	}
	if ek := validateName(pi.target); ek != ErrNone {
		return StatusError, ek
	}
	if isReservedPITarget(pi.target) {
		if !bytes.Equal(pi.target, []byte("xml")) {
			return StatusError, ErrInvalidPIName
		}
		if p.sawAnyConstruct {
			return StatusError, ErrWrongDeclarationLocation
		}
		if ek := p.processXMLDecl(pi.data); ek != ErrNone {
			return StatusError, ek
		}
		p.sawAnyConstruct = true
		return StatusContinueParsing, ErrNone
	}
	target := append([]byte(nil), pi.target...)
	data := append([]byte(nil), pi.data...)
	p.sawAnyConstruct = true
	if ek := p.dispatchEvent(Event{Kind: EventProcessingInstruction, PITarget: target, PIData: data}); ek != ErrNone {
		return StatusError, ek
	}
	return StatusContinueParsing, ErrNone
}

// stepDTDSubset drives parsing while inside a DOCTYPE's internal
// subset: markup declarations populate the entity and attribute-list
// tables; comments, PIs and parameter-entity references are the only
// other constructs allowed until the closing ']' '>'.
func (p *Parser) stepDTDSubset() (Status, ErrorKind) {
	if p.pendingConstruct != markupUnknown {
		return p.resumeSubsetConstruct(p.pendingConstruct)
	}
	for {
		b, ok := p.ring.peek(0)
		if !ok {
			return StatusContinueAddingData, ErrNone
		}
		if isAsciiSpace(b) {
			p.ring.consume(1)
			continue
		}
		break
	}
	b, _ := p.ring.peek(0)
	if b == ']' {
		closed, ek, ready := p.tryCloseDTDSubset()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		if ek != ErrNone {
			return StatusError, ek
		}
		if !closed {
			return StatusError, ErrDTDMissingPortionError
		}
		p.parsingDTDInProgress = false
		return StatusContinueParsing, ErrNone
	}
	if b == '%' {
		idx := p.ring.indexByte(';')
		if idx == -1 {
			if p.ring.ready() > p.cfg.MaxEntityNameLength+2 {
				return StatusError, ErrInvalidParameterEntity
			}
			return StatusContinueAddingData, ErrNone
		}
		name := make([]byte, 0, idx-1)
		for i := 1; i < idx; i++ {
			c, _ := p.ring.peek(i)
			name = append(name, c)
		}
		if ek := validateName(name); ek != ErrNone {
			return StatusError, ErrInvalidParameterEntity
		}
		p.ring.consume(idx + 1)
		if ek := p.expandParameterEntity(name, 0); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone
	}
	if b != '<' {
		return StatusError, ErrDTDMissingPortionError
	}
	kind, ready := classifyMarkup(p.ring, 1)
	if !ready {
		return StatusContinueAddingData, ErrNone
	}
	p.ring.consume(1)
	p.pendingConstruct = kind
	return p.resumeSubsetConstruct(kind)
}

func (p *Parser) resumeSubsetConstruct(kind markupKind) (Status, ErrorKind) {
	switch kind {
	case markupComment:
		ek, ready := p.scanComment()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		comment := append([]byte(nil), p.work...)
		if ek := p.dispatchEvent(Event{Kind: EventComment, Comment: comment}); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone

	case markupPI:
		ek, ready := p.scanPI()
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		pi := splitPI(p.work)
		if len(pi.target) == 0 {
			return StatusError, ErrMissingPITarget
		}
		if ek := validateName(pi.target); ek != ErrNone {
			return StatusError, ek
		}
		if isReservedPITarget(pi.target) {
			return StatusError, ErrWrongDeclarationLocation
		}
		target := append([]byte(nil), pi.target...)
		data := append([]byte(nil), pi.data...)
		if ek := p.dispatchEvent(Event{Kind: EventProcessingInstruction, PITarget: target, PIData: data}); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone

	case markupDTDElement:
		ek, ready := p.scanAngleBracketBody(ErrLargeDTDPortionlength)
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		if _, dek := parseElementDecl(p.work, p.cfg); dek != ErrNone {
			return StatusError, dek
		}
		return StatusContinueParsing, ErrNone

	case markupDTDAttlist:
		ek, ready := p.scanAngleBracketBody(ErrLargeDTDPortionlength)
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		if dek := p.parseAttlistDecl(p.work); dek != ErrNone {
			return StatusError, dek
		}
		return StatusContinueParsing, ErrNone

	case markupDTDEntity:
		ek, ready := p.scanAngleBracketBody(ErrLargeDTDPortionlength)
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		if dek := p.parseEntityDecl(p.work); dek != ErrNone {
			return StatusError, dek
		}
		return StatusContinueParsing, ErrNone

	case markupDTDNotation:
		ek, ready := p.scanAngleBracketBody(ErrLargeDTDPortionlength)
		if !ready {
			return StatusContinueAddingData, ErrNone
		}
		p.pendingConstruct = markupUnknown
		if ek != ErrNone {
			return StatusError, ek
		}
		name, dek := parseNotationDecl(p.work)
		if dek != ErrNone {
			return StatusError, dek
		}
		notation := append([]byte(nil), name...)
		if ek := p.dispatchEvent(Event{Kind: EventNotation, Notation: notation}); ek != ErrNone {
			return StatusError, ek
		}
		return StatusContinueParsing, ErrNone

	default:
		p.pendingConstruct = markupUnknown
		return StatusError, ErrUnExpectedDirectiveType
	}
}
