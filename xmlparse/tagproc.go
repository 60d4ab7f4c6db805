package xmlparse

import "bytes"

// rawAttr is an unresolved, unnormalized attribute as lifted straight
// out of tag content by parseAttrs.
type rawAttr struct {
	name  []byte
	value []byte
}

// tagForm is the shape scanTag's content turned out to have once the
// leading '/' and trailing '/' were accounted for.
type tagForm int

const (
	tagStart tagForm = iota
	tagEnd
	tagEmpty
)

// splitTagForm strips the end-tag '/' prefix or empty-element-tag '/'
// suffix from content and reports which form remains.
func splitTagForm(content []byte) (body []byte, form tagForm) {
	if len(content) > 0 && content[0] == '/' {
		return content[1:], tagEnd
	}
	if len(content) > 0 && content[len(content)-1] == '/' {
		return content[:len(content)-1], tagEmpty
	}
	return content, tagStart
}

// splitName extracts the name token at the front of body, returning it
// and whatever (possibly whitespace-led) content follows.
func splitName(body []byte) (name, rest []byte) {
	i := 0
	for i < len(body) && !isAsciiSpace(body[i]) {
		i++
	}
	return body[:i], body[i:]
}

// validateName checks name against the NameStartChar/NameChar
// productions, returning the matching ErrorKind on the first violation.
func validateName(name []byte) ErrorKind {
	n := isNameStartChar(name)
	if n == 0 {
		return ErrInvalidStartNameCharacter
	}
	i := n
	for i < len(name) {
		step := isNameChar(name[i:])
		if step == 0 {
			return ErrInvalidNameCharacter
		}
		i += step
	}
	return ErrNone
}

// parseAttrs walks the portion of a start/empty tag following the
// element name, implementing the seven-state attribute machine: a
// whitespace run before each attribute (mandatory for every attribute
// after the first), NAME [ws] '=' [ws]
// QUOTE value QUOTE, repeated until only trailing whitespace remains.
func parseAttrs(rest []byte, cfg Config) ([]rawAttr, ErrorKind) {
	var attrs []rawAttr
	pos, n := 0, len(rest)
	first := true
	for {
		wsStart := pos
		for pos < n && isAsciiSpace(rest[pos]) {
			pos++
		}
		if pos >= n {
			break
		}
		if !first && pos == wsStart {
			return nil, ErrMissingWhiteSpaceCharacter
		}
		first = false

		nameStart := pos
		for pos < n && !isAsciiSpace(rest[pos]) && rest[pos] != '=' && rest[pos] != '"' && rest[pos] != '\'' {
			pos++
		}
		name := rest[nameStart:pos]
		if len(name) == 0 {
			return nil, ErrMissingAttributeValue
		}
		if ek := validateName(name); ek != ErrNone {
			return nil, ek
		}
		if len(name) > cfg.MaxAttributeNameLength {
			return nil, ErrLargeAttributeNameProperty
		}

		for pos < n && isAsciiSpace(rest[pos]) {
			pos++
		}
		if pos >= n || rest[pos] != '=' {
			return nil, ErrMissingEqual
		}
		pos++
		for pos < n && isAsciiSpace(rest[pos]) {
			pos++
		}
		if pos >= n {
			return nil, ErrMissingQuote
		}
		quote := rest[pos]
		if quote != '"' && quote != '\'' {
			return nil, ErrMissingQuote
		}
		pos++
		valStart := pos
		for pos < n && rest[pos] != quote {
			if rest[pos] == '<' {
				return nil, ErrInvalidAttributeValue
			}
			pos++
		}
		if pos >= n {
			return nil, ErrMissingQuote
		}
		value := rest[valStart:pos]
		pos++

		for _, a := range attrs {
			if bytes.Equal(a.name, name) {
				return nil, ErrRepeatedAttributeName
			}
		}
		if len(attrs) >= cfg.MaxAttrs {
			return nil, ErrLargeNumberOfAttributes
		}
		attrs = append(attrs, rawAttr{name: name, value: value})
	}
	return attrs, ErrNone
}

// processedTag is the fully validated, not-yet-normalized result of
// splitting and parsing one scanTag result.
type processedTag struct {
	form  tagForm
	name  []byte
	attrs []rawAttr
}

// processTag validates content (as produced by scanTag, i.e. without
// the enclosing '<' '>') against the tag grammar and, for start and
// empty-element tags, its attribute list.
func (p *Parser) processTag(content []byte) (processedTag, ErrorKind) {
	body, form := splitTagForm(content)
	if form == tagEnd {
		trimmed := bytes.TrimRight(body, " \t\r\n")
		if i := bytes.IndexAny(trimmed, " \t\r\n"); i != -1 {
			return processedTag{}, ErrAttributeInEndTag
		}
		if ek := validateName(trimmed); ek != ErrNone {
			return processedTag{}, ek
		}
		if len(trimmed) > p.cfg.MaxElementNameLength {
			return processedTag{}, ErrLargeElementNameProperty
		}
		return processedTag{form: form, name: trimmed}, ErrNone
	}

	name, rest := splitName(body)
	if ek := validateName(name); ek != ErrNone {
		return processedTag{}, ek
	}
	if len(name) > p.cfg.MaxElementNameLength {
		return processedTag{}, ErrLargeElementNameProperty
	}
	attrs, ek := parseAttrs(rest, p.cfg)
	if ek != ErrNone {
		return processedTag{}, ek
	}
	return processedTag{form: form, name: name, attrs: attrs}, ErrNone
}
