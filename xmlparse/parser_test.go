package xmlparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type recEvent struct {
	kind  EventKind
	name  string
	text  string
	path  string
	attrs []Attr
}

func drive(t *testing.T, input string, cfg Config) ([]recEvent, *ParseError) {
	t.Helper()
	var events []recEvent
	cb := func(p *Parser, ev Event) bool {
		e := recEvent{kind: ev.Kind, path: string(append([]byte(nil), p.CurrentPath()...))}
		switch ev.Kind {
		case EventStartElement, EventEndElement:
			e.name = string(ev.ElementName)
			for _, a := range ev.Attrs {
				e.attrs = append(e.attrs, Attr{
					Name:  append([]byte(nil), a.Name...),
					Value: append([]byte(nil), a.Value...),
				})
			}
		case EventText, EventCData:
			e.text = string(ev.Text)
		case EventComment:
			e.text = string(ev.Comment)
		case EventProcessingInstruction:
			e.name = string(ev.PITarget)
			e.text = string(ev.PIData)
		case EventNotation:
			e.name = string(ev.Notation)
		}
		events = append(events, e)
		return true
	}

	p := New(cb, cfg)
	data := []byte(input)
	off := 0
	for iterations := 0; iterations < 10000; iterations++ {
		if off < len(data) {
			n, err := p.Feed(data[off:])
			require.NoError(t, err)
			off += n
		}
		st := p.Step()
		switch st {
		case StatusError:
			return events, p.Err()
		case StatusFinished:
			return events, nil
		case StatusContinueAddingData:
			if off >= len(data) {
				return events, nil
			}
		}
	}
	t.Fatal("drive: exceeded iteration budget, parser likely stuck")
	return nil, nil
}

func TestSimpleEmptyElement(t *testing.T) {
	events, perr := drive(t, `<?xml version="1.0"?><r/>`, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
	require.Equal(t, EventStartElement, events[0].kind)
	require.Equal(t, "r", events[0].name)
	require.Equal(t, EventEndElement, events[1].kind)
	require.Equal(t, "r", events[1].name)
}

func TestAttributesAndEntityInText(t *testing.T) {
	events, perr := drive(t, `<a x="1" y='2'>hi&amp;bye</a>`, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 3)

	start := events[0]
	require.Equal(t, EventStartElement, start.kind)
	require.Equal(t, "a", start.name)
	want := []Attr{{Name: []byte("x"), Value: []byte("1")}, {Name: []byte("y"), Value: []byte("2")}}
	if diff := cmp.Diff(want, start.attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, EventText, events[1].kind)
	require.Equal(t, "hi&bye", events[1].text)

	require.Equal(t, EventEndElement, events[2].kind)
	require.Equal(t, "a", events[2].name)
}

func TestNestingPathSequencing(t *testing.T) {
	events, perr := drive(t, `<a><b/></a>`, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 4)
	require.Equal(t, "a", events[0].path)
	require.Equal(t, "a\\b", events[1].path)
	require.Equal(t, "a\\b", events[2].path)
	require.Equal(t, "a", events[3].path)
}

func TestWrongNestingReportsLineAndColumn(t *testing.T) {
	_, perr := drive(t, "<a></b>", DefaultConfig())
	require.NotNil(t, perr)
	require.Equal(t, ErrWrongNesting, perr.Kind)
	require.Equal(t, 1, perr.Line)
	require.Equal(t, 8, perr.Column)
}

func TestCommentAndPI(t *testing.T) {
	events, perr := drive(t, `<?xml version="1.0"?><!--hi--><a><?target data?></a>`, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 4)
	require.Equal(t, EventComment, events[0].kind)
	require.Equal(t, "hi", events[0].text)
	require.Equal(t, EventStartElement, events[1].kind)
	require.Equal(t, EventProcessingInstruction, events[2].kind)
	require.Equal(t, "target", events[2].name)
	require.Equal(t, "data", events[2].text)
	require.Equal(t, EventEndElement, events[3].kind)
}

func TestCDataSection(t *testing.T) {
	events, perr := drive(t, `<a><![CDATA[<not a tag>]]></a>`, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 3)
	require.Equal(t, EventCData, events[1].kind)
	require.Equal(t, "<not a tag>", events[1].text)
}

func TestDoctypeWithInternalEntityExpandsToText(t *testing.T) {
	doc := `<?xml version="1.0"?>` +
		`<!DOCTYPE root [<!ENTITY greeting "hello">]>` +
		`<root>&greeting;</root>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 3)
	require.Equal(t, EventText, events[1].kind)
	require.Equal(t, "hello", events[1].text)
}

func TestDoctypeEntityExpandingToMarkup(t *testing.T) {
	doc := `<?xml version="1.0"?>` +
		`<!DOCTYPE root [<!ENTITY child "<b>x</b>">]>` +
		`<root>&child;</root>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	var kinds []EventKind
	for _, e := range events {
		kinds = append(kinds, e.kind)
	}
	// The entity's internal <b>x</b> markup is parsed only to validate
	// that it closes cleanly; it is never surfaced to the callback.
	require.Equal(t, []EventKind{EventStartElement, EventEndElement}, kinds)
}

func TestUndeclaredEntitySkipsSilently(t *testing.T) {
	doc := `<root>&undeclared;</root>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
}

func TestUTF16LEBom(t *testing.T) {
	utf16le := func(s string) []byte {
		out := []byte{0xFF, 0xFE}
		for _, r := range s {
			out = append(out, byte(r), 0)
		}
		return out
	}
	events, perr := drive(t, string(utf16le(`<root/>`)), DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
	require.Equal(t, "root", events[0].name)
}

func TestMissingAttributeEqualsSign(t *testing.T) {
	_, perr := drive(t, `<a x"1"></a>`, DefaultConfig())
	require.NotNil(t, perr)
	require.Equal(t, ErrMissingEqual, perr.Kind)
}

func TestDuplicateAttributeName(t *testing.T) {
	_, perr := drive(t, `<a x="1" x="2"/>`, DefaultConfig())
	require.NotNil(t, perr)
	require.Equal(t, ErrRepeatedAttributeName, perr.Kind)
}

func TestAttributeInEndTag(t *testing.T) {
	_, perr := drive(t, `<a></a foo="1">`, DefaultConfig())
	require.NotNil(t, perr)
	require.Equal(t, ErrAttributeInEndTag, perr.Kind)
}

func TestExtraContentAtTheEnd(t *testing.T) {
	_, perr := drive(t, `<a/><b/>`, DefaultConfig())
	require.NotNil(t, perr)
	require.Equal(t, ErrExtraContentAtTheEnd, perr.Kind)
}

func TestNonCDATAAttributeCollapsesWhitespace(t *testing.T) {
	doc := `<!DOCTYPE a [<!ATTLIST a id NMTOKEN #IMPLIED>]>` +
		`<a id="  foo   bar  "/>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
	require.Equal(t, "foo bar", string(events[0].attrs[0].Value))
}

func TestParameterEntityExpandsAttlistDeclaration(t *testing.T) {
	doc := `<!DOCTYPE a [<!ENTITY % attrs "<!ATTLIST a id NMTOKEN #IMPLIED>">%attrs;]>` +
		`<a id="  foo   bar  "/>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
	require.Equal(t, "foo bar", string(events[0].attrs[0].Value))
}

func TestExternalParameterEntitySkipsLaterDeclarations(t *testing.T) {
	doc := `<!DOCTYPE a [<!ENTITY % ext SYSTEM "http://example.com/x.dtd">%ext;` +
		`<!ATTLIST a id NMTOKEN #IMPLIED>]>` +
		`<a id="  foo   bar  "/>`
	events, perr := drive(t, doc, DefaultConfig())
	require.Nil(t, perr)
	require.Len(t, events, 2)
	// The ATTLIST declaration after the external PE reference was
	// skipped, so "id" is never registered as NMTOKEN and its value is
	// left uncollapsed.
	require.Equal(t, "  foo   bar  ", string(events[0].attrs[0].Value))
}

func TestFeedReportsClosedParser(t *testing.T) {
	p := New(nil, DefaultConfig())
	p.Close()
	_, err := p.Feed([]byte("<a/>"))
	require.ErrorIs(t, err, errClosedParser)
}

func TestInitResetsState(t *testing.T) {
	p := New(nil, DefaultConfig())
	_, _ = p.Feed([]byte("<a>"))
	p.Step()
	require.False(t, p.path.empty())
	p.Init(nil)
	require.True(t, p.path.empty())
	require.Equal(t, ErrNone, p.errKind)
}
