package xmlparse

// Parser is a single incremental XML 1.0 parser instance. All state
// lives in this struct and it owns every buffer it touches. The ring,
// working buffer and paths are sized once in New; Feed and Step still
// allocate, since every dispatched Event carries freshly copied slices
// and the entity and attribute-list tables grow row by row up to their
// Config bounds. Distinct instances are
// independent and may run on separate goroutines; a single instance is
// not reentrant — never call Feed or Step on the same *Parser from
// inside its own Callback.
type Parser struct {
	cfg Config
	cb  Callback

	ring *ring

	// working buffer backing the currently dispatched Event's slices.
	work []byte

	encoding     Encoding
	bomChecked   bool
	bomPresent   bool
	declEncoding Encoding
	transcoder   *transcoder
	sniffBuf     []byte // up to 4 raw bytes buffered until encoding is decided
	pendingRaw   []byte // raw bytes left over from a split multi-byte sequence

	path       *elementPath
	shadowPath *elementPath

	entities *entityTable
	attlists *attlistTable

	event Event

	errKind ErrorKind
	errLine int
	errCol  int

	reachedXMLEnd        bool
	parsingDTDInProgress bool
	standaloneDocument   bool
	foundExternalEntity  bool
	sawExternalPERef     bool
	sawRootElement       bool
	sawAnyConstruct      bool
	doctypeSeen          bool
	pendingConstruct     markupKind

	// expandingEntity is the second-level parse's silent-mode flag:
	// while it is non-zero, dispatchEvent is a no-op and only the
	// shadow path reflects the entity's internal markup. A depth
	// counter rather than a bool so a parsed entity whose value itself
	// references another parsed entity nests correctly.
	expandingEntity int

	closed bool
}

// New constructs a Parser with the given callback and Config. A zero
// Config is replaced field-by-field with DefaultConfig values.
func New(cb Callback, cfg Config) *Parser {
	cfg = cfg.normalize()
	p := &Parser{
		cfg:        cfg,
		cb:         cb,
		ring:       newRing(cfg.RingCap),
		work:       make([]byte, 0, cfg.WorkCap),
		path:       newElementPath(cfg.PathCap),
		shadowPath: newElementPath(cfg.PathCap),
		entities:   newEntityTable(cfg),
		attlists:   newAttlistTable(cfg),
	}
	return p
}

// Init resets all state and installs a new callback, matching the
// reference implementation's initialize(callback) operation.
func (p *Parser) Init(cb Callback) {
	p.cb = cb
	p.ring = newRing(p.cfg.RingCap)
	p.work = p.work[:0]
	p.path.reset()
	p.shadowPath.reset()
	p.entities = newEntityTable(p.cfg)
	p.attlists = newAttlistTable(p.cfg)
	p.event = Event{}
	p.errKind = ErrNone
	p.errLine = 0
	p.errCol = 0
	p.encoding = EncodingNone
	p.bomChecked = false
	p.bomPresent = false
	p.declEncoding = EncodingNone
	p.transcoder = nil
	p.sniffBuf = nil
	p.pendingRaw = nil
	p.reachedXMLEnd = false
	p.parsingDTDInProgress = false
	p.standaloneDocument = false
	p.foundExternalEntity = false
	p.sawExternalPERef = false
	p.sawRootElement = false
	p.sawAnyConstruct = false
	p.doctypeSeen = false
	p.pendingConstruct = markupUnknown
	p.expandingEntity = 0
	p.closed = false
}

// Close releases the instance. After Close, Feed returns an error and
// Step reports StatusError until Init resets the instance.
func (p *Parser) Close() {
	p.cb = nil
	p.closed = true
}

// FreeSpace reports the ring's free byte count, conservatively divided
// by the maximum UTF-8 sequence length while trans-coding is active so a
// caller sizing its next chunk never overestimates.
func (p *Parser) FreeSpace() int {
	free := p.ring.free
	if p.encoding != EncodingNone && p.encoding != EncodingUTF8 && p.encoding != EncodingUnsupported {
		free /= 4
	}
	return free
}

// setError latches the first error raised during this instance's
// lifetime. Once set it is never cleared except by Init.
func (p *Parser) setError(kind ErrorKind) {
	if p.errKind != ErrNone {
		return
	}
	p.errKind = kind
	p.errLine = p.ring.line
	p.errCol = p.ring.column
}

// Err reports the latched error, or nil if none has occurred.
func (p *Parser) Err() *ParseError {
	if p.errKind == ErrNone {
		return nil
	}
	return &ParseError{Kind: p.errKind, Line: p.errLine, Column: p.errCol}
}

// CurrentEncoding reports the detected input encoding.
func (p *Parser) CurrentEncoding() Encoding {
	return p.encoding
}

// CurrentPath returns the backslash-joined path of currently open
// elements. Valid only until the next Step call.
func (p *Parser) CurrentPath() []byte {
	return p.path.current()
}

// EventKind reports the kind of the most recently dispatched event.
func (p *Parser) EventKind() EventKind { return p.event.Kind }

// ElementName returns the element name for a Start/End element event.
func (p *Parser) ElementName() []byte { return p.event.ElementName }

// AttributeCount returns the number of attributes on the current Start
// element event.
func (p *Parser) AttributeCount() int { return len(p.event.Attrs) }

// AttributeName returns the i'th attribute name of the current Start
// element event, or nil if i is out of range.
func (p *Parser) AttributeName(i int) []byte {
	if i < 0 || i >= len(p.event.Attrs) {
		return nil
	}
	return p.event.Attrs[i].Name
}

// AttributeValue returns the i'th attribute's normalized value, or nil
// if i is out of range.
func (p *Parser) AttributeValue(i int) []byte {
	if i < 0 || i >= len(p.event.Attrs) {
		return nil
	}
	return p.event.Attrs[i].Value
}

// Text returns the character data of the current Text event.
func (p *Parser) Text() []byte { return p.event.Text }

// CDataText returns the raw (unescaped) body of the current CDATA event.
func (p *Parser) CDataText() []byte { return p.event.Text }

// PITarget returns the target of the current ProcessingInstruction event.
func (p *Parser) PITarget() []byte { return p.event.PITarget }

// PIData returns the data of the current ProcessingInstruction event.
func (p *Parser) PIData() []byte { return p.event.PIData }

// Comment returns the body of the current Comment event.
func (p *Parser) Comment() []byte { return p.event.Comment }

// Notation returns the body of the current Notation event (surfaced as
// a Directive-shaped event; this package does not validate its
// internals beyond well-formedness of the surrounding markup).
func (p *Parser) Notation() []byte { return p.event.Notation }
