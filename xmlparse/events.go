package xmlparse

// dispatchEvent installs ev as the current event and invokes the
// callback, translating a false return into the CallBackErrorOn*
// ErrorKind that matches ev.Kind (ErrInternalError for a Notation
// event, which has no CallBackErrorOn* kind). While a second-level entity parse is
// in progress (p.expandingEntity > 0) this is silent mode: the event is
// dropped entirely and the callback never sees it, per the rule that
// only the shadow path reflects a parsed entity's internal markup.
func (p *Parser) dispatchEvent(ev Event) ErrorKind {
	if p.expandingEntity > 0 {
		return ErrNone
	}
	p.event = ev
	if p.cb == nil {
		return ErrNone
	}
	if p.cb(p, ev) {
		return ErrNone
	}
	switch ev.Kind {
	case EventStartElement:
		return ErrCallBackErrorOnStartElement
	case EventEndElement:
		return ErrCallBackErrorOnEndElement
	case EventText, EventCData:
		return ErrCallBackErrorOnData
	case EventComment:
		return ErrCallBackErrorOnComment
	case EventProcessingInstruction:
		return ErrCallBackErrorOnPIDirective
	default:
		return ErrInternalError
	}
}
