package xmlparse

// scanText copies character data up to (not including) the next '<'
// into p.work. The '<' itself is left in the ring for the main
// dispatch loop to consume next.
func (p *Parser) scanText() (ek ErrorKind, ready bool) {
	idx := p.ring.indexByte('<')
	if idx == -1 {
		if p.ring.ready() > p.cfg.WorkCap {
			return ErrLargeDatalength, true
		}
		return ErrNone, false
	}
	if idx > p.cfg.WorkCap {
		return ErrLargeDatalength, true
	}
	p.work = p.work[:0]
	for i := 0; i < idx; i++ {
		b, _ := p.ring.peek(i)
		p.work = append(p.work, b)
	}
	p.ring.consume(idx)
	return ErrNone, true
}
