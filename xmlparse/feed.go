package xmlparse

import "errors"

var errClosedParser = errors.New("xmlparse: use of closed Parser")

// Feed trans-codes and appends bytes to the ring, returning the number
// of bytes from b actually consumed. The count may be less than len(b)
// when the ring is near full; the caller should retain the remainder and
// resend it on the next call. Bytes held back internally (a short prefix
// the encoding detector is still examining, or an incomplete multi-byte
// sequence at the end of b) count as consumed. A return of -1 indicates an encoding
// error and latches ErrEncodingError/ErrUnsupportedEncodingScheme.
func (p *Parser) Feed(b []byte) (int, error) {
	if p.closed {
		return 0, errClosedParser
	}
	if p.errKind != ErrNone {
		return 0, p.Err()
	}
	consumed := 0
	if !p.bomChecked {
		for !p.bomChecked && consumed < len(b) {
			need := 4 - len(p.sniffBuf)
			if need > len(b)-consumed {
				need = len(b) - consumed
			}
			p.sniffBuf = append(p.sniffBuf, b[consumed:consumed+need]...)
			consumed += need
			enc, bomLen, decided := detectEncoding(p.sniffBuf)
			if !decided {
				continue
			}
			if enc == EncodingUnsupported {
				p.setError(ErrUnsupportedEncodingScheme)
				return -1, p.Err()
			}
			if enc == EncodingNone {
				enc = EncodingUTF8
				p.bomPresent = false
			} else {
				p.bomPresent = true
			}
			p.encoding = enc
			p.transcoder = newTranscoder(enc)
			p.bomChecked = true
			p.pendingRaw = append(p.pendingRaw, p.sniffBuf[bomLen:]...)
			p.sniffBuf = nil
		}
		if !p.bomChecked {
			return consumed, nil
		}
	}
	rest := b[consumed:]
	raw := append(p.pendingRaw, rest...)
	p.pendingRaw = nil
	pendingLen := len(raw) - len(rest)
	used, err := p.transcodeAndStore(raw)
	if err != nil {
		p.setError(ErrEncodingError)
		return -1, p.Err()
	}
	if used < pendingLen {
		p.pendingRaw = append(p.pendingRaw, raw[used:pendingLen]...)
		return consumed, nil
	}
	consumed += used - pendingLen
	if tail := len(raw) - used; tail > 0 && tail < 4 && p.ring.free >= 4 {
		// an incomplete multi-byte sequence ends b; hold it for the next Feed
		p.pendingRaw = append(p.pendingRaw, raw[used:]...)
		consumed += tail
	}
	return consumed, nil
}

// transcodeAndStore converts as much of raw to UTF-8 as fits in the
// ring's free space, writing it in bounded chunks.
func (p *Parser) transcodeAndStore(raw []byte) (int, error) {
	used := 0
	var tmp [256]byte
	for used < len(raw) {
		if p.ring.free == 0 {
			break
		}
		dstCap := len(tmp)
		if dstCap > p.ring.free {
			dstCap = p.ring.free
		}
		nSrc, nDst, err := p.transcoder.transcode(raw[used:], tmp[:dstCap])
		if err != nil {
			return used, err
		}
		if nSrc == 0 && nDst == 0 {
			break
		}
		p.ring.write(tmp[:nDst])
		used += nSrc
	}
	return used, nil
}

// applyDeclaredEncoding is invoked once the XML declaration's encoding=
// pseudo-attribute (if any) has been parsed. A BOM (or the no-BOM
// "<?xml" 3C-00/00-3C byte-order sniff) wins over a conflicting
// declaration, which is reported as ErrEncodingDiscrepancy; otherwise
// the declared encoding takes over from here on.
func (p *Parser) applyDeclaredEncoding(name []byte) {
	if len(name) == 0 {
		return
	}
	declared := encodingFromDeclName(name)
	if declared == EncodingUnsupported {
		p.setError(ErrUnsupportedEncodingScheme)
		return
	}
	if p.bomPresent {
		if declared != p.encoding {
			p.setError(ErrEncodingDiscrepancy)
		}
		return
	}
	p.declEncoding = declared
	p.encoding = declared
	p.transcoder = newTranscoder(declared)
}
