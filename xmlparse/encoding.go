package xmlparse

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding is the set of input encodings the engine recognizes. Anything
// else is reported as EncodingUnsupported and the parser latches
// ErrUnsupportedEncodingScheme.
type Encoding int

const (
	EncodingNone Encoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingASCII
	EncodingISO88591
	EncodingUnsupported
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingASCII:
		return "ASCII"
	case EncodingISO88591:
		return "ISO-8859-1"
	case EncodingUnsupported:
		return "Unsupported"
	default:
		return "None"
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	ucs4BE     = []byte{0x00, 0x00, 0xFE, 0xFF}
	ucs4LE     = []byte{0xFF, 0xFE, 0x00, 0x00}
	ucs4_2143  = []byte{0x00, 0x00, 0xFF, 0xFE}
	ucs4_3412  = []byte{0xFE, 0xFF, 0x00, 0x00}
)

var errEncoding = errors.New("xmlparse: invalid byte sequence for declared encoding")
var errUnsupportedEncoding = errors.New("xmlparse: unsupported encoding scheme")

// detectEncoding classifies the leading byte prefix of a freshly-started
// document. decided is false when more bytes are needed before a
// definite classification can be made (the leading byte is shared by a
// BOM pattern that hasn't been fully observed yet).
func detectEncoding(prefix []byte) (enc Encoding, bomLen int, decided bool) {
	if len(prefix) == 0 {
		return EncodingNone, 0, false
	}
	b0 := prefix[0]
	ambiguous := b0 == 0x00 || b0 == 0xFF || b0 == 0xFE || b0 == 0xEF
	if ambiguous && len(prefix) < 4 {
		return EncodingNone, 0, false
	}
	if len(prefix) >= 4 {
		switch {
		case bytes.Equal(prefix[:4], ucs4BE), bytes.Equal(prefix[:4], ucs4LE),
			bytes.Equal(prefix[:4], ucs4_2143), bytes.Equal(prefix[:4], ucs4_3412):
			return EncodingUnsupported, 4, true
		}
	}
	if len(prefix) >= 3 && bytes.Equal(prefix[:3], bomUTF8) {
		return EncodingUTF8, 3, true
	}
	if len(prefix) >= 2 {
		switch {
		case prefix[0] == 0xFF && prefix[1] == 0xFE:
			return EncodingUTF16LE, 2, true
		case prefix[0] == 0xFE && prefix[1] == 0xFF:
			return EncodingUTF16BE, 2, true
		case prefix[0] == 0x3C && prefix[1] == 0x00:
			return EncodingUTF16LE, 0, true
		case prefix[0] == 0x00 && prefix[1] == 0x3C:
			return EncodingUTF16BE, 0, true
		}
	}
	// No BOM recognized yet; leave to the "<?xml ... encoding=" sniff or
	// default to UTF-8.
	return EncodingNone, 0, true
}

// encodingFromDeclName maps an XML declaration's encoding= pseudo
// attribute value to an Encoding, case-insensitively over the names this
// package supports.
func encodingFromDeclName(name []byte) Encoding {
	switch lowerASCII(string(name)) {
	case "utf-8", "utf8":
		return EncodingUTF8
	case "utf-16le":
		return EncodingUTF16LE
	case "utf-16be":
		return EncodingUTF16BE
	case "utf-16":
		return EncodingUTF16LE
	case "us-ascii", "ascii":
		return EncodingASCII
	case "iso-8859-1", "latin1":
		return EncodingISO88591
	default:
		return EncodingUnsupported
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// transcoder converts bytes from a detected Encoding into UTF-8,
// buffer-in buffer-out, preserving whatever trailing partial sequence
// didn't fit so the caller can resubmit it alongside the next chunk.
type transcoder struct {
	enc Encoding
	xf  transform.Transformer // only set for UTF-16/ISO-8859-1
}

func newTranscoder(enc Encoding) *transcoder {
	t := &transcoder{enc: enc}
	switch enc {
	case EncodingUTF16LE:
		t.xf = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingUTF16BE:
		t.xf = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingISO88591:
		t.xf = charmap.ISO8859_1.NewDecoder()
	}
	return t
}

// transcode writes as much decoded UTF-8 as fits into dst, returning the
// number of src bytes consumed and dst bytes written.
func (t *transcoder) transcode(src, dst []byte) (nSrc, nDst int, err error) {
	switch t.enc {
	case EncodingNone, EncodingUTF8:
		return transcodeUTF8(src, dst)
	case EncodingASCII:
		return transcodeASCII(src, dst)
	case EncodingUTF16LE, EncodingUTF16BE, EncodingISO88591:
		nDst, nSrc, xerr := t.xf.Transform(dst, src, false)
		if xerr == transform.ErrShortSrc || xerr == transform.ErrShortDst {
			xerr = nil
		}
		if xerr != nil {
			return nSrc, nDst, errEncoding
		}
		return nSrc, nDst, nil
	default:
		return 0, 0, errUnsupportedEncoding
	}
}

// transcodeUTF8 validates and passes through well-formed UTF-8,
// deferring a sequence that's merely incomplete (straddling this feed's
// end) rather than treating it as invalid.
func transcodeUTF8(src, dst []byte) (nSrc, nDst int, err error) {
	for nSrc < len(src) {
		if nDst >= len(dst) {
			break
		}
		b := src[nSrc]
		if b < utf8.RuneSelf {
			dst[nDst] = b
			nSrc++
			nDst++
			continue
		}
		chunk := src[nSrc:]
		r, size := utf8.DecodeRune(chunk)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(chunk) && len(chunk) < utf8.UTFMax {
				break // incomplete multi-byte sequence, wait for more input
			}
			return nSrc, nDst, errEncoding
		}
		if nDst+size > len(dst) {
			break
		}
		copy(dst[nDst:], chunk[:size])
		nSrc += size
		nDst += size
	}
	return nSrc, nDst, nil
}

// transcodeASCII rejects any byte above 0x7F per the SUPPORT_ASCII_ONLY
// contract described in the reference implementation.
func transcodeASCII(src, dst []byte) (nSrc, nDst int, err error) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	for nSrc < n {
		b := src[nSrc]
		if b >= utf8.RuneSelf {
			return nSrc, nDst, errEncoding
		}
		dst[nDst] = b
		nSrc++
		nDst++
	}
	return nSrc, nDst, nil
}
