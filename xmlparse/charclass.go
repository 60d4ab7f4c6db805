package xmlparse

import "unicode/utf8"

// production identifies which W3C XML 1.0 grammar rule a sequence is
// being checked against.
type production int

const (
	prodChar production = iota
	prodNameStartChar
	prodNameChar
	prodPubidChar
)

type runeRange struct{ lo, hi rune }

var charRanges = []runeRange{
	{0x9, 0x9}, {0xA, 0xA}, {0xD, 0xD},
	{0x20, 0xD7FF}, {0xE000, 0xFFFD}, {0x10000, 0x10FFFF},
}

var nameStartRanges = []runeRange{
	{':', ':'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'},
	{0xC0, 0xD6}, {0xD8, 0xF6}, {0xF8, 0x2FF}, {0x370, 0x37D}, {0x37F, 0x1FFF},
	{0x200C, 0x200D}, {0x2070, 0x218F}, {0x2C00, 0x2FEF}, {0x3001, 0xD7FF},
	{0xF900, 0xFDCF}, {0xFDF0, 0xFFFD}, {0x10000, 0xEFFFF},
}

var nameExtraRanges = []runeRange{
	{'-', '-'}, {'.', '.'}, {'0', '9'}, {0xB7, 0xB7}, {0x0300, 0x036F}, {0x203F, 0x2040},
}

var pubidRanges = []runeRange{
	{0x20, 0x20}, {0xD, 0xD}, {0xA, 0xA}, {'a', 'z'}, {'A', 'Z'}, {'0', '9'},
}

const pubidExtra = "-'()+,./:=?;!*#@$_%"

func inRanges(r rune, ranges []runeRange) bool {
	for _, rg := range ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

func matchesProduction(r rune, p production) bool {
	switch p {
	case prodChar:
		return inRanges(r, charRanges)
	case prodNameStartChar:
		return inRanges(r, nameStartRanges)
	case prodNameChar:
		return inRanges(r, nameStartRanges) || inRanges(r, nameExtraRanges)
	case prodPubidChar:
		if inRanges(r, pubidRanges) {
			return true
		}
		for _, c := range pubidExtra {
			if r == c {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// classify decodes the UTF-8 sequence at the start of buf and reports
// its length (1-4) if it matches production p, or 0 if it does not
// match or buf does not hold a complete, valid UTF-8 sequence.
func classify(buf []byte, p production) int {
	if len(buf) == 0 {
		return 0
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return 0
	}
	if !matchesProduction(r, p) {
		return 0
	}
	return size
}

func isChar(buf []byte) int          { return classify(buf, prodChar) }
func isNameStartChar(buf []byte) int { return classify(buf, prodNameStartChar) }
func isNameChar(buf []byte) int      { return classify(buf, prodNameChar) }
func isPubidChar(buf []byte) int     { return classify(buf, prodPubidChar) }

// isAsciiSpace reports whether b is XML whitespace (#x20 | #x9 | #xD | #xA).
func isAsciiSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
