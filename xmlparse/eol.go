package xmlparse

import "bytes"

// normalizeEOL applies the XML 1.0 end-of-line handling rule (§2.11):
// every #xD#xA and every remaining #xD is translated to a single #xA.
// It rewrites b in place, which is always safe since the output never
// grows past the input it has consumed so far.
func normalizeEOL(b []byte) []byte {
	if bytes.IndexByte(b, '\r') == -1 {
		return b
	}
	out := b[:0]
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '\r' {
			out = append(out, '\n')
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, c)
	}
	return out
}
