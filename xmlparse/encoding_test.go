package xmlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEncoding(t *testing.T) {
	cases := []struct {
		name   string
		prefix []byte
		enc    Encoding
		bomLen int
		ready  bool
	}{
		{"utf8-bom", []byte{0xEF, 0xBB, 0xBF, '<'}, EncodingUTF8, 3, true},
		{"utf16le-bom", []byte{0xFF, 0xFE, '<', 0}, EncodingUTF16LE, 2, true},
		{"utf16be-bom", []byte{0xFE, 0xFF, 0, '<'}, EncodingUTF16BE, 2, true},
		{"no-bom-ascii", []byte("<?xm"), EncodingNone, 0, true},
		{"sniff-utf16le-no-bom", []byte{'<', 0x00, 'x', 0x00}, EncodingUTF16LE, 0, true},
		{"sniff-utf16be-no-bom", []byte{0x00, '<', 0x00, 'x'}, EncodingUTF16BE, 0, true},
		{"ucs4be", []byte{0x00, 0x00, 0xFE, 0xFF}, EncodingUnsupported, 4, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc, bomLen, ready := detectEncoding(c.prefix)
			assert.Equal(t, c.ready, ready)
			assert.Equal(t, c.enc, enc)
			assert.Equal(t, c.bomLen, bomLen)
		})
	}
}

func TestDetectEncodingNeedsMoreBytes(t *testing.T) {
	_, _, ready := detectEncoding([]byte{0xFF})
	assert.False(t, ready)
}

func TestEncodingFromDeclName(t *testing.T) {
	assert.Equal(t, EncodingUTF8, encodingFromDeclName([]byte("UTF-8")))
	assert.Equal(t, EncodingISO88591, encodingFromDeclName([]byte("ISO-8859-1")))
	assert.Equal(t, EncodingUnsupported, encodingFromDeclName([]byte("shift-jis")))
}
