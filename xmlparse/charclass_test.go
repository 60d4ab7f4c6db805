package xmlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNameStartChar(t *testing.T) {
	assert.Equal(t, 1, isNameStartChar([]byte("a")))
	assert.Equal(t, 1, isNameStartChar([]byte("_")))
	assert.Equal(t, 1, isNameStartChar([]byte(":")))
	assert.Equal(t, 0, isNameStartChar([]byte("1")))
	assert.Equal(t, 0, isNameStartChar([]byte("-")))
}

func TestIsNameChar(t *testing.T) {
	assert.Equal(t, 1, isNameChar([]byte("1")))
	assert.Equal(t, 1, isNameChar([]byte("-")))
	assert.Equal(t, 1, isNameChar([]byte(".")))
	assert.Equal(t, 0, isNameChar([]byte("!")))
}

func TestIsChar(t *testing.T) {
	assert.Equal(t, 1, isChar([]byte("\t")))
	assert.Equal(t, 1, isChar([]byte("\n")))
	assert.Equal(t, 0, isChar([]byte{0x01}))
	assert.Equal(t, 1, isChar([]byte("a")))
}

func TestIsAsciiSpace(t *testing.T) {
	assert.True(t, isAsciiSpace(' '))
	assert.True(t, isAsciiSpace('\t'))
	assert.True(t, isAsciiSpace('\r'))
	assert.True(t, isAsciiSpace('\n'))
	assert.False(t, isAsciiSpace('a'))
}
