package xmlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingWriteConsumeWraparound(t *testing.T) {
	r := newRing(4)
	assert.Equal(t, 4, r.free)

	n := r.write([]byte("ab"))
	assert.Equal(t, 2, n)
	r.consume(2)

	n = r.write([]byte("cdef"))
	require.Equal(t, 4, n)
	assert.Equal(t, 0, r.free)

	b, ok := r.peek(0)
	require.True(t, ok)
	assert.Equal(t, byte('c'), b)

	_, ok = r.peek(4)
	assert.False(t, ok)

	assert.True(t, r.startsWith([]byte("cd")))
	assert.False(t, r.startsWith([]byte("ce")))
	assert.Equal(t, 2, r.indexByte('e'))
	assert.Equal(t, -1, r.indexByte('z'))
	assert.Equal(t, 1, r.index([]byte("de")))
}

func TestRingLineColumn(t *testing.T) {
	r := newRing(16)
	r.write([]byte("ab\ncd"))
	assert.Equal(t, 1, r.line)
	assert.Equal(t, 1, r.column)
	r.consume(3) // 'a','b','\n'
	assert.Equal(t, 2, r.line)
	assert.Equal(t, 1, r.column)
	r.consume(2)
	assert.Equal(t, 2, r.line)
	assert.Equal(t, 3, r.column)
}

func TestRingWriteTruncatesAtCapacity(t *testing.T) {
	r := newRing(2)
	n := r.write([]byte("abcd"))
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, r.free)
}
