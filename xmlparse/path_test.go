package xmlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementPathPushPop(t *testing.T) {
	p := newElementPath(64)
	require.Equal(t, ErrNone, p.push([]byte("a")))
	require.Equal(t, ErrNone, p.push([]byte("b")))
	assert.Equal(t, "a\\b", string(p.current()))

	require.Equal(t, ErrNone, p.pop([]byte("b")))
	assert.Equal(t, "a", string(p.current()))

	require.Equal(t, ErrNone, p.pop([]byte("a")))
	assert.True(t, p.empty())
}

func TestElementPathWrongNesting(t *testing.T) {
	p := newElementPath(64)
	require.Equal(t, ErrNone, p.push([]byte("a")))
	assert.Equal(t, ErrWrongNesting, p.pop([]byte("b")))
}

func TestElementPathCapacity(t *testing.T) {
	p := newElementPath(3)
	assert.Equal(t, ErrNone, p.push([]byte("ab")))
	assert.Equal(t, ErrFailedToAddElementToPath, p.push([]byte("cd")))
}
