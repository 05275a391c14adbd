package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolReusesReturnedBuffer(t *testing.T) {
	p := NewPool(2)
	buf := p.Get(16)
	require.Len(t, buf, 16)
	buf[0] = 42
	p.Put(buf)

	reused := p.Get(16)
	assert.Len(t, reused, 16)
	assert.Equal(t, byte(0), reused[0], "buffer returned from the pool must be zeroed")
}

func TestPoolDropsBeyondCapacity(t *testing.T) {
	p := NewPool(1)
	p.Put(make([]byte, 8))
	p.Put(make([]byte, 8))

	// Only one buffer of size 8 is retained; the second Get allocates fresh,
	// which should not panic or error.
	assert.NotPanics(t, func() {
		p.Get(8)
		p.Get(8)
	})
}

func TestPoolGetWithoutPriorPutAllocates(t *testing.T) {
	p := NewPool(4)
	buf := p.Get(32)
	assert.Len(t, buf, 32)
}
