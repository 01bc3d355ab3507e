package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitString(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.BitString(128)

	assert.Len(t, s, 128)
	for _, c := range s {
		assert.Contains(t, []rune{'0', '1'}, c)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)

	first := rng.BitString(32)
	rng.Reset()

	assert.Equal(t, first, rng.BitString(32))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestBinaryValues(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.BinaryValues(16)

	assert.Len(t, v, 16)
	for _, x := range v {
		assert.True(t, x == 0 || x == 1)
	}
}

func TestConcurrentUse(t *testing.T) {
	rng := NewRNG(1)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = rng.Intn(10) + int(rng.Uint64()%2)
				_ = rng.Float64()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Less(t, rng.Intn(3), 3)
}
