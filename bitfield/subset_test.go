package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSubSet(t *testing.T) {
	b := FromString("10110010")

	assert.Equal(t, "1100", b.GetSubSet(2, 4).String())

	// Reading past the end pads with zeros and leaves the source alone.
	assert.Equal(t, "000010", b.GetSubSet(6, 6).String())
	assert.Equal(t, 8, b.Len())
}

func TestSetSubSet(t *testing.T) {
	a := New(8)
	a.SetSubSet(2, 3, FromString("101"))
	assert.Equal(t, "00010100", a.String())

	b := FromString("11111111")
	b.SetSubSet(0, 4, FromString("1"))
	assert.Equal(t, "11110001", b.String())

	c := FromString("01")
	c.SetSubSet(100, 2, FromString("11"))
	assert.Equal(t, 102, c.Len())
	assert.True(t, c.Get(100))
	assert.True(t, c.Get(101))
}

func TestSetSubSet_Self(t *testing.T) {
	a := FromString("00001011")
	a.SetSubSet(2, 4, a)
	assert.Equal(t, "00101111", a.String())
}

func TestSwapSubSet(t *testing.T) {
	a := FromString("11110000")
	b := FromString("00001111")

	a.SwapSubSet(2, 4, b)

	assert.Equal(t, "11001100", a.String())
	assert.Equal(t, "00110011", b.String())
}

func TestSwapSubSet_GrowsShorter(t *testing.T) {
	a := FromString("1111")
	b := FromString("11111111")

	a.SwapSubSet(2, 6, b)

	assert.Equal(t, 8, a.Len())
	assert.Equal(t, "11111111", a.String())
	assert.Equal(t, "00001111", b.String())
}

func TestInsertSubSet(t *testing.T) {
	a := FromString("1111")
	a.InsertSubSet(2, FromString("00"))
	assert.Equal(t, "110011", a.String())

	b := FromString("1")
	b.InsertSubSet(3, FromString("1"))
	assert.Equal(t, "1001", b.String())

	c := FromString("10")
	c.InsertSubSet(0, FromWords([]uint64{0, 1}))
	assert.Equal(t, 130, c.Len())
	assert.True(t, c.Get(64))
	assert.True(t, c.Get(129))
	assert.False(t, c.Get(128))
}

func TestDeleteSubSet(t *testing.T) {
	a := FromString("110011")
	a.DeleteSubSet(2, 2)
	assert.Equal(t, "1111", a.String())

	// The removed suffix is cleared, regrowing shows zeros.
	a.SetSize(6)
	assert.Equal(t, "001111", a.String())

	b := FromString("1111")
	b.DeleteSubSet(2, 10)
	assert.Equal(t, "11", b.String())

	c := FromString("1010")
	c.DeleteSubSet(4, 1)
	c.DeleteSubSet(1, 0)
	assert.Equal(t, "1010", c.String())
}

func TestInsertDelete_Inverse(t *testing.T) {
	orig := NewRandom(150, 99)
	b := orig.Clone()

	b.InsertSubSet(37, NewRandom(70, 5))
	b.DeleteSubSet(37, 70)

	assert.True(t, orig.Equal(b))
}
