package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name string
		op   func(a, b *BitField)
		want string
	}{
		{"and", (*BitField).And, "1000"},
		{"or", (*BitField).Or, "1110"},
		{"xor", (*BitField).Xor, "0110"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromString("1100")
			tt.op(a, FromString("1010"))
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestLogic_ShortOperandIsZeroPadded(t *testing.T) {
	a := FromString("11111111")
	a.And(FromString("11"))
	assert.Equal(t, "00000011", a.String())

	b := FromString("00000000")
	b.Or(FromString("11"))
	assert.Equal(t, "00000011", b.String())

	c := FromString("10101010")
	c.Xor(nil)
	assert.Equal(t, "10101010", c.String())
}

func TestLogic_LongOperandIsTruncated(t *testing.T) {
	a := FromString("0000")
	a.Or(FromString("111111"))

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, "1111", a.String())
}

func TestLogicAt(t *testing.T) {
	a := New(8)
	a.OrAt(4, 4, FromString("1011"))
	assert.Equal(t, "10110000", a.String())

	a.AndAt(4, 4, FromString("0110"))
	assert.Equal(t, "00100000", a.String())

	a.XorAt(0, 8, FromString("11111111"))
	assert.Equal(t, "11011111", a.String())
}

func TestLogicAt_GrowsAcrossWords(t *testing.T) {
	a := New(2)
	a.OrAt(62, 70, FromWords([]uint64{^uint64(0), ^uint64(0)}))

	assert.Equal(t, 132, a.Len())
	assert.Equal(t, 70, a.Cardinality())
	assert.False(t, a.Get(61))
	assert.True(t, a.Get(62))
	assert.True(t, a.Get(131))
}

func TestLogic_SelfOperand(t *testing.T) {
	a := FromString("1011")
	a.Xor(a)
	assert.Equal(t, "0000", a.String())

	b := FromString("1011")
	b.Or(b)
	assert.Equal(t, "1011", b.String())
}
