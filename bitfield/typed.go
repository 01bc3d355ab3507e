package bitfield

import "math"

// Typed windows read and write width bits at an offset as a Go value.
// The width is clamped to [0, native width]. Writes keep the low width bits of
// the value; reads zero-extend, so a window narrower than the type never
// yields a negative number.

func clampWidth(width, native int) int {
	if width < 0 {
		return 0
	}
	if width > native {
		return native
	}
	return width
}

func (b *BitField) getAt(off, width, native int) uint64 {
	return b.bits(off, clampWidth(width, native))
}

func (b *BitField) setAt(off, width, native int, v uint64) {
	width = clampWidth(width, native)
	if width == 0 {
		return
	}
	b.reach(off, width)
	b.putBits(off, width, v)
}

// GetByteAt reads up to 8 bits at off.
func (b *BitField) GetByteAt(off, width int) uint8 {
	return uint8(b.getAt(off, width, 8))
}

// SetByteAt writes the low width bits of v at off.
func (b *BitField) SetByteAt(off, width int, v uint8) {
	b.setAt(off, width, 8, uint64(v))
}

// GetCharAt reads up to 16 bits at off as an unsigned code unit.
func (b *BitField) GetCharAt(off, width int) uint16 {
	return uint16(b.getAt(off, width, 16))
}

// SetCharAt writes the low width bits of v at off.
func (b *BitField) SetCharAt(off, width int, v uint16) {
	b.setAt(off, width, 16, uint64(v))
}

// GetShortAt reads up to 16 bits at off.
func (b *BitField) GetShortAt(off, width int) int16 {
	return int16(uint16(b.getAt(off, width, 16)))
}

// SetShortAt writes the low width bits of v at off.
func (b *BitField) SetShortAt(off, width int, v int16) {
	b.setAt(off, width, 16, uint64(uint16(v)))
}

// GetIntAt reads up to 32 bits at off.
func (b *BitField) GetIntAt(off, width int) int32 {
	return int32(uint32(b.getAt(off, width, 32)))
}

// SetIntAt writes the low width bits of v at off.
func (b *BitField) SetIntAt(off, width int, v int32) {
	b.setAt(off, width, 32, uint64(uint32(v)))
}

// GetLongAt reads up to 64 bits at off.
func (b *BitField) GetLongAt(off, width int) int64 {
	return int64(b.getAt(off, width, 64))
}

// SetLongAt writes the low width bits of v at off.
func (b *BitField) SetLongAt(off, width int, v int64) {
	b.setAt(off, width, 64, uint64(v))
}

// GetFloatAt reinterprets up to 32 bits at off as an IEEE 754 single.
func (b *BitField) GetFloatAt(off, width int) float32 {
	return math.Float32frombits(uint32(b.getAt(off, width, 32)))
}

// SetFloatAt writes the low width bits of the bit pattern of v at off.
func (b *BitField) SetFloatAt(off, width int, v float32) {
	b.setAt(off, width, 32, uint64(math.Float32bits(v)))
}

// GetDoubleAt reinterprets up to 64 bits at off as an IEEE 754 double.
func (b *BitField) GetDoubleAt(off, width int) float64 {
	return math.Float64frombits(b.getAt(off, width, 64))
}

// SetDoubleAt writes the low width bits of the bit pattern of v at off.
func (b *BitField) SetDoubleAt(off, width int, v float64) {
	b.setAt(off, width, 64, math.Float64bits(v))
}
