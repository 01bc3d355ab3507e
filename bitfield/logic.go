package bitfield

// And replaces the receiver with receiver AND other over [0, Len()).
func (b *BitField) And(other *BitField) {
	b.AndAt(0, b.length, other)
}

// Or replaces the receiver with receiver OR other over [0, Len()).
func (b *BitField) Or(other *BitField) {
	b.OrAt(0, b.length, other)
}

// Xor replaces the receiver with receiver XOR other over [0, Len()).
func (b *BitField) Xor(other *BitField) {
	b.XorAt(0, b.length, other)
}

// AndAt combines bits [off, off+n) with bits [0, n) of other.
// A shorter operand is zero-padded, a longer one truncated.
func (b *BitField) AndAt(off, n int, other *BitField) {
	b.combine(off, n, other, func(x, y uint64) uint64 { return x & y })
}

// OrAt combines bits [off, off+n) with bits [0, n) of other.
func (b *BitField) OrAt(off, n int, other *BitField) {
	b.combine(off, n, other, func(x, y uint64) uint64 { return x | y })
}

// XorAt combines bits [off, off+n) with bits [0, n) of other.
func (b *BitField) XorAt(off, n int, other *BitField) {
	b.combine(off, n, other, func(x, y uint64) uint64 { return x ^ y })
}

func (b *BitField) combine(off, n int, other *BitField, op func(x, y uint64) uint64) {
	if n <= 0 {
		return
	}
	if other == b {
		other = b.Clone()
	}
	b.reach(off, n)
	for k := 0; k < n; k += wordBits {
		c := min(wordBits, n-k)
		var y uint64
		if other != nil {
			y = other.bits(k, c)
		}
		b.putBits(off+k, c, op(b.bits(off+k, c), y))
	}
}
