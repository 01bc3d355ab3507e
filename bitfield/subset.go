package bitfield

// GetSubSet returns a copy of n bits starting at off. It does not grow the
// receiver; bits past Len() come back as zero.
func (b *BitField) GetSubSet(off, n int) *BitField {
	r := New(n)
	for k := 0; k < n; k += wordBits {
		c := min(wordBits, n-k)
		r.putBits(k, c, b.bits(off+k, c))
	}
	return r
}

// SetSubSet copies bits [0, n) of other into [off, off+n).
// A shorter operand is zero-padded.
func (b *BitField) SetSubSet(off, n int, other *BitField) {
	if n <= 0 {
		return
	}
	if other == b {
		other = b.GetSubSet(0, n)
	}
	b.reach(off, n)
	for k := 0; k < n; k += wordBits {
		c := min(wordBits, n-k)
		var v uint64
		if other != nil {
			v = other.bits(k, c)
		}
		b.putBits(off+k, c, v)
	}
}

// SwapSubSet exchanges bits [off, off+n) between the receiver and other.
// Both fields grow to cover the range.
func (b *BitField) SwapSubSet(off, n int, other *BitField) {
	if n <= 0 || other == nil || other == b {
		return
	}
	mine := b.GetSubSet(off, n)
	theirs := other.GetSubSet(off, n)
	b.SetSubSet(off, n, theirs)
	other.SetSubSet(off, n, mine)
}

// InsertSubSet splices other in at off. Bits at and above off move up by
// other.Len(). An offset past Len() first grows the field to off.
func (b *BitField) InsertSubSet(off int, other *BitField) {
	if other == nil || other.length == 0 {
		b.reach(off, 0)
		return
	}
	ins := other.Clone()
	b.reach(off, 0)
	tail := b.GetSubSet(off, b.length-off)
	b.ensure(b.length + ins.length)
	b.SetSubSet(off, ins.length, ins)
	b.SetSubSet(off+ins.length, tail.length, tail)
}

// DeleteSubSet removes n bits starting at off. Bits above the range move
// down and the field shrinks. Ranges past Len() are clipped.
func (b *BitField) DeleteSubSet(off, n int) {
	checkOffset(off)
	if n <= 0 || off >= b.length {
		return
	}
	n = min(n, b.length-off)
	tail := b.GetSubSet(off+n, b.length-off-n)
	b.SetSubSet(off, tail.length, tail)
	b.SetSize(b.length - n)
}
