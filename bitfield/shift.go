package bitfield

// Shift, creep and rotate operate on the sub-field [off, off+n). "Left" moves
// bits towards higher indices, which is leftwards in String(). The shift is
// taken modulo n; n <= 0 or a shift that reduces to zero is a no-op.

func normalizeShift(n, s int) int {
	if n <= 0 {
		return 0
	}
	s %= n
	if s < 0 {
		s += n
	}
	return s
}

// CreepLeft moves the sub-field up by s. The lowest s bits keep their old
// values.
func (b *BitField) CreepLeft(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.creepLeft(off, n, s)
}

// CreepRight moves the sub-field down by s. The highest s bits keep their
// old values.
func (b *BitField) CreepRight(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.creepRight(off, n, s)
}

// ShiftLeft moves the sub-field up by s and zero-fills the vacated bits.
func (b *BitField) ShiftLeft(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.creepLeft(off, n, s)
	b.fill(off, s, 0)
}

// ShiftRight moves the sub-field down by s and zero-fills the vacated bits.
func (b *BitField) ShiftRight(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.creepRight(off, n, s)
	b.fill(off+n-s, s, 0)
}

// RotateLeft moves the sub-field up by s; bits pushed past the top re-enter
// at the bottom.
func (b *BitField) RotateLeft(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.reach(off, n)
	carry := b.GetSubSet(off+n-s, s)
	b.creepLeft(off, n, s)
	b.SetSubSet(off, s, carry)
}

// RotateRight moves the sub-field down by s; bits pushed past the bottom
// re-enter at the top.
func (b *BitField) RotateRight(off, n, s int) {
	if s = normalizeShift(n, s); s == 0 {
		return
	}
	b.reach(off, n)
	carry := b.GetSubSet(off, s)
	b.creepRight(off, n, s)
	b.SetSubSet(off+n-s, s, carry)
}

func (b *BitField) creepLeft(off, n, s int) {
	b.reach(off, n)
	b.SetSubSet(off+s, n-s, b.GetSubSet(off, n-s))
}

func (b *BitField) creepRight(off, n, s int) {
	b.reach(off, n)
	b.SetSubSet(off, n-s, b.GetSubSet(off+s, n-s))
}
