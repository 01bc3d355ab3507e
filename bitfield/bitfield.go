package bitfield

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"math/rand/v2"
	"strings"
)

const wordBits = 64

// BitField is a mutable, growable bit vector.
type BitField struct {
	words  []uint64
	length int
}

// New creates a zero-filled field of the given length in bits.
// New(0) is the empty field.
func New(length int) *BitField {
	if length < 0 {
		length = 0
	}
	return &BitField{
		words:  make([]uint64, wordsFor(length)),
		length: length,
	}
}

// FromString parses a bit string, most significant bit first.
// Any character other than '0' is read as a set bit.
func FromString(s string) *BitField {
	runes := []rune(s)
	b := New(len(runes))
	for i, r := range runes {
		if r != '0' {
			b.setBit(len(runes) - 1 - i)
		}
	}
	return b
}

// FromBytes packs p least significant byte first: p[0] holds bits 0..7.
func FromBytes(p []byte) *BitField {
	b := New(len(p) * 8)
	for i, v := range p {
		b.words[i/8] |= uint64(v) << (8 * uint(i%8))
	}
	return b
}

// FromWords packs ws least significant word first: ws[0] holds bits 0..63.
func FromWords(ws []uint64) *BitField {
	b := New(len(ws) * wordBits)
	copy(b.words, ws)
	return b
}

// NewRandom creates a field of the given length with pseudorandom content.
// A zero seed draws from the process-wide generator; any other seed makes the
// content reproducible.
func NewRandom(length int, seed int64) *BitField {
	b := New(length)
	next := rand.Uint64
	if seed != 0 {
		r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
		next = r.Uint64
	}
	for i := range b.words {
		b.words[i] = next()
	}
	b.clearTail()
	return b
}

// Clone returns a deep copy.
func (b *BitField) Clone() *BitField {
	c := &BitField{
		words:  make([]uint64, len(b.words)),
		length: b.length,
	}
	copy(c.words, b.words)
	return c
}

// Len returns the length in bits.
func (b *BitField) Len() int {
	return b.length
}

// SetSize grows or shrinks the field to n bits. Shrinking clears the removed
// bits before shortening.
func (b *BitField) SetSize(n int) {
	if n < 0 {
		n = 0
	}
	if n >= b.length {
		b.ensure(n)
		return
	}
	b.fill(n, b.length-n, 0)
	b.words = b.words[:wordsFor(n)]
	b.length = n
}

// Get reports whether bit i is set. Reading past Len() grows the field.
func (b *BitField) Get(i int) bool {
	b.reach(i, 1)
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// GetRange returns a copy of n bits starting at off. The receiver grows to
// cover the range.
func (b *BitField) GetRange(off, n int) *BitField {
	if n > 0 {
		b.reach(off, n)
	}
	return b.GetSubSet(off, n)
}

// Set sets bit i.
func (b *BitField) Set(i int) {
	b.reach(i, 1)
	b.setBit(i)
}

// SetTo sets bit i to v.
func (b *BitField) SetTo(i int, v bool) {
	if v {
		b.Set(i)
		return
	}
	b.Clear(i)
}

// SetRange sets n bits starting at off.
func (b *BitField) SetRange(off, n int) {
	if n <= 0 {
		return
	}
	b.reach(off, n)
	b.fill(off, n, ^uint64(0))
}

// Clear clears bit i.
func (b *BitField) Clear(i int) {
	b.reach(i, 1)
	b.words[i/wordBits] &^= 1 << uint(i%wordBits)
}

// ClearRange clears n bits starting at off.
func (b *BitField) ClearRange(off, n int) {
	if n <= 0 {
		return
	}
	b.reach(off, n)
	b.fill(off, n, 0)
}

// Invert flips bit i.
func (b *BitField) Invert(i int) {
	b.reach(i, 1)
	b.words[i/wordBits] ^= 1 << uint(i%wordBits)
}

// InvertRange flips n bits starting at off.
func (b *BitField) InvertRange(off, n int) {
	if n <= 0 {
		return
	}
	b.reach(off, n)
	for k := 0; k < n; k += wordBits {
		c := min(wordBits, n-k)
		b.putBits(off+k, c, ^b.bits(off+k, c))
	}
}

// Cardinality returns the number of set bits.
func (b *BitField) Cardinality() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether both fields have the same length and the same bits.
func (b *BitField) Equal(other *BitField) bool {
	if other == nil || b.length != other.length {
		return false
	}
	n := min(len(b.words), len(other.words))
	for i := 0; i < n; i++ {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit FNV-1a hash consistent with Equal.
func (b *BitField) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * uint(i)))
		}
		_, _ = h.Write(buf[:])
	}
	put(uint64(b.length))
	for _, w := range b.words[:wordsFor(b.length)] {
		put(w)
	}
	return h.Sum64()
}

// String renders the field most significant bit first.
func (b *BitField) String() string {
	var sb strings.Builder
	sb.Grow(b.length)
	for i := b.length - 1; i >= 0; i-- {
		if b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Words returns a copy of the backing words, least significant first.
func (b *BitField) Words() []uint64 {
	out := make([]uint64, wordsFor(b.length))
	copy(out, b.words)
	return out
}

// Bytes returns the field packed least significant byte first.
func (b *BitField) Bytes() []byte {
	out := make([]byte, (b.length+7)/8)
	for i := range out {
		out[i] = byte(b.words[i/8] >> (8 * uint(i%8)))
	}
	return out
}

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

func mask(width int) uint64 {
	if width >= wordBits {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// ensure grows the field to at least n bits. New words are zero.
func (b *BitField) ensure(n int) {
	if n <= b.length {
		return
	}
	if need := wordsFor(n); need > len(b.words) {
		b.words = append(b.words, make([]uint64, need-len(b.words))...)
	}
	b.length = n
}

// reach panics on a negative offset and grows the field to cover off+n.
func (b *BitField) reach(off, n int) {
	checkOffset(off)
	b.ensure(off + n)
}

func checkOffset(off int) {
	if off < 0 {
		panic(fmt.Sprintf("bitfield: negative offset %d", off))
	}
}

func (b *BitField) setBit(i int) {
	b.words[i/wordBits] |= 1 << uint(i%wordBits)
}

// clearTail zeroes the unused high bits of the last word.
func (b *BitField) clearTail() {
	if r := b.length % wordBits; r != 0 {
		b.words[len(b.words)-1] &= mask(r)
	}
}

// bits reads up to 64 bits at off without growing. Bits past Len() are zero.
func (b *BitField) bits(off, width int) uint64 {
	if width <= 0 {
		return 0
	}
	checkOffset(off)
	w, s := off/wordBits, uint(off%wordBits)
	var v uint64
	if w < len(b.words) {
		v = b.words[w] >> s
	}
	if s != 0 && int(s)+width > wordBits && w+1 < len(b.words) {
		v |= b.words[w+1] << (wordBits - s)
	}
	return v & mask(width)
}

// putBits writes the low width bits of v at off. The field must already
// cover off+width.
func (b *BitField) putBits(off, width int, v uint64) {
	if width <= 0 {
		return
	}
	m := mask(width)
	v &= m
	w, s := off/wordBits, uint(off%wordBits)
	b.words[w] = b.words[w]&^(m<<s) | v<<s
	if int(s)+width > wordBits {
		r := wordBits - s
		b.words[w+1] = b.words[w+1]&^(m>>r) | v>>r
	}
}

// fill writes n copies of the low bits of pattern starting at off.
func (b *BitField) fill(off, n int, pattern uint64) {
	for k := 0; k < n; k += wordBits {
		c := min(wordBits, n-k)
		b.putBits(off+k, c, pattern)
	}
}
