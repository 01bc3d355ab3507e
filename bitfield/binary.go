package bitfield

import (
	"encoding/binary"
	"errors"
	"io"
)

// maxReadBits bounds the length accepted by ReadFrom (256 Mbit).
const maxReadBits = 1 << 28

// ErrTooLarge is returned by ReadFrom for an implausible encoded length.
var ErrTooLarge = errors.New("bitfield: encoded length too large")

// WriteTo writes the length followed by the backing words, little-endian.
func (b *BitField) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint64(b.length)); err != nil {
		return 0, err
	}
	n := int64(8)

	numWords := wordsFor(b.length)
	if numWords == 0 {
		return n, nil
	}

	buf := make([]byte, 8*numWords)
	for i, word := range b.words[:numWords] {
		binary.LittleEndian.PutUint64(buf[8*i:], word)
	}
	m, err := w.Write(buf)
	return n + int64(m), err
}

// ReadFrom replaces the receiver with a field read from r.
func (b *BitField) ReadFrom(r io.Reader) (int64, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return 0, err
	}
	if length > maxReadBits {
		return 8, ErrTooLarge
	}
	n := int64(8)

	numWords := wordsFor(int(length))
	buf := make([]byte, 8*numWords)
	m, err := io.ReadFull(r, buf)
	n += int64(m)
	if err != nil {
		return n, err
	}

	words := make([]uint64, numWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}
	b.words = words
	b.length = int(length)
	b.clearTail()
	return n, nil
}
