// Package bitfield provides a growable bit vector used as the chromosome store
// of a classifier.
//
// Layout:
//   - Bits are packed into uint64 words, bit i lives in word i/64 at position i%64.
//   - Every bit at or beyond Len() reads as zero. Shrinking clears the removed
//     suffix, so growing again never brings old bits back.
//   - String() renders the most significant bit (index Len()-1) first.
//
// Addressing never fails: writes (and single-bit reads) past Len() grow the
// field with zero bits. Negative offsets are programming errors and panic.
//
// A BitField is not safe for concurrent use.
package bitfield
