// Package persistence saves and restores classifier populations.
//
// A saved population is a 64-byte little-endian FileHeader followed by the
// body. The body holds one record per macroclassifier: numerosity, fitness,
// experience, timestamp, a flag byte and the chromosome in the BitField
// binary form. The body may be compressed with zstd or LZ4; the header
// carries a CRC32 of the uncompressed body.
//
// Match caches, the control strategy and the representation are not
// saved. Open rebuilds classifiers through a classifier.Factory, which
// assigns fresh serials and update state.
package persistence
