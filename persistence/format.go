package persistence

import "errors"

const (
	// MagicNumber identifies population files (ASCII: "LCS0").
	MagicNumber = 0x4C435330
	// Version is the current file format version.
	Version = 0x00010000

	// HeaderSize is the encoded size of FileHeader.
	HeaderSize = 64

	// maxBodyBytes bounds the body size accepted by Open.
	maxBodyBytes = 1 << 30

	// lz4MaxRatio is the largest expansion an LZ4 block can encode.
	lz4MaxRatio = 255
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression")
	ErrCorruptPopulation  = errors.New("corrupt population")
)

// Record flags.
const (
	flagCanSubsume uint8 = 1 << iota
)

// FileHeader is the 64-byte header at the start of every population file.
type FileHeader struct {
	Magic           uint32 // 0x4C435330 ("LCS0")
	Version         uint32 // File format version
	Compression     Compression
	Flags           uint8
	Padding         [2]byte
	MacroCount      uint64 // Number of macroclassifiers
	TotalNumerosity uint64 // Sum of all numerosities
	RawLength       uint64 // Body length before compression
	StoredLength    uint64 // Body length as stored
	Checksum        uint32 // CRC32 of the uncompressed body
	Reserved        [16]byte
}
