package persistence

import (
	"errors"
	"fmt"
	"hash/crc32"
)

// Bodies carry a CRC32 (IEEE) of their uncompressed bytes. It catches
// accidental corruption, not tampering.
var crcTable = crc32.MakeTable(crc32.IEEE)

// BodyChecksum returns the checksum Save stores in FileHeader.Checksum for
// an uncompressed body.
func BodyChecksum(raw []byte) uint32 {
	return crc32.Checksum(raw, crcTable)
}

// ChecksumMismatchError reports a body whose checksum differs from the one
// recorded in the header. It matches ErrCorruptPopulation under errors.Is.
type ChecksumMismatchError struct {
	Stored   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("body checksum 0x%08x, header records 0x%08x", e.Computed, e.Stored)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrCorruptPopulation }

func verifyBody(raw []byte, stored uint32) error {
	if computed := BodyChecksum(raw); computed != stored {
		return &ChecksumMismatchError{Stored: stored, Computed: computed}
	}
	return nil
}

// IsChecksumMismatch reports whether err is or wraps a ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
