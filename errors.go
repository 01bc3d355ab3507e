package lcsgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNilRepresentation is returned by New without a representation.
	ErrNilRepresentation = errors.New("representation must not be nil")

	// ErrNoBlobStore is returned by checkpoint operations on a System
	// configured without a blob store.
	ErrNoBlobStore = errors.New("no blob store configured")

	// ErrNoCheckpoint is returned by OpenLatest before the first Commit.
	ErrNoCheckpoint = errors.New("no committed checkpoint")
)

// ErrChromosomeSize indicates a loaded chromosome whose length differs from
// the representation's chromosome size.
type ErrChromosomeSize struct {
	Name     string
	Entry    int
	Expected int
	Actual   int
	cause    error
}

func (e *ErrChromosomeSize) Error() string {
	return fmt.Sprintf("%s: entry %d: chromosome size mismatch: expected %d, got %d", e.Name, e.Entry, e.Expected, e.Actual)
}

func (e *ErrChromosomeSize) Unwrap() error { return e.cause }
