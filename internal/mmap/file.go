package mmap

import (
	"errors"
	"io"
	"math"
	"os"
	"sync"
)

var (
	// ErrClosed is returned by accessors after Close.
	ErrClosed = errors.New("mmap: file closed")

	errTooLarge = errors.New("mmap: file too large")
)

// File is a read-only mapping of a whole file. Reads may run concurrently
// with each other and with Close.
type File struct {
	mu     sync.RWMutex
	data   []byte
	size   int
	unmap  func() error
	closed bool
}

// Map maps the file at path. An empty file yields a File without a system
// mapping behind it.
func Map(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &File{}, nil
	}
	if size > math.MaxInt {
		return nil, errTooLarge
	}

	data, unmap, err := mapFile(f, int(size))
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &File{data: data, size: int(size), unmap: unmap}, nil
}

// Len returns the file size in bytes. It stays valid after Close.
func (m *File) Len() int { return m.size }

// Bytes returns the mapped content. The slice must not be used after Close.
func (m *File) Bytes() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return m.data, nil
}

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.closed:
		return 0, ErrClosed
	case off < 0:
		return 0, errors.New("mmap: negative offset")
	case off >= int64(len(m.data)):
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Calling it again is a no-op.
func (m *File) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.data = nil
	if m.unmap == nil {
		return nil
	}
	return m.unmap()
}
