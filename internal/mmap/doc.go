// Package mmap maps checkpoint files read-only so they are decoded straight
// from the page cache.
//
// On Unix the mapping is created with mmap(2) and sequential read-ahead is
// requested. On Windows it uses CreateFileMapping and MapViewOfFile.
package mmap
