package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "checkpoints/0001.lcs", []byte("first")))
	require.NoError(t, store.Put(ctx, "checkpoints/0002.lcs", []byte("second")))
	require.NoError(t, store.Put(ctx, "other", []byte("x")))

	names, err := store.List(ctx, "checkpoints/")
	require.NoError(t, err)
	assert.Equal(t, []string{"checkpoints/0001.lcs", "checkpoints/0002.lcs"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	b, err := store.Open(ctx, "checkpoints/0002.lcs")
	require.NoError(t, err)
	assert.Equal(t, int64(6), b.Size())

	buf := make([]byte, 4)
	n, err := b.ReadAt(ctx, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "cond", string(buf[:n]))

	n, err = b.ReadAt(ctx, buf, 4)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	require.NoError(t, b.Close())

	// Put replaces content.
	require.NoError(t, store.Put(ctx, "checkpoints/0001.lcs", []byte("replaced")))
	data, err = Load(ctx, store, "checkpoints/0001.lcs")
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(data))

	require.NoError(t, store.Delete(ctx, "other"))
	require.NoError(t, store.Delete(ctx, "other"))
	_, err = Load(ctx, store, "other")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "empty", nil))
	data, err = Load(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	testStore(t, NewLocalStore(dir))

	_, err := os.Stat(filepath.Join(dir, "checkpoints", "0002.lcs"))
	assert.NoError(t, err)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_ReadAllCopies(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "a", []byte("abc")))

	b, err := store.Open(ctx, "a")
	require.NoError(t, err)
	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	// Still readable after the mapping is gone.
	assert.Equal(t, "abc", string(data))

	_, err = b.(Mappable).Bytes()
	assert.Error(t, err)
}
