package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dsse/forwardpriv/internal/errors"
)

func TestLocalDiskStore_PutGet(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "file1", []byte("hello world"))
	require.NoError(t, err)

	data, err := store.Get(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)
}

func TestLocalDiskStore_Get_Missing(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocalDiskStore_Put_Overwrite(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	path1, err := store.Put(context.Background(), "file1", []byte("version 1"))
	require.NoError(t, err)
	path2, err := store.Put(context.Background(), "file1", []byte("version 2"))
	require.NoError(t, err)

	assert.Equal(t, path1, path2, "same fileID must resolve to the same path")

	data, err := store.Get(context.Background(), path2)
	require.NoError(t, err)
	assert.Equal(t, []byte("version 2"), data)
}

func TestLocalDiskStore_Delete(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "file1", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), path))

	_, err = store.Get(context.Background(), path)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocalDiskStore_Delete_AlreadyMissing(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	err = store.Delete(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
}

func TestLocalDiskStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalDiskStore(dir)
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "file1", []byte("data"))
	require.NoError(t, err)

	require.NoError(t, store.Clear(context.Background()))

	_, err = store.Get(context.Background(), path)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLocalDiskStore_Size(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "file1", []byte("12345"))
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "file2", []byte("1234567"))
	require.NoError(t, err)

	size, err := store.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)
}
