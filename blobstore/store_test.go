package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, bs BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := bs.Open(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, bs.Put(ctx, "antismash/shard-002.json", []byte(`{"regions":[]}`)))
	require.NoError(t, bs.Put(ctx, "antismash/shard-001.json.zst", []byte("zstd")))
	require.NoError(t, bs.Put(ctx, "other/readme.txt", []byte("x")))

	data, err := ReadAll(ctx, bs, "antismash/shard-002.json")
	require.NoError(t, err)
	assert.Equal(t, `{"regions":[]}`, string(data))

	names, err := bs.List(ctx, "antismash/")
	require.NoError(t, err)
	assert.Equal(t, []string{"antismash/shard-001.json.zst", "antismash/shard-002.json"}, names)

	all, err := bs.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Put replaces.
	require.NoError(t, bs.Put(ctx, "other/readme.txt", []byte("y")))
	data, err = ReadAll(ctx, bs, "other/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesInput(t *testing.T) {
	ctx := context.Background()
	bs := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, bs.Put(ctx, "a", buf))
	buf[0] = 'z'

	data, err := ReadAll(ctx, bs, "a")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestMemoryStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().List(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_SkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-shard.json-123"), []byte("partial"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shard.json"), []byte("{}"), 0o644))

	names, err := NewLocalStore(dir).List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"shard.json"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	names, err := NewLocalStore(filepath.Join(t.TempDir(), "nope")).List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
