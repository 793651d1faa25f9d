package filesystem_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chancat87/dufs/filesystem"
)

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = content
	}
	return out
}

func TestZipDir_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("A"))
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), []byte("B"))

	var buf bytes.Buffer
	require.NoError(t, filesystem.ZipDir(context.Background(), &buf, dir))

	files := readArchive(t, buf.Bytes())
	assert.Equal(t, map[string][]byte{
		"a.txt":     []byte("A"),
		"sub/b.txt": []byte("B"),
	}, files)
}

func TestZipDir_DeflateOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("some content to deflate"))

	var buf bytes.Buffer
	require.NoError(t, filesystem.ZipDir(context.Background(), &buf, dir))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, uint16(zip.Deflate), zr.File[0].Method)
}

func TestZipDir_NoDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty", "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "f.txt"), []byte("x"))

	var buf bytes.Buffer
	require.NoError(t, filesystem.ZipDir(context.Background(), &buf, dir))

	files := readArchive(t, buf.Bytes())
	assert.Equal(t, []string{"f.txt"}, keys(files))
}

func TestZipDir_SkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "real.txt"), []byte("x"))
	if err := os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var buf bytes.Buffer
	require.NoError(t, filesystem.ZipDir(context.Background(), &buf, dir))

	files := readArchive(t, buf.Bytes())
	assert.Equal(t, []string{"real.txt"}, keys(files))
}

func TestZipDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := filesystem.ZipDir(ctx, io.Discard, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
