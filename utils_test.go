package dufs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chancat87/dufs"
)

func TestResolvePath_Simple(t *testing.T) {
	got, err := dufs.ResolvePath("/srv", "/foo/bar.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv", "foo", "bar.txt"), got)
}

func TestResolvePath_Root(t *testing.T) {
	got, err := dufs.ResolvePath("/srv", "/")
	require.NoError(t, err)
	assert.Equal(t, "/srv", got)
}

func TestResolvePath_PercentDecoding(t *testing.T) {
	got, err := dufs.ResolvePath("/srv", "/with%20space/na%C3%AFve.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv", "with space", "naïve.txt"), got)
}

func TestResolvePath_DotDotEscape(t *testing.T) {
	_, err := dufs.ResolvePath("/srv", "/../etc/passwd")
	assert.ErrorIs(t, err, dufs.ErrForbidden)
}

func TestResolvePath_EncodedDotDotEscape(t *testing.T) {
	_, err := dufs.ResolvePath("/srv", "/%2E%2E/etc/passwd")
	assert.ErrorIs(t, err, dufs.ErrForbidden)
}

func TestResolvePath_EncodedSlashEscape(t *testing.T) {
	_, err := dufs.ResolvePath("/srv", "/a%2F..%2F..%2Fetc%2Fpasswd")
	assert.ErrorIs(t, err, dufs.ErrForbidden)
}

func TestResolvePath_InteriorDotDotStaysInside(t *testing.T) {
	got, err := dufs.ResolvePath("/srv", "/a/../b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv", "b.txt"), got)
}

func TestResolvePath_InvalidPercent(t *testing.T) {
	_, err := dufs.ResolvePath("/srv", "/%zz")
	assert.ErrorIs(t, err, dufs.ErrBadRequest)
}

func TestResolvePath_NonUTF8(t *testing.T) {
	_, err := dufs.ResolvePath("/srv", "/%ff%fe")
	assert.ErrorIs(t, err, dufs.ErrBadRequest)
}

func TestResolvePath_PrefixSiblingRejected(t *testing.T) {
	// /srv-backup shares the string prefix /srv but is not inside it.
	_, err := dufs.ResolvePath("/srv", "/../srv-backup/x")
	assert.ErrorIs(t, err, dufs.ErrForbidden)
}

func TestContains(t *testing.T) {
	assert.True(t, dufs.Contains("/srv", "/srv"))
	assert.True(t, dufs.Contains("/srv", "/srv/a/b"))
	assert.False(t, dufs.Contains("/srv", "/srv-backup"))
	assert.False(t, dufs.Contains("/srv", "/etc"))
}

func TestBreadcrumb(t *testing.T) {
	assert.Equal(t, "files", dufs.Breadcrumb("/srv/files", "/srv/files"))
	assert.Equal(t, "files/docs/a", dufs.Breadcrumb("/srv/files", "/srv/files/docs/a"))
}

func TestBreadcrumb_RootWithoutParent(t *testing.T) {
	assert.Equal(t, "/etc", dufs.Breadcrumb("/", "/etc"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b/c", dufs.NormalizePath(filepath.Join("a", "b", "c")))
}
