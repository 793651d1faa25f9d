package dufs

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ResolvePath translates a percent-encoded request URI path into an
// absolute filesystem path under root. It returns ErrBadRequest when the
// path cannot be decoded to UTF-8 and ErrForbidden when the joined path is
// not lexically contained in root. The target does not need to exist, so
// the check never touches the filesystem and never follows symlinks.
func ResolvePath(root, uriPath string) (string, error) {
	rel := strings.TrimPrefix(uriPath, "/")

	decoded, err := url.PathUnescape(rel)
	if err != nil {
		return "", ErrBadRequest
	}
	if !utf8.ValidString(decoded) {
		return "", ErrBadRequest
	}

	joined := filepath.Join(root, filepath.FromSlash(decoded))
	if !Contains(root, joined) {
		return "", ErrForbidden
	}
	return joined, nil
}

// Contains reports whether p is root itself or lexically below it. Both
// paths must already be absolute and cleaned.
func Contains(root, p string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

// NormalizePath renders a platform path with forward slashes, the form all
// entry names and breadcrumbs are reported in.
func NormalizePath(p string) string {
	return filepath.ToSlash(p)
}

// Breadcrumb renders path for the index page header: relative to the
// parent of root, or to the filesystem root when root has no parent.
func Breadcrumb(root, path string) string {
	parent := filepath.Dir(root)
	if parent == root {
		return NormalizePath(path)
	}
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return NormalizePath(path)
	}
	return NormalizePath(rel)
}
