// Package filesystem implements the filesystem-access layer behind the
// HTTP handlers: one-level directory listings, recursive search, streaming
// reads and writes, recursive deletion, and ZIP assembly. Every path passed
// in is absolute and already confined to the serving root by the resolver;
// symlinks are served as they are found, without further checks.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chancat87/dufs"
)

// BufSize is the chunk size for streaming copies and the bound on
// in-flight archive bytes.
const BufSize = 16 * 1024

// List enumerates the direct children of dir. Entries whose metadata
// cannot be read are silently skipped. When exists is false an empty
// listing is produced instead of an error, which backs the empty index
// page for missing trailing-slash URIs. The result is in canonical order.
func List(ctx context.Context, dir string, exists bool) ([]dufs.PathItem, error) {
	items := []dufs.PathItem{}
	if !exists {
		return items, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	for _, entry := range entries {
		item, err := newPathItem(filepath.Join(dir, entry.Name()), dir)
		if err != nil {
			slog.Debug("skipping entry", "name", entry.Name(), "err", err)
			continue
		}
		items = append(items, item)
	}

	dufs.SortPathItems(items)
	return items, nil
}

// Search walks the subtree under dir and collects entries whose basename
// contains query, compared case-insensitively. Unreadable entries are
// skipped. The result is in canonical order.
func Search(ctx context.Context, dir, query string) ([]dufs.PathItem, error) {
	q := strings.ToLower(query)
	items := []dufs.PathItem{}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if p == dir {
			return nil
		}
		if !strings.Contains(strings.ToLower(d.Name()), q) {
			return nil
		}
		if _, lerr := os.Lstat(p); lerr != nil {
			return nil
		}
		item, ierr := newPathItem(p, dir)
		if ierr != nil {
			slog.Debug("skipping entry", "path", p, "err", ierr)
			return nil
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", dir, err)
	}

	dufs.SortPathItems(items)
	return items, nil
}

// Save creates or truncates path and streams body into it, creating any
// missing ancestor directories first. It returns dufs.ErrForbidden when
// the parent exists but is not a directory. The write respects context
// cancellation.
func Save(ctx context.Context, path string, body io.Reader) error {
	parent := filepath.Dir(path)
	if meta, err := os.Stat(parent); err != nil {
		if mkErr := os.MkdirAll(parent, 0o755); mkErr != nil {
			return fmt.Errorf("create parent dirs: %w", mkErr)
		}
	} else if !meta.IsDir() {
		return dufs.ErrForbidden
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, copyErr := Copy(f, &ctxReader{ctx: ctx, r: body})
	if closeErr := f.Close(); closeErr != nil && copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		return fmt.Errorf("write body: %w", copyErr)
	}
	return nil
}

// Delete removes path. Directories are removed recursively, anything else
// with a single unlink. A missing target surfaces as the stat error.
func Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	meta, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if meta.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove dir: %w", err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// Copy streams src to dst in BufSize chunks. The wrapper hides WriterTo
// and ReaderFrom so the fixed-size buffer is actually used.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, BufSize)
	return io.CopyBuffer(dst, struct{ io.Reader }{src}, buf)
}

// newPathItem builds the listing row for path relative to base. Both the
// followed and the symlink metadata must be readable; broken symlinks fail
// here and end up skipped by the callers.
func newPathItem(path, base string) (dufs.PathItem, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return dufs.PathItem{}, err
	}

	meta, err := os.Stat(path)
	if err != nil {
		return dufs.PathItem{}, err
	}
	link, err := os.Lstat(path)
	if err != nil {
		return dufs.PathItem{}, err
	}

	isSymlink := link.Mode()&fs.ModeSymlink != 0
	var pathType dufs.PathType
	switch {
	case isSymlink && meta.IsDir():
		pathType = dufs.SymlinkDir
	case meta.IsDir():
		pathType = dufs.Dir
	case isSymlink:
		pathType = dufs.SymlinkFile
	default:
		pathType = dufs.File
	}

	var mtime, size *int64
	if ms := meta.ModTime().UnixMilli(); ms >= 0 {
		mtime = &ms
	}
	if !pathType.IsDir() {
		n := meta.Size()
		size = &n
	}

	return dufs.PathItem{
		PathType: pathType,
		Name:     dufs.NormalizePath(rel),
		Mtime:    mtime,
		Size:     size,
	}, nil
}

// ctxReader fails reads once the context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
