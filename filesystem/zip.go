package filesystem

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chancat87/dufs"
)

// ZipDir writes a ZIP archive of the subtree rooted at dir to w. Entry
// names are slash-separated paths relative to dir; every entry is
// compressed with DEFLATE. Only regular files are recorded: directories
// and symlinks are omitted, and entries whose metadata cannot be read are
// skipped. A failure opening or copying a file aborts the archive.
func ZipDir(ctx context.Context, w io.Writer, dir string) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		info, lerr := os.Lstat(p)
		if lerr != nil {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, rerr := filepath.Rel(dir, p)
		if rerr != nil {
			return nil
		}

		entry, werr := zw.CreateHeader(&zip.FileHeader{
			Name:     dufs.NormalizePath(rel),
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		})
		if werr != nil {
			return fmt.Errorf("create entry %s: %w", rel, werr)
		}

		f, oerr := os.Open(p)
		if oerr != nil {
			return fmt.Errorf("open %s: %w", rel, oerr)
		}
		_, cerr := Copy(entry, f)
		if closeErr := f.Close(); closeErr != nil && cerr == nil {
			cerr = closeErr
		}
		if cerr != nil {
			return fmt.Errorf("write entry %s: %w", rel, cerr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return zw.Close()
}
