package dufs

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PathType classifies one listing entry. The declaration order is the sort
// order of listings: directories before files, symlink variants after their
// plain counterparts.
type PathType int

const (
	Dir PathType = iota
	SymlinkDir
	File
	SymlinkFile
)

var pathTypeNames = [...]string{"Dir", "SymlinkDir", "File", "SymlinkFile"}

func (t PathType) String() string {
	if t < 0 || int(t) >= len(pathTypeNames) {
		return fmt.Sprintf("PathType(%d)", int(t))
	}
	return pathTypeNames[t]
}

// IsDir reports whether the entry is a directory, followed through
// symlinks.
func (t PathType) IsDir() bool {
	return t == Dir || t == SymlinkDir
}

// MarshalJSON encodes the type as its name string.
func (t PathType) MarshalJSON() ([]byte, error) {
	if t < 0 || int(t) >= len(pathTypeNames) {
		return nil, fmt.Errorf("invalid path type %d", int(t))
	}
	return json.Marshal(pathTypeNames[t])
}

// UnmarshalJSON decodes a type name string.
func (t *PathType) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for i, n := range pathTypeNames {
		if n == name {
			*t = PathType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown path type %q", name)
}

// PathItem is one row of a directory listing or search result. Name is the
// slash-separated path relative to the enumeration base on every platform.
// Mtime is milliseconds since the Unix epoch and nil when unavailable;
// Size is nil for directories.
type PathItem struct {
	PathType PathType `json:"path_type"`
	Name     string   `json:"name"`
	Mtime    *int64   `json:"mtime"`
	Size     *int64   `json:"size"`
}

// Less orders items by (path type, name, mtime, size) ascending. A nil
// mtime or size sorts before any value.
func (p PathItem) Less(o PathItem) bool {
	if p.PathType != o.PathType {
		return p.PathType < o.PathType
	}
	if p.Name != o.Name {
		return p.Name < o.Name
	}
	if c := compareOptional(p.Mtime, o.Mtime); c != 0 {
		return c < 0
	}
	return compareOptional(p.Size, o.Size) < 0
}

func compareOptional(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// SortPathItems sorts a listing into its canonical order.
func SortPathItems(items []PathItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Less(items[j])
	})
}

// IndexData is the payload injected into the index page, one per listing
// response.
type IndexData struct {
	Breadcrumb string     `json:"breadcrumb"`
	Paths      []PathItem `json:"paths"`
	Readonly   bool       `json:"readonly"`
}
