package dufs

import "errors"

var (
	// ErrBadRequest is returned for malformed percent-encoding or input
	// that does not decode to valid UTF-8
	ErrBadRequest = errors.New("bad request")
	// ErrForbidden is returned when a resolved path escapes the serving
	// root or an edit is attempted on a readonly server
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the request target does not exist
	ErrNotFound = errors.New("not found")
)
