package http

import (
	"log/slog"
	"net/http"
)

// WriteStatus writes code with the status reason phrase as the body.
func WriteStatus(w http.ResponseWriter, code int) {
	SuppressContentType(w)
	w.WriteHeader(code)
	if _, err := w.Write([]byte(http.StatusText(code))); err != nil {
		slog.Debug("failed to write status body", "code", code, "err", err)
	}
}

// SuppressContentType stops net/http from sniffing a Content-Type for the
// response body. No response carries the header; clients decide for
// themselves.
func SuppressContentType(w http.ResponseWriter) {
	w.Header()["Content-Type"] = nil
}
