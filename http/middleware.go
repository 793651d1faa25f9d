package http

import (
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// BasicAuth creates middleware enforcing HTTP Basic authentication against
// a single user:pass credential. An empty credential disables the gate
// (public access). A denied request is answered 401 with a
// WWW-Authenticate challenge.
func BasicAuth(credential string) func(http.Handler) http.Handler {
	if credential == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	want := []byte(credential)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := decodeBasic(r.Header.Get("Authorization"))
			if !ok || subtle.ConstantTimeCompare(want, got) != 1 {
				w.Header().Set("WWW-Authenticate", "Basic")
				WriteStatus(w, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// decodeBasic extracts the decoded credential bytes from an Authorization
// header value. The value must start with exactly "Basic " and decode to
// valid UTF-8.
func decodeBasic(header string) ([]byte, bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil || !utf8.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// AccessLog logs method, URI and status once the response is complete.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		id := uuid.NewString()

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"id", id,
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
