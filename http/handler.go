package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/chancat87/dufs"
	"github.com/chancat87/dufs/filesystem"
)

// CORSConfig configures the optional CORS middleware.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// HandlerConfig is the immutable serving configuration shared by all
// concurrent requests.
type HandlerConfig struct {
	// Root is the canonicalized absolute directory every request is
	// confined to.
	Root     string
	Readonly bool
	// Auth is a single user:pass credential; empty disables the gate.
	Auth string
	CORS CORSConfig
}

// Handler serves the configured directory over HTTP.
type Handler struct {
	config HandlerConfig
}

// NewHandler creates a Handler with the given configuration.
func NewHandler(config *HandlerConfig) *Handler {
	return &Handler{config: *config}
}

// Router returns the configured http.Handler. GET serves files, listings,
// search results and ZIP streams; PUT uploads; DELETE removes. Every other
// method is answered 404.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(AccessLog)
	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}
	r.Use(BasicAuth(h.config.Auth))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteStatus(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteStatus(w, http.StatusNotFound)
	})

	r.Get("/*", h.handleGet)
	r.Put("/*", h.handlePut)
	r.Delete("/*", h.handleDelete)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	path, err := dufs.ResolvePath(h.config.Root, r.URL.EscapedPath())
	if err != nil {
		h.fail(w, err)
		return
	}

	meta, statErr := os.Stat(path)
	if statErr != nil {
		// A missing trailing-slash target still renders a directory
		// page, just an empty one.
		if strings.HasSuffix(r.URL.Path, "/") {
			items, _ := filesystem.List(r.Context(), path, false)
			h.sendIndex(w, path, items)
			return
		}
		WriteStatus(w, http.StatusNotFound)
		return
	}

	if !meta.IsDir() {
		h.sendFile(w, r, path)
		return
	}

	switch {
	case r.URL.RawQuery == "zip":
		h.sendZip(w, r, path)
	case strings.HasPrefix(r.URL.RawQuery, "q="):
		q, qerr := url.QueryUnescape(strings.TrimPrefix(r.URL.RawQuery, "q="))
		if qerr != nil {
			h.fail(w, dufs.ErrBadRequest)
			return
		}
		items, serr := filesystem.Search(r.Context(), path, q)
		if serr != nil {
			h.fail(w, serr)
			return
		}
		h.sendIndex(w, path, items)
	default:
		items, lerr := filesystem.List(r.Context(), path, true)
		if lerr != nil {
			h.fail(w, lerr)
			return
		}
		h.sendIndex(w, path, items)
	}
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	if h.config.Readonly {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	path, err := dufs.ResolvePath(h.config.Root, r.URL.EscapedPath())
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := filesystem.Save(r.Context(), path, r.Body); err != nil {
		h.fail(w, err)
		return
	}
	WriteStatus(w, http.StatusOK)
}

// handleDelete removes the target. Deletion is not gated by the readonly
// flag; only PUT is.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	path, err := dufs.ResolvePath(h.config.Root, r.URL.EscapedPath())
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := filesystem.Delete(r.Context(), path); err != nil {
		h.fail(w, err)
		return
	}
	WriteStatus(w, http.StatusOK)
}

// sendFile streams a file body in fixed-size chunks. No Content-Type, no
// ranges, no ETag.
func (h *Handler) sendFile(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		h.fail(w, fmt.Errorf("open file: %w", err))
		return
	}
	defer func() { _ = f.Close() }()

	SuppressContentType(w)
	if _, err := filesystem.Copy(w, f); err != nil {
		// Headers are committed; nothing to do but log.
		slog.Error("send file", "path", path, "err", err)
	}
}

// sendZip streams a ZIP of the subtree at dir. A producer goroutine writes
// archive frames into a pipe buffered at BufSize while the response writer
// drains the other end, so a slow client throttles the walk. The 200
// status is committed before the producer can fail; on a producer error
// the client simply observes a truncated stream.
func (h *Handler) sendZip(w http.ResponseWriter, r *http.Request, dir string) {
	pr, pw := io.Pipe()

	go func() {
		bw := bufio.NewWriterSize(pw, filesystem.BufSize)
		err := filesystem.ZipDir(r.Context(), bw, dir)
		if err == nil {
			err = bw.Flush()
		}
		if err != nil {
			slog.Error("zip stream", "dir", dir, "err", err)
		}
		_ = pw.Close()
	}()

	SuppressContentType(w)
	if _, err := filesystem.Copy(w, pr); err != nil {
		// Client went away; break the pipe so the producer stops.
		_ = pr.CloseWithError(err)
		slog.Error("send zip", "dir", dir, "err", err)
	}
	_ = pr.Close()
}

func (h *Handler) sendIndex(w http.ResponseWriter, path string, items []dufs.PathItem) {
	page, err := RenderIndex(dufs.IndexData{
		Breadcrumb: dufs.Breadcrumb(h.config.Root, path),
		Paths:      items,
		Readonly:   h.config.Readonly,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	SuppressContentType(w)
	if _, err := w.Write(page); err != nil {
		slog.Debug("send index", "err", err)
	}
}

// fail maps a handler error onto a bare status response. Details never
// reach the client.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dufs.ErrBadRequest):
		WriteStatus(w, http.StatusBadRequest)
	case errors.Is(err, dufs.ErrForbidden):
		WriteStatus(w, http.StatusForbidden)
	case errors.Is(err, dufs.ErrNotFound):
		WriteStatus(w, http.StatusNotFound)
	default:
		slog.Error("request failed", "err", err)
		WriteStatus(w, http.StatusInternalServerError)
	}
}
