package fragmenthandlers

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"
)

// ErrStaticFilesNoFS is returned when StaticFilesConfig.FS is nil.
var ErrStaticFilesNoFS = errors.New("static files: file system must not be nil")

// StaticFilesConfig configures the static file handler.
type StaticFilesConfig struct {
	// FS is the file system to serve files from. Required.
	// Works with os.DirFS, embed.FS, and any fs.FS implementation.
	FS fs.FS

	// EnableDirectoryListing allows directory contents to be listed
	// when no index.html is present. Disabled by default.
	EnableDirectoryListing bool

	// MaxAge sets "Cache-Control: public, max-age=N" on successful
	// responses. Assets referenced by rendered markup are immutable per
	// deploy and want long lifetimes even though the fragments
	// themselves are not cached. Zero leaves caching headers untouched.
	MaxAge time.Duration
}

// noDirListingFS wraps an fs.FS to prevent directory listing.
// When a directory is opened that does not contain an index.html,
// it returns fs.ErrNotExist so http.FileServer responds with 404.
type noDirListingFS struct {
	fs fs.FS
}

func (n *noDirListingFS) Open(name string) (fs.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if !stat.IsDir() {
		return f, nil
	}

	indexPath := name + "/index.html"
	if name == "." {
		indexPath = "index.html"
	}

	if _, err := fs.Stat(n.fs, indexPath); err != nil {
		f.Close()
		return nil, fs.ErrNotExist
	}

	return f, nil
}

// StaticFilesHandler returns an http.Handler that serves static files from
// the provided file system. It is not middleware, it serves files directly
// without calling a next handler. Mount it on the host mux, typically with
// http.StripPrefix.
func StaticFilesHandler(cfg StaticFilesConfig) (http.Handler, error) {
	if cfg.FS == nil {
		return nil, ErrStaticFilesNoFS
	}

	fileSystem := cfg.FS

	if !cfg.EnableDirectoryListing {
		fileSystem = &noDirListingFS{fs: fileSystem}
	}

	h := http.Handler(http.FileServerFS(fileSystem))

	if cfg.MaxAge > 0 {
		value := fmt.Sprintf("public, max-age=%d", int64(cfg.MaxAge.Seconds()))
		inner := h
		h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner.ServeHTTP(&assetCacheWriter{ResponseWriter: w, value: value}, r)
		})
	}

	return h, nil
}

// assetCacheWriter sets the Cache-Control header on cacheable statuses
// just before headers flush, leaving error responses uncached.
type assetCacheWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (aw *assetCacheWriter) WriteHeader(statusCode int) {
	if aw.wroteHeader {
		return
	}

	aw.wroteHeader = true

	switch statusCode {
	case http.StatusOK, http.StatusPartialContent, http.StatusNotModified:
		if aw.Header().Get("Cache-Control") == "" {
			aw.Header().Set("Cache-Control", aw.value)
		}
	}

	aw.ResponseWriter.WriteHeader(statusCode)
}

func (aw *assetCacheWriter) Write(b []byte) (int, error) {
	if !aw.wroteHeader {
		aw.WriteHeader(http.StatusOK)
	}

	return aw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for middleware compatibility.
func (aw *assetCacheWriter) Unwrap() http.ResponseWriter {
	return aw.ResponseWriter
}
