// Package source abstracts where exposure files come from during a
// bulk scan: a local directory tree or an S3-compatible archive.
package source

import (
	"context"
	"io"
	"path"
	"strings"
)

// Entry is one candidate exposure file, identified by its path
// relative to the source root.
type Entry struct {
	Path string
	Size int64
}

// Source lists and opens exposure files.
type Source interface {
	// Name identifies the source kind for logging.
	Name() string

	// List enumerates the FITS files the source holds.
	List(ctx context.Context) ([]Entry, error)

	// Open streams the file at the given relative path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// IsFITS reports whether a file name carries a FITS extension.
func IsFITS(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".fits", ".fit", ".fts":
		return true
	default:
		return false
	}
}
