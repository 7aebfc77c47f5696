// Package local walks a directory tree of exposures on disk.
package local

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rtrio/fitsindex/source"
)

type LocalSource struct {
	root string
}

// New creates a source rooted at the given base directory.
func New(root string) *LocalSource {
	return &LocalSource{root: root}
}

func (ls *LocalSource) Name() string {
	return "local"
}

func (ls *LocalSource) List(ctx context.Context) ([]source.Entry, error) {
	var entries []source.Entry

	err := filepath.WalkDir(ls.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !source.IsFITS(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(ls.root, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, source.Entry{
			Path: filepath.ToSlash(rel),
			Size: info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (ls *LocalSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(ls.root, filepath.FromSlash(path)))
}
