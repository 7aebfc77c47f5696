// Package fitsindex maintains a relational index of FITS primary
// header metadata over a directory tree of astronomical exposures, so
// attribute lookups never have to re-read the binary files themselves.
package fitsindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/btree"

	"github.com/rtrio/fitsindex/config"
	"github.com/rtrio/fitsindex/data"
	"github.com/rtrio/fitsindex/log"
	"github.com/rtrio/fitsindex/store"
	"github.com/rtrio/fitsindex/store/postgres"
	"github.com/rtrio/fitsindex/store/sqlite"
)

// Index is a handle on the files table. One row per indexed exposure,
// keyed by path relative to the configured base directory.
type Index struct {
	cfg     *config.Config
	st      store.Store
	logger  *log.Logger
	confirm ConfirmFunc
	closed  bool

	// In-memory B-tree over the indexed paths for fast membership
	// checks during bulk scans
	paths *btree.Map[string, struct{}]

	// Valid query columns by name; names keeps mapping order
	valid map[string]bool
	names []string
}

// Open validates the configuration, opens the backing store in the
// requested mode and loads the indexed-path cache.
func Open(ctx context.Context, cfg *config.Config, mode data.Mode, opts ...Option) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ix := &Index{
		cfg:    cfg,
		logger: log.Discard(),
		paths:  btree.NewMap[string, struct{}](0),
		valid:  make(map[string]bool),
		names:  cfg.ColumnNames(),
	}
	for _, name := range ix.names {
		ix.valid[name] = true
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	if ix.st == nil {
		st, err := openStore(ctx, cfg, mode)
		if err != nil {
			return nil, err
		}
		ix.st = st
	}

	if err := ix.loadPaths(ctx); err != nil {
		ix.st.Close()
		return nil, err
	}

	ix.logger.Debug("index opened %s (%d rows cached)", ix.st.Mode(), ix.paths.Len())
	return ix, nil
}

func openStore(ctx context.Context, cfg *config.Config, mode data.Mode) (store.Store, error) {
	switch cfg.Store {
	case "", "sqlite":
		return sqlite.Open(ctx, cfg.DSN, mode)
	case "postgres":
		return postgres.Open(ctx, cfg.DSN, mode)
	default:
		return nil, fmt.Errorf("%w: unknown store backend '%s'", data.ErrConfig, cfg.Store)
	}
}

// loadPaths fills the membership cache. A store without a files table
// yet simply yields an empty cache.
func (ix *Index) loadPaths(ctx context.Context) error {
	paths, err := ix.st.Paths(ctx)
	if err != nil {
		if errors.Is(err, data.ErrNoSchema) {
			return nil
		}
		return err
	}

	for _, p := range paths {
		ix.paths.Set(p, struct{}{})
	}
	return nil
}

// Close releases the backing store. Safe to call more than once.
func (ix *Index) Close() error {
	if ix.closed {
		return nil
	}
	ix.closed = true
	ix.paths.Clear()
	return ix.st.Close()
}

// Contains reports whether a relative path is already indexed, from
// the in-memory cache loaded at open time.
func (ix *Index) Contains(rel string) bool {
	_, ok := ix.paths.Get(rel)
	return ok
}

// Columns returns the valid query column names, identity first.
func (ix *Index) Columns() []string {
	names := make([]string, len(ix.names))
	copy(names, ix.names)
	return names
}

func (ix *Index) writable() bool {
	return ix.st.Mode().Writable()
}
