// Package store defines the backing-store contract for the files
// table. Implementations own their SQL dialect; callers speak in
// column mappings and rows only.
package store

import (
	"context"

	"github.com/rtrio/fitsindex/data"
)

// Store is a handle on one backing store holding the files table.
//
// Mutating calls (Rebuild, Upsert, Clear) commit their own transaction
// before returning and must fail with data.ErrReadOnly on a read-only
// handle. Row values are bound as parameters, never interpolated.
type Store interface {
	// Mode reports how the store was opened.
	Mode() data.Mode

	// Rebuild drops the files table if present and recreates it with
	// exactly {path} plus the mapped columns.
	Rebuild(ctx context.Context, cols []data.Column) error

	// Upsert inserts the row or replaces the existing one with the
	// same path.
	Upsert(ctx context.Context, row data.Row) error

	// Select returns the rows matching every attribute exactly.
	Select(ctx context.Context, attrs map[string]any) ([]data.Row, error)

	// Paths returns the path of every indexed row.
	Paths(ctx context.Context) ([]string, error)

	// Clear deletes all rows and compacts the store, keeping the
	// table structure.
	Clear(ctx context.Context) error

	// Close releases the connection and any handle held for
	// read-only enforcement. Safe to call more than once.
	Close() error
}
