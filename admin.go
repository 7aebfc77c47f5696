package fitsindex

import (
	"context"

	"github.com/rtrio/fitsindex/data"
)

// RebuildSchema drops the files table and recreates it with exactly
// {path} plus the mapped columns. Existing rows are lost; the table is
// never altered incrementally. Requires a read-write handle and an
// affirmative answer from the confirmation gate.
func (ix *Index) RebuildSchema(ctx context.Context) error {
	if !ix.writable() {
		return data.ErrReadOnly
	}
	if !ix.confirmed("Rebuild the files table? All indexed rows will be lost.") {
		return data.ErrAborted
	}

	ix.logger.Info("rebuilding files table (%d columns)", len(ix.cfg.Columns)+1)
	if err := ix.st.Rebuild(ctx, ix.cfg.Columns); err != nil {
		return err
	}

	ix.paths.Clear()
	return nil
}

// Flush deletes every row and compacts the store, keeping the table
// structure. Requires a read-write handle and confirmation.
func (ix *Index) Flush(ctx context.Context) error {
	if !ix.writable() {
		return data.ErrReadOnly
	}
	if !ix.confirmed("Flush all indexed rows?") {
		return data.ErrAborted
	}

	ix.logger.Info("flushing %d indexed rows", ix.paths.Len())
	if err := ix.st.Clear(ctx); err != nil {
		return err
	}

	ix.paths.Clear()
	return nil
}
