package fitsindex

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rtrio/fitsindex/data"
	"github.com/rtrio/fitsindex/fits"
)

// InsertFromFile parses the primary header of the file at path and
// upserts its record, keyed by the path relative to the configured
// base directory. Re-indexing a path replaces its row.
func (ix *Index) InsertFromFile(ctx context.Context, path string) error {
	if !ix.writable() {
		return data.ErrReadOnly
	}

	rel, err := filepath.Rel(ix.cfg.BaseDir, path)
	if err != nil {
		return fmt.Errorf("%w: %s is not under %s", data.ErrConfig, path, ix.cfg.BaseDir)
	}

	f, err := fits.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ix.insert(ctx, filepath.ToSlash(rel), f.Header())
}

// InsertFromReader indexes a header streamed from a non-file source
// under the given relative path.
func (ix *Index) InsertFromReader(ctx context.Context, rel string, r io.Reader) error {
	if !ix.writable() {
		return data.ErrReadOnly
	}

	hdr, err := fits.Read(r)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}

	return ix.insert(ctx, rel, hdr)
}

// insert builds the record from the header and commits it. Every
// mapped column starts at the nil sentinel; an absent keyword leaves
// it there, which is not an error.
func (ix *Index) insert(ctx context.Context, rel string, hdr fits.Header) error {
	row := data.Row{data.PathColumn: rel}

	for _, col := range ix.cfg.Columns {
		row[col.Name] = nil

		value, ok := hdr.Get(col.Key)
		if !ok {
			continue
		}

		if col.Type == data.TypeDateTime {
			parsed, err := parseDateTime(value)
			if err != nil {
				return fmt.Errorf("%s: keyword %s: %w", rel, col.Key, err)
			}
			row[col.Name] = parsed
		} else {
			row[col.Name] = value
		}
	}

	if err := ix.st.Upsert(ctx, row); err != nil {
		return err
	}

	ix.paths.Set(rel, struct{}{})
	ix.logger.Debug("indexed %s", rel)
	return nil
}

// parseDateTime enforces the fixed header timestamp format. A present
// but malformed value is fatal for the insert, unlike an absent key.
func parseDateTime(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %v is not a string", data.ErrBadDate, value)
	}

	t, err := time.Parse(data.DateTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s'", data.ErrBadDate, s)
	}

	return t, nil
}
