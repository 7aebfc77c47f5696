package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rtrio/fitsindex/data"
)

var testColumns = []data.Column{
	{Key: "IMAGETYP", Name: "imagetype", Type: data.TypeText, Length: 8},
	{Key: "EXPTIME", Name: "exptime", Type: data.TypeFloat},
	{Key: "DATE-OBS", Name: "date", Type: data.TypeDateTime},
}

func TestStore_RebuildUpsertSelect(t *testing.T) {
	ctx := t.Context()

	s, err := Open(ctx, ":memory:", data.ReadWrite)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if err := s.Rebuild(ctx, testColumns); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	when := time.Date(2020, 5, 1, 3, 15, 30, 250000000, time.UTC)
	row := data.Row{
		"path":      "night1/exp1.fits",
		"imagetype": "flat",
		"exptime":   12.5,
		"date":      when,
	}
	if err := s.Upsert(ctx, row); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Same path replaces, no duplicate
	row["imagetype"] = "bias"
	if err := s.Upsert(ctx, row); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	rows, err := s.Select(ctx, nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].String("imagetype") != "bias" {
		t.Errorf("imagetype: got %q", rows[0].String("imagetype"))
	}

	// Timestamps are stored in the fixed text format
	if got := rows[0].String("date"); got != "2020-05-01T03:15:30.250000" {
		t.Errorf("date: got %q", got)
	}

	match, err := s.Select(ctx, map[string]any{"imagetype": "bias", "exptime": 12.5})
	if err != nil {
		t.Fatalf("Select with attrs failed: %v", err)
	}
	if len(match) != 1 {
		t.Errorf("expected conjunction match, got %d rows", len(match))
	}

	none, err := s.Select(ctx, map[string]any{"imagetype": "dark"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no match, got %d rows", len(none))
	}
}

func TestStore_PathsAndClear(t *testing.T) {
	ctx := t.Context()

	s, err := Open(ctx, ":memory:", data.ReadWrite)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if err := s.Rebuild(ctx, testColumns); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	for _, p := range []string{"a.fits", "b.fits"} {
		if err := s.Upsert(ctx, data.Row{"path": p}); err != nil {
			t.Fatalf("Upsert %s failed: %v", p, err)
		}
	}

	paths, err := s.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 paths, got %v", paths)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	paths, err = s.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths after Clear failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected empty table, got %v", paths)
	}

	// Clear keeps the table; Rebuild is not needed to insert again
	if err := s.Upsert(ctx, data.Row{"path": "c.fits"}); err != nil {
		t.Errorf("Upsert after Clear failed: %v", err)
	}
}

func TestStore_NoSchema(t *testing.T) {
	ctx := t.Context()

	s, err := Open(ctx, ":memory:", data.ReadWrite)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Paths(ctx); !errors.Is(err, data.ErrNoSchema) {
		t.Errorf("expected ErrNoSchema, got %v", err)
	}
	if err := s.Upsert(ctx, data.Row{"path": "a.fits"}); !errors.Is(err, data.ErrNoSchema) {
		t.Errorf("expected ErrNoSchema, got %v", err)
	}
}

func TestStore_ReadOnly(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "index.db")

	rw, err := Open(ctx, path, data.ReadWrite)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := rw.Rebuild(ctx, testColumns); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if err := rw.Upsert(ctx, data.Row{"path": "a.fits"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ro, err := Open(ctx, path, data.ReadOnly)
	if err != nil {
		t.Fatalf("read-only Open failed: %v", err)
	}
	defer ro.Close()

	if ro.Mode() != data.ReadOnly {
		t.Errorf("mode: got %v", ro.Mode())
	}
	if err := ro.Upsert(ctx, data.Row{"path": "b.fits"}); !errors.Is(err, data.ErrReadOnly) {
		t.Errorf("Upsert: expected ErrReadOnly, got %v", err)
	}
	if err := ro.Rebuild(ctx, testColumns); !errors.Is(err, data.ErrReadOnly) {
		t.Errorf("Rebuild: expected ErrReadOnly, got %v", err)
	}
	if err := ro.Clear(ctx); !errors.Is(err, data.ErrReadOnly) {
		t.Errorf("Clear: expected ErrReadOnly, got %v", err)
	}

	paths, err := ro.Paths(ctx)
	if err != nil {
		t.Fatalf("Paths failed: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("expected 1 path, got %v", paths)
	}
}

func TestStore_ReadOnlyMissingFile(t *testing.T) {
	ctx := t.Context()

	_, err := Open(ctx, filepath.Join(t.TempDir(), "absent.db"), data.ReadOnly)
	if !errors.Is(err, data.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
