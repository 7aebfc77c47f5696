package fitsindex_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtrio/fitsindex"
	"github.com/rtrio/fitsindex/source/local"
)

func TestScan_LocalTree(t *testing.T) {
	ctx := t.Context()
	cfg := testConfig(t)
	ix := openIndex(t, cfg)

	writeFITS(t, filepath.Join(cfg.BaseDir, "night1", "flat1.fits"), "IMAGETYP= 'flat    '")
	writeFITS(t, filepath.Join(cfg.BaseDir, "night1", "bias1.fits"), "IMAGETYP= 'bias    '")
	writeFITS(t, filepath.Join(cfg.BaseDir, "night2", "flat2.fit"), "IMAGETYP= 'flat    '")

	// Non-FITS files are ignored entirely
	if err := os.WriteFile(filepath.Join(cfg.BaseDir, "notes.txt"), []byte("seeing 1.2"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// A corrupt FITS file fails its own insert without aborting the run
	if err := os.WriteFile(filepath.Join(cfg.BaseDir, "broken.fits"), []byte("garbage"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	report, err := ix.Scan(ctx, local.New(cfg.BaseDir), fitsindex.ScanOptions{})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if report.JobID == "" {
		t.Error("expected a job ID")
	}
	if report.Scanned != 4 {
		t.Errorf("scanned: expected 4, got %d", report.Scanned)
	}
	if report.Indexed != 3 {
		t.Errorf("indexed: expected 3, got %d", report.Indexed)
	}
	if report.Failed != 1 {
		t.Errorf("failed: expected 1, got %d", report.Failed)
	}
	if report.Errs == nil {
		t.Error("expected joined per-file errors")
	}

	flats, err := ix.QueryPaths(ctx, map[string]any{"imagetype": "flat"})
	if err != nil {
		t.Fatalf("QueryPaths failed: %v", err)
	}
	if len(flats) != 2 {
		t.Errorf("expected 2 flats indexed, got %v", flats)
	}
}

func TestScan_SkipIndexed(t *testing.T) {
	ctx := t.Context()
	cfg := testConfig(t)
	ix := openIndex(t, cfg)

	writeFITS(t, filepath.Join(cfg.BaseDir, "a.fits"), "IMAGETYP= 'flat    '")
	writeFITS(t, filepath.Join(cfg.BaseDir, "b.fits"), "IMAGETYP= 'bias    '")

	src := local.New(cfg.BaseDir)

	first, err := ix.Scan(ctx, src, fitsindex.ScanOptions{SkipIndexed: true})
	if err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	if first.Indexed != 2 || first.Skipped != 0 {
		t.Errorf("first run: indexed %d, skipped %d", first.Indexed, first.Skipped)
	}

	second, err := ix.Scan(ctx, src, fitsindex.ScanOptions{SkipIndexed: true})
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if second.Indexed != 0 || second.Skipped != 2 {
		t.Errorf("second run: indexed %d, skipped %d", second.Indexed, second.Skipped)
	}
}
