package fitsindex

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rtrio/fitsindex/data"
	"github.com/rtrio/fitsindex/source"
)

// ScanOptions tunes a bulk import run.
type ScanOptions struct {
	// SkipIndexed skips files whose path is already in the index,
	// using the in-memory cache.
	SkipIndexed bool
}

// ScanReport summarizes one bulk import run.
type ScanReport struct {
	// JobID identifies the run in logs
	JobID   string
	Scanned int
	Indexed int
	Skipped int
	Failed  int

	// Errs joins the per-file failures; a bad file never aborts the
	// run, its insert is simply not committed.
	Errs error
}

// Scan walks a source and indexes every FITS file it lists. Each file
// commits on its own; failures are collected into the report instead
// of stopping the run. Cancelling the context stops between files.
func (ix *Index) Scan(ctx context.Context, src source.Source, opts ScanOptions) (*ScanReport, error) {
	if !ix.writable() {
		return nil, data.ErrReadOnly
	}

	report := &ScanReport{JobID: genJobID()}
	scanLog := ix.logger.Named("scan")
	scanLog.Info("job %s scanning %s source", report.JobID, src.Name())

	entries, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", src.Name(), err)
	}

	var errs data.Errors
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.Errs = errs.Errors()
			return report, err
		}

		report.Scanned++
		if opts.SkipIndexed && ix.Contains(entry.Path) {
			report.Skipped++
			continue
		}

		if err := ix.indexEntry(ctx, src, entry); err != nil {
			scanLog.Warn("job %s: %s: %v", report.JobID, entry.Path, err)
			errs.Add(err)
			report.Failed++
			continue
		}
		report.Indexed++
	}

	report.Errs = errs.Errors()
	scanLog.Info("job %s done: %d indexed, %d skipped, %d failed",
		report.JobID, report.Indexed, report.Skipped, report.Failed)
	return report, nil
}

func (ix *Index) indexEntry(ctx context.Context, src source.Source, entry source.Entry) error {
	rc, err := src.Open(ctx, entry.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", entry.Path, err)
	}
	defer rc.Close()

	return ix.InsertFromReader(ctx, entry.Path, rc)
}

func genJobID() string {
	return uuid.Must(uuid.NewV7()).String()
}
