package data

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Standard index errors surfaced to callers.
var (
	// Configuration errors
	ErrConfig = errors.New("fitsindex: invalid configuration")

	// Permission errors
	ErrReadOnly = errors.New("fitsindex: index opened read-only")

	// Lifecycle errors
	ErrAborted  = errors.New("fitsindex: aborted by user")
	ErrNotExist = errors.New("fitsindex: index database does not exist")
	ErrNoSchema = errors.New("fitsindex: files table missing, rebuild required")
	ErrClosed   = errors.New("fitsindex: index already closed")

	// Extraction errors
	ErrBadHeader = errors.New("fitsindex: malformed FITS header")
	ErrBadDate   = errors.New("fitsindex: malformed datetime value")
)

// UnknownColumnError reports query attributes that name no schema
// column. It carries both the offending names and the full set of
// valid ones so the caller can correct the query.
type UnknownColumnError struct {
	Unknown []string
	Valid   []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("fitsindex: unknown column(s): %s (valid: %s)",
		strings.Join(e.Unknown, ", "), strings.Join(e.Valid, ", "))
}

// NewUnknownColumnError sorts the offending names for stable output.
func NewUnknownColumnError(unknown, valid []string) *UnknownColumnError {
	sort.Strings(unknown)
	return &UnknownColumnError{Unknown: unknown, Valid: valid}
}

// Errors collects per-file failures during a bulk scan without
// aborting the run.
type Errors struct {
	mu     sync.Mutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.errors)
}

func (e *Errors) Errors() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
