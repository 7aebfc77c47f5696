// Package sqlite backs the files table with a single local SQLite
// database file, using the CGO-free modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rtrio/fitsindex/data"
)

type SQLiteStore struct {
	db   *sql.DB
	mode data.Mode
}

// Open opens (read-write: creating if absent) the database at path.
// The path ":memory:" yields a private in-memory database.
//
// In read-only mode the file must already exist and is opened through
// the mode=ro URI, so the engine holds an O_RDONLY descriptor and any
// mutation fails inside SQLite itself, not by convention.
func Open(ctx context.Context, path string, mode data.Mode) (*SQLiteStore, error) {
	dsn := path
	if mode == data.ReadOnly {
		if path == ":memory:" {
			return nil, fmt.Errorf("%w: in-memory database cannot be opened read-only", data.ErrNotExist)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", data.ErrNotExist, path)
		}
		dsn = "file:" + path + "?mode=ro"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise see its own
		// private in-memory database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	if mode.Writable() {
		// WAL keeps readers usable while a writer commits
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
		}
	}

	return &SQLiteStore{db: db, mode: mode}, nil
}

func (s *SQLiteStore) Mode() data.Mode {
	return s.mode
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Rebuild(ctx context.Context, cols []data.Column) error {
	if !s.mode.Writable() {
		return data.ErrReadOnly
	}

	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS files"); err != nil {
		return fmt.Errorf("sqlite: drop files: %w", err)
	}

	defs := make([]string, 0, len(cols)+1)
	defs = append(defs, fmt.Sprintf("%s CHARACTER(%d) UNIQUE", data.PathColumn, data.PathLength))
	for _, c := range cols {
		defs = append(defs, c.Name+" "+typeSQL(c))
	}

	query := fmt.Sprintf("CREATE TABLE files (%s)", strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sqlite: create files: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, row data.Row) error {
	if !s.mode.Writable() {
		return data.ErrReadOnly
	}

	names := sortedColumns(row)
	holders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		holders[i] = "?"
		args[i] = bindValue(row[name])
	}

	query := fmt.Sprintf("INSERT OR REPLACE INTO files (%s) VALUES (%s)",
		strings.Join(names, ", "), strings.Join(holders, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return wrapTableErr(err, "upsert")
	}

	return nil
}

func (s *SQLiteStore) Select(ctx context.Context, attrs map[string]any) ([]data.Row, error) {
	query := "SELECT * FROM files"
	var args []any

	if len(attrs) > 0 {
		names := sortedColumns(attrs)
		clauses := make([]string, len(names))
		for i, name := range names {
			clauses[i] = name + " = ?"
			args = append(args, bindValue(attrs[name]))
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapTableErr(err, "select")
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: select: %w", err)
	}

	var result []data.Row
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}

		row := make(data.Row, len(names))
		for i, name := range names {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
			} else {
				row[name] = values[i]
			}
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (s *SQLiteStore) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM files", data.PathColumn))
	if err != nil {
		return nil, wrapTableErr(err, "paths")
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if !s.mode.Writable() {
		return data.ErrReadOnly
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM files"); err != nil {
		return wrapTableErr(err, "clear")
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("sqlite: vacuum: %w", err)
	}

	return nil
}

func typeSQL(c data.Column) string {
	switch c.Type {
	case data.TypeText:
		return fmt.Sprintf("CHARACTER(%d)", c.Length)
	case data.TypeFloat:
		return "FLOAT"
	case data.TypeInt:
		return "TINYINT"
	case data.TypeDateTime:
		return "DATETIME"
	default:
		return "TEXT"
	}
}

// bindValue normalizes Go values onto what the driver stores:
// timestamps keep the fixed header format so equality queries on text
// survive a round trip.
func bindValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(data.DateTimeLayout)
	case bool:
		if t {
			return int64(1)
		}
		return int64(0)
	default:
		return v
	}
}

func sortedColumns(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrapTableErr(err error, op string) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %s", data.ErrNoSchema, op)
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}
