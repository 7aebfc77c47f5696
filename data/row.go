package data

import "time"

// DateTimeLayout is the fixed representation of header timestamps,
// microsecond precision included (YYYY-MM-DDTHH:MM:SS.ffffff).
const DateTimeLayout = "2006-01-02T15:04:05.000000"

// Row is one materialized record from the files table, keyed by column
// name. A mapped column whose header keyword was absent in the source
// file holds nil, the designed sentinel.
type Row map[string]any

// Path returns the relative file path acting as the row identity.
func (r Row) Path() string {
	return r.String(PathColumn)
}

// String returns the column as a string, or "" when absent or nil.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// Float returns the column as a float64 when it holds a numeric value.
func (r Row) Float(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int returns the column as an int64 when it holds an integer value.
func (r Row) Int(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	default:
		return 0, false
	}
}

// Time returns the column as a timestamp. Stores that keep datetime
// columns as text (sqlite) are parsed back through DateTimeLayout.
func (r Row) Time(col string) (time.Time, bool) {
	switch v := r[col].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(DateTimeLayout, v)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case []byte:
		t, err := time.Parse(DateTimeLayout, string(v))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
