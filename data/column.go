package data

import (
	"fmt"
	"regexp"
	"strings"
)

// ColumnType enumerates the declared datatypes a mapped column may carry.
type ColumnType int

const (
	// Fixed-length text (CHARACTER(n))
	TypeText ColumnType = iota
	// Floating point
	TypeFloat
	// Small integer
	TypeInt
	// Timestamp parsed from the fixed header date format
	TypeDateTime
)

func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseColumnType converts a configuration string into a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch s {
	case "text":
		return TypeText, nil
	case "float":
		return TypeFloat, nil
	case "int":
		return TypeInt, nil
	case "datetime":
		return TypeDateTime, nil
	default:
		return 0, fmt.Errorf("%w: unknown column type '%s'", ErrConfig, s)
	}
}

// MarshalJSON renders the type by name so configuration files stay
// readable.
func (t ColumnType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *ColumnType) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseColumnType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Column maps one FITS header keyword onto an indexed table column.
// Mappings are carried as ordered slices so the table layout is stable.
type Column struct {
	// Header keyword looked up in the primary header (e.g. "IMAGETYP")
	Key string `json:"key"`
	// Column name in the files table (e.g. "imagetype")
	Name string `json:"name"`
	// Declared datatype
	Type ColumnType `json:"type"`
	// Text length for TypeText columns
	Length int `json:"length,omitempty"`
}

// PathColumn is the reserved identity column present in every schema.
const PathColumn = "path"

// PathLength bounds the relative path stored as the row identity.
const PathLength = 72

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate reports whether the column is usable as part of a schema.
func (c Column) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%w: column '%s' has no header keyword", ErrConfig, c.Name)
	}
	if !identifier.MatchString(c.Name) {
		return fmt.Errorf("%w: column name '%s' is not a valid identifier", ErrConfig, c.Name)
	}
	if c.Name == PathColumn {
		return fmt.Errorf("%w: column name '%s' is reserved", ErrConfig, PathColumn)
	}
	if c.Type == TypeText && c.Length <= 0 {
		return fmt.Errorf("%w: text column '%s' needs a positive length", ErrConfig, c.Name)
	}
	return nil
}

// ValidateColumns checks a full mapping for per-column problems and
// duplicate names.
func ValidateColumns(cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: empty column mapping", ErrConfig)
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate column name '%s'", ErrConfig, c.Name)
		}
		seen[c.Name] = true
	}

	return nil
}
