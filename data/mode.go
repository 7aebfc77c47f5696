package data

// Mode selects how the backing store is opened.
type Mode int

const (
	// ReadOnly opens an existing store so that no mutation is possible,
	// enforced by the storage engine rather than by convention.
	ReadOnly Mode = iota
	// ReadWrite opens the store for schema and data mutation, creating
	// it if absent.
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

// Writable reports whether the mode permits mutation.
func (m Mode) Writable() bool {
	return m == ReadWrite
}
