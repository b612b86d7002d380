package storage

import "fmt"

// NewStore selects a checkpoint backend. "scan" derives generations from the
// checkpoint directory on every lookup (the original behavior); "sqlite"
// keeps a generation index next to the files; "memory" persists nothing.
func NewStore(kind, prefix, dbPath string) (Store, error) {
	switch kind {
	case "", "scan":
		return NewFileStore(prefix)
	case "sqlite":
		return NewSQLiteStore(prefix, dbPath)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// DefaultStoreKind is the backend used when none is configured.
func DefaultStoreKind() string {
	return "scan"
}
