package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps checkpoint payloads in <prefix>_<generation> files like
// FileStore, but tracks generation numbers in a sqlite table instead of
// re-deriving them from filename parsing on every lookup. Init reconciles
// the index with a directory scan, so files written by a scan-mode run are
// adopted.
type SQLiteStore struct {
	files  *FileStore
	dbPath string

	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteStore(prefix, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite index path is required")
	}
	files, err := NewFileStore(prefix)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{files: files, dbPath: dbPath}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := s.files.Init(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS checkpoints (
			generation INTEGER PRIMARY KEY,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		_ = db.Close()
		return err
	}

	if err := reconcile(ctx, db, s.files); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func reconcile(ctx context.Context, db *sql.DB, files *FileStore) error {
	generations, err := files.Generations(ctx)
	if err != nil {
		return err
	}
	for _, generation := range generations {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO checkpoints (generation, path) VALUES (?, ?)
			ON CONFLICT(generation) DO NOTHING
		`, generation, files.Path(generation)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, checkpoint Checkpoint) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if err := s.files.Save(ctx, checkpoint); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO checkpoints (generation, path) VALUES (?, ?)
		ON CONFLICT(generation) DO UPDATE SET path = excluded.path
	`, checkpoint.Generation, s.files.Path(checkpoint.Generation))
	return err
}

func (s *SQLiteStore) Load(ctx context.Context, generation int) (Checkpoint, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Checkpoint{}, false, err
	}

	var path string
	err = db.QueryRowContext(ctx, `SELECT path FROM checkpoints WHERE generation = ?`, generation).Scan(&path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, err
	}
	return s.files.Load(ctx, generation)
}

func (s *SQLiteStore) Latest(ctx context.Context) (Checkpoint, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Checkpoint{}, false, err
	}

	var generation int
	err = db.QueryRowContext(ctx, `SELECT generation FROM checkpoints ORDER BY generation DESC LIMIT 1`).Scan(&generation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, err
	}
	return s.files.Load(ctx, generation)
}

func (s *SQLiteStore) Generations(ctx context.Context) ([]int, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT generation FROM checkpoints ORDER BY generation ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var generations []int
	for rows.Next() {
		var generation int
		if err := rows.Scan(&generation); err != nil {
			return nil, err
		}
		generations = append(generations, generation)
	}
	return generations, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}
