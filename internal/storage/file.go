package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FileStore writes one file per checkpoint, named <prefix>_<generation>, and
// discovers generations by scanning the prefix's directory for filenames
// whose suffix after the last underscore parses as an unsigned integer.
type FileStore struct {
	prefix string
}

func NewFileStore(prefix string) (*FileStore, error) {
	if prefix == "" {
		return nil, errors.New("checkpoint path prefix is required")
	}
	return &FileStore{prefix: prefix}, nil
}

func (s *FileStore) Init(_ context.Context) error {
	return os.MkdirAll(filepath.Dir(s.prefix), 0o755)
}

func (s *FileStore) Path(generation int) string {
	return fmt.Sprintf("%s_%d", s.prefix, generation)
}

// Save writes the payload to a temporary file and renames it into place, so
// an interrupted write never leaves a truncated checkpoint behind.
func (s *FileStore) Save(_ context.Context, checkpoint Checkpoint) error {
	payload, err := EncodeCheckpoint(checkpoint)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.prefix)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.prefix)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path(checkpoint.Generation)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, generation int) (Checkpoint, bool, error) {
	payload, err := os.ReadFile(s.Path(generation))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, err
	}
	checkpoint, err := DecodeCheckpoint(payload)
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("decode checkpoint %d: %w", generation, err)
	}
	return checkpoint, true, nil
}

func (s *FileStore) Latest(ctx context.Context) (Checkpoint, bool, error) {
	generations, err := s.Generations(ctx)
	if err != nil {
		return Checkpoint{}, false, err
	}
	if len(generations) == 0 {
		return Checkpoint{}, false, nil
	}
	return s.Load(ctx, generations[len(generations)-1])
}

// Generations returns the stored generation numbers in ascending order.
func (s *FileStore) Generations(_ context.Context) ([]int, error) {
	entries, err := os.ReadDir(filepath.Dir(s.prefix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	base := filepath.Base(s.prefix)
	generations := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, base+"_") {
			continue
		}
		suffix := name[strings.LastIndex(name, "_")+1:]
		generation, err := strconv.ParseUint(suffix, 10, 32)
		if err != nil {
			continue
		}
		generations = append(generations, int(generation))
	}
	sort.Ints(generations)
	return generations, nil
}
