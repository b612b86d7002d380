package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// MemoryStore holds encoded checkpoints in a map. It backs tests and
// throwaway runs; payloads go through the codec so value isolation matches
// the durable backends.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	checkpoints map[int][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.checkpoints = make(map[int][]byte)
	return nil
}

func (s *MemoryStore) Save(_ context.Context, checkpoint Checkpoint) error {
	payload, err := EncodeCheckpoint(checkpoint)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return errors.New("memory store is not initialized")
	}
	s.checkpoints[checkpoint.Generation] = payload
	return nil
}

func (s *MemoryStore) Load(_ context.Context, generation int) (Checkpoint, bool, error) {
	s.mu.RLock()
	payload, ok := s.checkpoints[generation]
	s.mu.RUnlock()
	if !ok {
		return Checkpoint{}, false, nil
	}
	checkpoint, err := DecodeCheckpoint(payload)
	if err != nil {
		return Checkpoint{}, false, err
	}
	return checkpoint, true, nil
}

func (s *MemoryStore) Latest(ctx context.Context) (Checkpoint, bool, error) {
	generations, err := s.Generations(ctx)
	if err != nil || len(generations) == 0 {
		return Checkpoint{}, false, err
	}
	return s.Load(ctx, generations[len(generations)-1])
}

func (s *MemoryStore) Generations(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	generations := make([]int, 0, len(s.checkpoints))
	for generation := range s.checkpoints {
		generations = append(generations, generation)
	}
	sort.Ints(generations)
	return generations, nil
}
