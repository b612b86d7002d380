// Package storage persists generation checkpoints: the surviving agents of a
// training run, written once per save interval and discovered again on
// resume.
package storage

import (
	"context"

	"fourai/internal/player"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Checkpoint is one persisted survivor snapshot, taken before mutation.
type Checkpoint struct {
	VersionedRecord
	Generation int            `json:"generation"`
	Agents     []player.Agent `json:"agents"`
}

// NewCheckpoint stamps a snapshot with the current schema and codec versions.
func NewCheckpoint(generation int, agents []player.Agent) Checkpoint {
	return Checkpoint{
		VersionedRecord: VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion,
		},
		Generation: generation,
		Agents:     agents,
	}
}

// Store is the checkpoint persistence contract. Latest returns the highest
// generation present; absence of any checkpoint is (zero, false, nil).
type Store interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, checkpoint Checkpoint) error
	Load(ctx context.Context, generation int) (Checkpoint, bool, error)
	Latest(ctx context.Context) (Checkpoint, bool, error)
	Generations(ctx context.Context) ([]int, error)
}

// CloseIfSupported closes backends that hold external resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
