package storage

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("checkpoint version mismatch")

// EncodeCheckpoint serializes a checkpoint to its binary on-disk form.
func EncodeCheckpoint(checkpoint Checkpoint) ([]byte, error) {
	return cbor.Marshal(checkpoint)
}

// DecodeCheckpoint parses a checkpoint payload, rejecting version drift and
// structurally invalid networks before they can reach a training run.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	var checkpoint Checkpoint
	if err := cbor.Unmarshal(data, &checkpoint); err != nil {
		return Checkpoint{}, err
	}
	if err := checkVersion(checkpoint.VersionedRecord); err != nil {
		return Checkpoint{}, err
	}
	for i, agent := range checkpoint.Agents {
		if agent.Player == nil || agent.Player.Network == nil {
			return Checkpoint{}, fmt.Errorf("agent %d has no network", i)
		}
		if err := agent.Player.Network.Validate(); err != nil {
			return Checkpoint{}, fmt.Errorf("agent %d: %w", i, err)
		}
	}
	return checkpoint, nil
}

func checkVersion(record VersionedRecord) error {
	if record.SchemaVersion != CurrentSchemaVersion || record.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, record.SchemaVersion, record.CodecVersion)
	}
	return nil
}
